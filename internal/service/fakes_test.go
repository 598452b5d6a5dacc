package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
)

// In-memory repository fakes. They mirror the storage contracts closely
// enough for service-level behavior tests: sentinel not-found errors, upsert
// by (customer, product), soft deletes.

type fakeProductRepo struct {
	products map[int64]*models.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*models.Product), nextID: 1}
}

func (f *fakeProductRepo) add(p models.Product) *models.Product {
	p.ID = f.nextID
	f.nextID++
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	f.products[p.ID] = &p
	return f.products[p.ID]
}

func (f *fakeProductRepo) Create(_ context.Context, p *models.Product) (int64, error) {
	created := f.add(*p)
	return created.ID, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*models.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id int64) error {
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (f *fakeProductRepo) UpdateStock(_ context.Context, id int64, quantity int) error {
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (f *fakeProductRepo) active() []models.Product {
	var out []models.Product
	for _, p := range f.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginate(items []models.Product, limit, offset int) []models.Product {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (f *fakeProductRepo) ListActive(_ context.Context, limit, offset int) ([]models.Product, error) {
	return paginate(f.active(), limit, offset), nil
}

func (f *fakeProductRepo) ListByCategory(_ context.Context, categoryID int64, limit, offset int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.active() {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return paginate(out, limit, offset), nil
}

func (f *fakeProductRepo) ListFeatured(_ context.Context, limit int) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.active() {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return paginate(out, limit, 0), nil
}

func (f *fakeProductRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(f.active())), nil
}

func (f *fakeProductRepo) CountActiveByCategory(_ context.Context, categoryID int64) (int64, error) {
	var n int64
	for _, p := range f.active() {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) matches(s repository.ProductSearch) []models.Product {
	var out []models.Product
	for _, p := range f.active() {
		if kw := strings.TrimSpace(s.Keyword); kw != "" {
			kw = strings.ToLower(kw)
			if !strings.Contains(strings.ToLower(p.Name), kw) &&
				!strings.Contains(strings.ToLower(p.Description), kw) &&
				!strings.Contains(strings.ToLower(p.ShortDescription), kw) {
				continue
			}
		}
		if s.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *s.CategoryID) {
			continue
		}
		if s.MinPrice != nil && p.Price.LessThan(*s.MinPrice) {
			continue
		}
		if s.MaxPrice != nil && p.Price.GreaterThan(*s.MaxPrice) {
			continue
		}
		if s.InStockOnly && p.StockQuantity <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (f *fakeProductRepo) Search(_ context.Context, s repository.ProductSearch) ([]models.Product, error) {
	return paginate(f.matches(s), s.PageSize, s.Offset()), nil
}

func (f *fakeProductRepo) CountSearch(_ context.Context, s repository.ProductSearch) (int64, error) {
	return int64(len(f.matches(s))), nil
}

type cartKey struct {
	customerID int64
	productID  int64
}

type fakeCartRepo struct {
	items  map[cartKey]*models.CartItem
	nextID int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[cartKey]*models.CartItem), nextID: 1}
}

func (f *fakeCartRepo) FindByCustomerAndProduct(_ context.Context, customerID, productID int64) (*models.CartItem, error) {
	item, ok := f.items[cartKey{customerID, productID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeCartRepo) ListByCustomer(_ context.Context, customerID int64) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range f.items {
		if item.CustomerID == customerID {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCartRepo) Upsert(_ context.Context, customerID, productID int64, quantity int) error {
	key := cartKey{customerID, productID}
	if item, ok := f.items[key]; ok {
		item.Quantity = quantity
		item.UpdatedAt = time.Now()
		return nil
	}
	now := time.Now()
	f.items[key] = &models.CartItem{
		ID:         f.nextID,
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	f.nextID++
	return nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, customerID, productID int64, quantity int) error {
	item, ok := f.items[cartKey{customerID, productID}]
	if !ok {
		return repository.ErrNotFound
	}
	item.Quantity = quantity
	return nil
}

func (f *fakeCartRepo) Remove(_ context.Context, customerID, productID int64) error {
	key := cartKey{customerID, productID}
	if _, ok := f.items[key]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, key)
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, customerID int64) (int64, error) {
	var deleted int64
	for key, item := range f.items {
		if item.CustomerID == customerID {
			delete(f.items, key)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeCartRepo) TotalQuantity(_ context.Context, customerID int64) (int64, error) {
	var total int64
	for _, item := range f.items {
		if item.CustomerID == customerID {
			total += int64(item.Quantity)
		}
	}
	return total, nil
}

type fakeCategoryRepo struct {
	categories map[int64]*models.Category
	nextID     int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*models.Category), nextID: 1}
}

func (f *fakeCategoryRepo) add(c models.Category) *models.Category {
	c.ID = f.nextID
	f.nextID++
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	f.categories[c.ID] = &c
	return f.categories[c.ID]
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *models.Category) (int64, error) {
	created := f.add(*c)
	return created.ID, nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug && c.IsActive {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryRepo) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, c := range f.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *models.Category) error {
	if _, ok := f.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) SoftDelete(_ context.Context, id int64) error {
	c, ok := f.categories[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsActive = false
	return nil
}

func (f *fakeCategoryRepo) activeSorted() []models.Category {
	var out []models.Category
	for _, c := range f.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (f *fakeCategoryRepo) Roots(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.activeSorted() {
		if c.ParentID == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ChildrenOf(_ context.Context, parentID int64) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.activeSorted() {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) AllActive(_ context.Context) ([]models.Category, error) {
	return f.activeSorted(), nil
}

func (f *fakeCategoryRepo) CountActiveChildren(_ context.Context, parentID int64) (int64, error) {
	children, _ := f.ChildrenOf(context.Background(), parentID)
	return int64(len(children)), nil
}

type fakeCustomerRepo struct {
	customers map[int64]*models.Customer
	nextID    int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[int64]*models.Customer), nextID: 1}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *models.Customer) (int64, error) {
	cp := *c
	cp.ID = f.nextID
	f.nextID++
	now := time.Now()
	cp.CreatedAt, cp.UpdatedAt = now, now
	f.customers[cp.ID] = &cp
	return cp.ID, nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id int64) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) FindByUsername(_ context.Context, username string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerRepo) ExistsByUsername(_ context.Context, username string, excludeID int64) (bool, error) {
	for _, c := range f.customers {
		if c.Username == username && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerRepo) ExistsByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, c := range f.customers {
		if c.Email == email && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *models.Customer) error {
	existing, ok := f.customers[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cp := *c
	cp.PasswordHash = existing.PasswordHash
	f.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	c, ok := f.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.PasswordHash = passwordHash
	return nil
}

func (f *fakeCustomerRepo) Deactivate(_ context.Context, id int64) error {
	c, ok := f.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsActive = false
	return nil
}

func (f *fakeCustomerRepo) ListActive(_ context.Context, limit, offset int) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.customers {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeCustomerRepo) Search(_ context.Context, keyword string, limit, offset int) ([]models.Customer, error) {
	kw := strings.ToLower(keyword)
	var out []models.Customer
	for _, c := range f.customers {
		if !c.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(c.Username), kw) ||
			strings.Contains(strings.ToLower(c.Email), kw) ||
			strings.Contains(strings.ToLower(c.FirstName), kw) ||
			strings.Contains(strings.ToLower(c.LastName), kw) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCustomerRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, c := range f.customers {
		if c.IsActive {
			n++
		}
	}
	return n, nil
}
