package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catcommerce/catcommerce-golang/internal/models"
)

func newCustomerFixture(t *testing.T) (*CustomerService, *fakeCustomerRepo) {
	t.Helper()
	customers := newFakeCustomerRepo()
	return NewCustomerService(customers, zap.NewNop()), customers
}

func validRegistration() *models.Customer {
	return &models.Customer{
		Username:  "valid_user1",
		Email:     "valid@example.com",
		FirstName: "Valerie",
		LastName:  "User",
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newCustomerFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		mutate   func(*models.Customer)
		password string
	}{
		{"username too short", func(c *models.Customer) { c.Username = "ab" }, "secret1"},
		{"username bad chars", func(c *models.Customer) { c.Username = "bad user!" }, "secret1"},
		{"bad email", func(c *models.Customer) { c.Email = "not-an-email" }, "secret1"},
		{"short password", func(c *models.Customer) {}, "abc12"},
		{"symbol-only password", func(c *models.Customer) {}, "!!!!!!"},
		{"missing first name", func(c *models.Customer) { c.FirstName = " " }, "secret1"},
		{"missing last name", func(c *models.Customer) { c.LastName = "" }, "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validRegistration()
			tc.mutate(c)
			_, err := svc.Register(ctx, c, tc.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newCustomerFixture(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, validRegistration(), "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, created.Role)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "secret1", created.PasswordHash, "plaintext must never be stored")

	// Login by username.
	got, err := svc.Login(ctx, "valid_user1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Login by email fallback.
	got, err = svc.Login(ctx, "valid@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	svc, _ := newCustomerFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration(), "secret1")
	require.NoError(t, err)

	_, unknownUser := svc.Login(ctx, "no_such_user", "secret1")
	_, wrongPassword := svc.Login(ctx, "valid_user1", "wrong-password")

	require.ErrorIs(t, unknownUser, ErrUnauthorized)
	require.ErrorIs(t, wrongPassword, ErrUnauthorized)
	assert.Equal(t, unknownUser.Error(), wrongPassword.Error(),
		"unknown account and bad password must be indistinguishable")
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, customers := newCustomerFixture(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, validRegistration(), "secret1")
	require.NoError(t, err)
	require.NoError(t, customers.Deactivate(ctx, created.ID))

	_, err = svc.Login(ctx, "valid_user1", "secret1")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRegisterUniqueness(t *testing.T) {
	svc, _ := newCustomerFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration(), "secret1")
	require.NoError(t, err)

	dup := validRegistration()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup, "secret1")
	assert.ErrorIs(t, err, ErrConflict)

	dup = validRegistration()
	dup.Username = "other_user"
	_, err = svc.Register(ctx, dup, "secret1")
	assert.ErrorIs(t, err, ErrConflict)

	// Email uniqueness is case-insensitive via lowercasing at write time.
	dup = validRegistration()
	dup.Username = "third_user"
	dup.Email = "VALID@example.com"
	_, err = svc.Register(ctx, dup, "secret1")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newCustomerFixture(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, validRegistration(), "secret1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, created.ID, "wrong", "newsecret1"), ErrUnauthorized)
	assert.ErrorIs(t, svc.ChangePassword(ctx, created.ID, "secret1", "short"), ErrInvalidInput)

	require.NoError(t, svc.ChangePassword(ctx, created.ID, "secret1", "newsecret1"))

	_, err = svc.Login(ctx, "valid_user1", "secret1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Login(ctx, "valid_user1", "newsecret1")
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newCustomerFixture(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, validRegistration(), "secret1")
	require.NoError(t, err)

	other := validRegistration()
	other.Username = "other_user"
	other.Email = "taken@example.com"
	_, err = svc.Register(ctx, other, "secret1")
	require.NoError(t, err)

	phone := "+15550100"
	updated, err := svc.UpdateProfile(ctx, &models.Customer{
		ID:        created.ID,
		Email:     "new@example.com",
		FirstName: "Val",
		LastName:  "User",
		Phone:     &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "Val", updated.FirstName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)

	// Switching to another account's email conflicts.
	_, err = svc.UpdateProfile(ctx, &models.Customer{
		ID:        created.ID,
		Email:     "taken@example.com",
		FirstName: "Val",
		LastName:  "User",
	})
	assert.ErrorIs(t, err, ErrConflict)
}
