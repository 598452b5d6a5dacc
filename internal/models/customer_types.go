package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Customer roles. Admin-scoped endpoints require RoleAdmin.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer is the model for the 'customers' table. PasswordHash never leaves
// the process: json:"-" keeps it out of every response.
type Customer struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// bcrypt work factor. Adaptive hash with per-hash embedded salt.
const bcryptCost = 12

// Password wraps hashing and verification so plaintext handling stays in one
// place.
type Password struct {
	Hash string
}

func (p *Password) Set(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	return nil
}

func (p *Password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
