package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/catcommerce/catcommerce-golang/internal/config"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is what a valid token resolves to.
type Claims struct {
	CustomerID int64
	Role       string
}

// TokenManager signs and validates HMAC tokens with the configured secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg config.JWT) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.TTL) * time.Hour,
	}
}

// Generate issues a token for the customer. The role rides along so routes
// can gate on it without a DB read; admin routes re-check against storage.
func (m *TokenManager) Generate(customerID int64, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  customerID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses the token and returns its claims. Expired, malformed, or
// wrongly signed tokens all surface as ErrInvalidToken.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	// JSON numbers decode as float64.
	sub, ok := mapClaims["sub"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, _ := mapClaims["role"].(string)

	return &Claims{CustomerID: int64(sub), Role: role}, nil
}
