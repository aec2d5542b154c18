// Package auth implements login for the dashboard: credential verification
// against the in-memory user directory and HS256 JWT issuance.
//
// Authentication failures are deliberately indistinguishable — an unknown
// email and a wrong password both return ErrInvalidCredentials, so the
// login endpoint cannot be used to enumerate accounts. bcrypt comparison
// runs even for unknown emails to keep the timing profile flat.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for every authentication failure,
// regardless of cause.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// User is one account in the directory. PasswordHash is a bcrypt hash.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Company      string `json:"company"`
}

// dummyHash is compared against when the email is unknown, so that lookup
// misses cost the same as password mismatches.
var dummyHash = []byte("$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi")

// Directory is an in-memory user directory. A restart resets it to its
// seed; there is no persistence.
type Directory struct {
	users []User
}

// NewDirectory creates a Directory holding the given users.
func NewDirectory(users []User) *Directory {
	return &Directory{users: users}
}

// DefaultDirectory returns the directory seeded with the single built-in
// administrator account.
func DefaultDirectory() *Directory {
	return NewDirectory([]User{
		{
			ID:           "1",
			Email:        "admin@kingtech.com",
			PasswordHash: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi",
			Name:         "Muhammad Jawad",
			Role:         "Admin",
			Company:      "King Group Of Technology",
		},
	})
}

// Authenticate verifies email and password against the directory. On any
// failure it returns ErrInvalidCredentials.
func (d *Directory) Authenticate(email, password string) (User, error) {
	for _, u := range d.users {
		if u.Email == email {
			if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
				return User{}, ErrInvalidCredentials
			}
			return u, nil
		}
	}
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return User{}, ErrInvalidCredentials
}

// Claims is the JWT payload carried by dashboard tokens.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies dashboard tokens with a shared HMAC secret.
// The secret is required configuration; there is no built-in fallback.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. An empty secret is refused. ttl ≤ 0 uses
// TokenTTL.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue returns a signed HS256 token for u.
func (i *Issuer) Issue(u User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a compact token, returning its claims. Only
// HS256 is accepted.
func (i *Issuer) Verify(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("auth: unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("auth: invalid token")
	}
	return &claims, nil
}
