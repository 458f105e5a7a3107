package authservice

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"

	AccessTokenTime time.Duration = 7 * 24 * time.Hour
)

var (
	AnonymousUser = User{}
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (u *User) IsAnonymous() bool {
	return u.ID == ""
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Claims is the signed payload carried by every access token.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) User() *User {
	return &User{
		ID:       c.UserID,
		Username: c.Username,
		Role:     c.Role,
	}
}

// Admin is the single credentialed user of the site, sourced from
// configuration. PasswordHash is a bcrypt hash, never a plain secret.
type Admin struct {
	ID           string
	Username     string
	Name         string
	PasswordHash []byte
}

type AuthService struct {
	secret []byte
	admin  Admin
}
