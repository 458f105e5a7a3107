package authservice

import (
	"errors"

	"github.com/clovermist/folio/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid username or password")
)

func NewAuthService(secret string, admin Admin) *AuthService {
	return &AuthService{
		secret: []byte(secret),
		admin:  admin,
	}
}

// Login checks the credentials against the configured admin identity and
// returns the user together with a freshly issued access token.
func (s *AuthService) Login(username, password string) (*User, string, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, "", v.ValidationError()
	}

	if username != s.admin.Username {
		return nil, "", ErrAuthenticationFailure
	}

	match, err := comparePassword(s.admin.PasswordHash, password)
	if err != nil {
		return nil, "", err
	}
	if !match {
		return nil, "", ErrAuthenticationFailure
	}

	user := &User{
		ID:       s.admin.ID,
		Username: s.admin.Username,
		Name:     s.admin.Name,
		Role:     RoleAdmin,
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
