package authservice

import "github.com/clovermist/folio/internal/common"

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
}

func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
}
