package mailservice

import (
	"regexp"

	"github.com/clovermist/folio/internal/common"
)

var (
	EmailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateContactMessage checks a contact submission before it is published
// to the broker.
func ValidateContactMessage(v *common.Validator, msg *ContactMessage) {
	v.Check(msg.Name != "", "name", "must be provided")
	v.Check(v.CheckMaxLength(msg.Name, 100), "name", "must not be more than 100 characters long")
	v.Check(msg.Email != "", "email", "must be provided")
	if msg.Email != "" {
		v.Check(EmailRX.MatchString(msg.Email), "email", "must be a valid email address")
	}
	v.Check(msg.Message != "", "message", "must be provided")
	v.Check(v.CheckMaxLength(msg.Message, 5000), "message", "must not be more than 5000 characters long")
}
