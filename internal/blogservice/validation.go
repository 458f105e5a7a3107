package blogservice

import (
	"regexp"

	"github.com/clovermist/folio/internal/common"
)

var (
	SlugRX = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckMaxLength(title, 100), "title", "must not be more than 100 characters long")
}

func validateExcerpt(v *common.Validator, excerpt string) {
	v.Check(excerpt != "", "excerpt", "must be provided")
	v.Check(v.CheckMaxLength(excerpt, 300), "excerpt", "must not be more than 300 characters long")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must be provided")
	if slug != "" {
		v.Check(SlugRX.MatchString(slug), "slug", "must only contain lowercase letters, numbers, and hyphens")
	}
}
