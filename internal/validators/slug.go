package validators

import "regexp"

// Slug público: minúsculas, dígitos e hífens, sem hífen nas pontas.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func IsSlugValid(slug string) bool {
	if len(slug) < 3 || len(slug) > 100 {
		return false
	}
	return slugRe.MatchString(slug)
}
