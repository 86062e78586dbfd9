package slug

import (
	"math/rand"
	"strings"

	gslug "github.com/gosimple/slug"
)

const (
	tokenChars  = "abcdefghijklmnopqrstuvwxyz0123456789"
	tokenLength = 6
)

// Generate derives a URL-safe slug from an article title: the title is
// lower-cased and hyphenated, then a random token is appended unconditionally.
// Two calls with the same title produce distinct slugs with overwhelming
// probability; uniqueness is ultimately enforced by the database index.
func Generate(title string) string {
	base := gslug.Make(title)
	if base == "" {
		return token()
	}
	return base + "-" + token()
}

// token returns a fixed-length lower-case alphanumeric disambiguator.
func token() string {
	var b strings.Builder
	b.Grow(tokenLength)
	for i := 0; i < tokenLength; i++ {
		b.WriteByte(tokenChars[rand.Intn(len(tokenChars))])
	}
	return b.String()
}
