package pagebuilder

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// Slugify converts a page name to a file-name-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// PageURL returns the URL that selects page name on a site rooted at base.
// The default page maps to the site root.
func PageURL(base, name string) string {
	u, err := url.Parse(base)
	if err != nil {
		u = &url.URL{}
	}
	u.Path = path.Join("/", u.Path)
	if u.Path != "/" {
		u.Path += "/"
	}
	if name != DefaultPage {
		u.RawQuery = url.Values{"page": {name}}.Encode()
	}
	return u.String()
}

// Names returns the page names of reg in ascending order.
func (reg Registry) Names() []string {
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
