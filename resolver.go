package pagebuilder

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Mode says how the program was invoked.
type Mode int

const (
	// ModeServed is a request relayed by a web server: absolute asset URLs and
	// an embedded HTTP header block.
	ModeServed Mode = iota
	// ModeLocal is a direct command-line invocation, used for testing pages.
	ModeLocal
)

func (m Mode) String() string {
	switch m {
	case ModeServed:
		return "served"
	case ModeLocal:
		return "local"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

var (
	// ErrUnknownPage is returned for a local invocation naming a page that is
	// not in the registry.
	ErrUnknownPage = errors.New("pagebuilder: unknown page")
	// ErrMissingEntry is returned when the registry lacks the "default" or
	// "404" entry needed to answer a request.
	ErrMissingEntry = errors.New("pagebuilder: registry entry missing")
)

// Request carries the optional page selector of one invocation.
type Request struct {
	Page    string
	HasPage bool
}

// PageRequest returns a Request selecting name.
func PageRequest(name string) Request {
	return Request{Page: name, HasPage: true}
}

// RequestFromHTTP extracts the "page" field from the query string or a
// form-encoded body. A blank value counts as absent.
func RequestFromHTTP(r *http.Request) (Request, error) {
	if err := r.ParseForm(); err != nil {
		return Request{}, fmt.Errorf("pagebuilder: parse request: %w", err)
	}
	for _, v := range r.Form["page"] {
		if v != "" {
			return PageRequest(v), nil
		}
	}
	return Request{}, nil
}

// Resolver picks the registry entry that answers a request.
type Resolver struct {
	Registry Registry
	Mode     Mode

	// LocalFallback makes ModeLocal answer unknown names with the 404 entry,
	// the same as ModeServed. Without it a local lookup of an unknown name fails.
	LocalFallback bool
}

// Resolve returns exactly one page for req, or an error when the registry
// cannot answer it.
func (r Resolver) Resolve(req Request) (Page, error) {
	if !req.HasPage {
		return r.entry(DefaultPage, false)
	}

	name := strings.ToLower(req.Page)
	if attrs, ok := r.Registry[name]; ok {
		return Page{Name: name, Attrs: attrs}, nil
	}
	if r.Mode == ModeLocal && !r.LocalFallback {
		return Page{}, fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}
	return r.entry(NotFoundPage, true)
}

func (r Resolver) entry(name string, notFound bool) (Page, error) {
	attrs, ok := r.Registry[name]
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrMissingEntry, name)
	}
	return Page{Name: name, Attrs: attrs, NotFound: notFound}, nil
}
