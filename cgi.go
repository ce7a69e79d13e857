package pagebuilder

import (
	"fmt"
	"io"
	"net/http/cgi"
	"os"
)

// IsCGI reports whether the process was started by a CGI gateway.
func IsCGI() bool {
	return os.Getenv("GATEWAY_INTERFACE") != ""
}

// Render resolves req against site and builds the page in the given mode.
func Render(site *Site, mode Mode, req Request, opts Options) (Document, error) {
	r := Resolver{Registry: site.Registry, Mode: mode, LocalFallback: opts.LocalFallback}
	page, err := r.Resolve(req)
	if err != nil {
		return Document{}, err
	}
	b := Builder{Config: site.Config, Mode: mode}
	return b.Build(page)
}

// ServeCGI answers the CGI request described by the process environment and
// stdin, writing the header block and page to w.
func ServeCGI(site *Site, opts Options, w io.Writer) error {
	r, err := cgi.Request()
	if err != nil {
		return fmt.Errorf("pagebuilder: read cgi request: %w", err)
	}
	req, err := RequestFromHTTP(r)
	if err != nil {
		return err
	}
	doc, err := Render(site, ModeServed, req, opts)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(w)
	return err
}

// RenderLocal builds the page named by the optional single argument and
// writes it to w without an HTTP header.
func RenderLocal(site *Site, opts Options, args []string, w io.Writer) error {
	var req Request
	switch len(args) {
	case 0:
	case 1:
		req = PageRequest(args[0])
	default:
		return fmt.Errorf("pagebuilder: expected at most one page name, got %d", len(args))
	}
	doc, err := Render(site, ModeLocal, req, opts)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(w)
	return err
}
