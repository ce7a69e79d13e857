package pagebuilder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/a-h/templ"

	"github.com/pariahsoft/pagebuilder/format"
)

// HTTPHeader is written ahead of the HTML in ModeServed so that a CGI gateway
// can relay the output as a response.
const HTTPHeader = "Content-type: text/html; charset=utf-8\n\n"

// ErrMissingKey is returned when config or a page lacks a template path key.
var ErrMissingKey = errors.New("pagebuilder: missing key")

// Builder composes a page from the header, content and footer templates.
type Builder struct {
	Config Config
	Mode   Mode

	// FS resolves template paths. When nil, paths are read from the OS
	// filesystem relative to the working directory.
	FS fs.FS
}

// section is one template of the page and the attributes it comes from.
type section struct {
	name  string
	attrs Attrs
	key   string
}

// Build renders p. It fails, with no partial output, on any unreadable template
// or unresolved placeholder.
func (b Builder) Build(p Page) (Document, error) {
	vars := Layers{b.configLayer(), p.Attrs}
	sections := []section{
		{name: "config", attrs: b.Config.Attrs, key: HeaderKey},
		{name: "page " + p.Name, attrs: p.Attrs, key: ContentKey},
		{name: "config", attrs: b.Config.Attrs, key: FooterKey},
	}

	var html strings.Builder
	for _, s := range sections {
		path, ok := s.attrs[s.key]
		if !ok {
			return Document{}, fmt.Errorf("%w: %s has no %q", ErrMissingKey, s.name, s.key)
		}
		out, err := b.renderFile(path, vars)
		if err != nil {
			return Document{}, err
		}
		html.WriteString(out)
	}
	return Document{Page: p, Mode: b.Mode, HTML: html.String()}, nil
}

// configLayer is the config as seen by templates. Local builds blank the base
// URL so links resolve against the working directory.
func (b Builder) configLayer() Attrs {
	if b.Mode != ModeLocal {
		return b.Config.Attrs
	}
	attrs := b.Config.Attrs.clone()
	attrs[BaseURLKey] = ""
	return attrs
}

func (b Builder) renderFile(path string, vars format.Lookup) (string, error) {
	text, err := b.readFile(path)
	if err != nil {
		return "", fmt.Errorf("pagebuilder: read template: %w", err)
	}
	out, err := format.Execute(string(text), vars)
	if err != nil {
		return "", fmt.Errorf("pagebuilder: template %s: %w", path, err)
	}
	return out, nil
}

func (b Builder) readFile(path string) ([]byte, error) {
	if b.FS == nil {
		return os.ReadFile(path)
	}
	return fs.ReadFile(b.FS, path)
}

// Document is a built page.
type Document struct {
	Page Page
	Mode Mode
	HTML string
}

var _ templ.Component = Document{}

// String returns the program output: the HTTP header block and the HTML when
// served, the HTML without trailing whitespace when local.
func (d Document) String() string {
	if d.Mode == ModeLocal {
		return strings.TrimRightFunc(d.HTML, unicode.IsSpace)
	}
	return HTTPHeader + d.HTML
}

// WriteTo writes String() to w.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// Render writes only the HTML, for servers that send their own headers.
func (d Document) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, d.HTML)
	return err
}
