package pagebuilder

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"
)

// Export renders every page of site in local mode and writes it to outDir as
// <slug>.html, plus index.html for the default page and sitemap.xml. Links
// that select a page through the query string are rewritten to the exported
// file. It returns the written paths. Any page failure aborts the export.
func Export(site *Site, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("pagebuilder: export: %w", err)
	}

	b := Builder{Config: site.Config, Mode: ModeLocal}
	var written []string
	seen := make(map[string]string)
	if _, ok := site.Registry[DefaultPage]; ok {
		seen["index"] = DefaultPage
	}
	write := func(name string, data []byte) error {
		path := filepath.Join(outDir, name)
		if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("pagebuilder: export %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	for _, name := range site.Registry.Names() {
		slug := Slugify(name)
		if slug == "" {
			return written, fmt.Errorf("pagebuilder: export page %q: name has no usable characters", name)
		}
		if other, ok := seen[slug]; ok {
			return written, fmt.Errorf("pagebuilder: export page %q: file %s.html already used by %q", name, slug, other)
		}
		seen[slug] = name
		doc, err := b.Build(Page{Name: name, Attrs: site.Registry[name]})
		if err != nil {
			return written, fmt.Errorf("pagebuilder: export page %q: %w", name, err)
		}
		html := []byte(rewriteLinks(doc.String(), site.Registry))
		if err := write(slug+".html", html); err != nil {
			return written, err
		}
		if name == DefaultPage {
			if err := write("index.html", html); err != nil {
				return written, err
			}
		}
	}

	var buf bytes.Buffer
	if err := WriteSitemap(&buf, site); err != nil {
		return written, fmt.Errorf("pagebuilder: export sitemap: %w", err)
	}
	if err := write("sitemap.xml", buf.Bytes()); err != nil {
		return written, err
	}
	return written, nil
}

// pageLink matches href and src values relative to the site root: either
// empty or a "?page=" query.
var pageLink = regexp.MustCompile(`((?:href|src)=")(\?page=([^"&#]*))?"`)

// rewriteLinks points root-relative page links at exported files. Unknown
// names go to the 404 page when there is one, as a served request would.
func rewriteLinks(html string, reg Registry) string {
	return pageLink.ReplaceAllStringFunc(html, func(m string) string {
		sub := pageLink.FindStringSubmatch(m)
		name, err := url.QueryUnescape(sub[3])
		if err != nil {
			return m
		}
		name = strings.ToLower(name)
		if name == "" {
			name = DefaultPage
		}
		if _, ok := reg[name]; !ok {
			if _, ok := reg[NotFoundPage]; !ok {
				return m
			}
			name = NotFoundPage
		}
		return sub[1] + exportFile(name) + `"`
	})
}

func exportFile(name string) string {
	if name == DefaultPage {
		return "index.html"
	}
	return Slugify(name) + ".html"
}
