package pagebuilder

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// writeSite lays out a small site under a temp dir and returns Options
// pointing at it. Template paths in the config are absolute so tests do not
// depend on the working directory.
func writeSite(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"templates/header.html": "<html><title>{title}</title><link href=\"{baseurl}style.css\">\n",
		"templates/footer.html": "<footer>{sitename}</footer></html>\n",
		"content/default.html":  "<h1>Home</h1>\n",
		"content/about.html":    "<h1>About {sitename}</h1>\n",
		"content/404.html":      "<h1>Not found</h1>\n",
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	config := map[string]any{
		"header":   filepath.Join(dir, "templates/header.html"),
		"footer":   filepath.Join(dir, "templates/footer.html"),
		"baseurl":  "http://example.com/",
		"sitename": "Example",
		"title":    "Example",
	}
	pages := map[string]any{
		"default": map[string]any{"content": filepath.Join(dir, "content/default.html")},
		"about":   map[string]any{"content": filepath.Join(dir, "content/about.html"), "title": "About"},
		"404":     map[string]any{"content": filepath.Join(dir, "content/404.html"), "title": "Not found"},
	}
	opts := Options{
		ConfigPath: filepath.Join(dir, "config/config.json"),
		PagesPath:  filepath.Join(dir, "config/pages.json"),
		StaticDir:  filepath.Join(dir, "public"),
	}
	writeJSON(t, opts.ConfigPath, config)
	writeJSON(t, opts.PagesPath, pages)
	return opts
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}
}
