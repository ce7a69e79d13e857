package pagebuilder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExport(t *testing.T) {
	site, err := LoadSite(writeSite(t))
	if err != nil {
		t.Fatalf("LoadSite failed: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out")

	written, err := Export(site, out)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(written) != 5 {
		t.Errorf("wrote %d files, want 5: %v", len(written), written)
	}

	for _, name := range []string{"404.html", "about.html", "default.html", "index.html", "sitemap.xml"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	def, err := os.ReadFile(filepath.Join(out, "default.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(index) != string(def) {
		t.Error("index.html should match default.html")
	}
	if strings.Contains(string(index), "Content-type") {
		t.Error("exported pages must not contain the HTTP header")
	}
	if !strings.Contains(string(index), `href="style.css"`) {
		t.Errorf("exported pages should use relative links: %q", index)
	}
}

func TestExportFailsOnBrokenPage(t *testing.T) {
	site, err := LoadSite(writeSite(t))
	if err != nil {
		t.Fatalf("LoadSite failed: %v", err)
	}
	site.Registry["broken"] = Attrs{"content": filepath.Join(t.TempDir(), "nope.html")}

	_, err = Export(site, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("expected error naming the broken page, got %v", err)
	}
}

func TestExportRejectsSlugCollision(t *testing.T) {
	site, err := LoadSite(writeSite(t))
	if err != nil {
		t.Fatalf("LoadSite failed: %v", err)
	}
	site.Registry["About!"] = site.Registry["about"]

	if _, err := Export(site, t.TempDir()); err == nil {
		t.Error("expected an error for two pages exporting to about.html")
	}
}

func TestExportRewritesPageLinks(t *testing.T) {
	site, err := LoadSite(writeSite(t))
	if err != nil {
		t.Fatalf("LoadSite failed: %v", err)
	}
	content := filepath.Join(t.TempDir(), "links.html")
	body := `<a href="{baseurl}">home</a>` +
		`<a href="{baseurl}?page=About">about</a>` +
		`<a href="{baseurl}?page=">blank</a>` +
		`<a href="{baseurl}?page=gone">gone</a>` +
		`<a href="https://example.org/?page=about">elsewhere</a>`
	if err := os.WriteFile(content, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	site.Registry["links"] = Attrs{"content": content}
	out := t.TempDir()

	if _, err := Export(site, out); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(out, "links.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<a href="index.html">home</a>`,
		`<a href="about.html">about</a>`,
		`<a href="index.html">blank</a>`,
		`<a href="404.html">gone</a>`,
		`<a href="https://example.org/?page=about">elsewhere</a>`,
		`href="style.css"`,
	} {
		if !strings.Contains(string(got), want) {
			t.Errorf("links.html missing %q: %q", want, got)
		}
	}
}

func TestRewriteLinksWithoutNotFoundPage(t *testing.T) {
	reg := Registry{"default": Attrs{}}
	in := `<a href="?page=gone">gone</a>`
	if got := rewriteLinks(in, reg); got != in {
		t.Errorf("rewriteLinks = %q, want %q unchanged", got, in)
	}
}
