package pagebuilder

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func serve(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestServerPages(t *testing.T) {
	s := NewServer(writeSite(t))

	tests := []struct {
		method   string
		target   string
		body     string
		status   int
		contains string
	}{
		{"GET", "/", "", http.StatusOK, "<h1>Home</h1>"},
		{"GET", "/?page=about", "", http.StatusOK, "<h1>About Example</h1>"},
		{"POST", "/", "page=about", http.StatusOK, "<h1>About Example</h1>"},
		{"GET", "/about", "", http.StatusOK, "<h1>About Example</h1>"},
		{"GET", "/?page=missing", "", http.StatusNotFound, "<h1>Not found</h1>"},
		{"GET", "/missing", "", http.StatusNotFound, "<h1>Not found</h1>"},
		{"GET", "/a/b/c", "", http.StatusNotFound, "<h1>Not found</h1>"},
	}
	for _, tt := range tests {
		rec := serve(t, s, tt.method, tt.target, tt.body)
		if rec.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, rec.Code, tt.status)
		}
		body := rec.Body.String()
		if !strings.Contains(body, tt.contains) {
			t.Errorf("%s %s: body missing %q: %q", tt.method, tt.target, tt.contains, body)
		}
		if strings.Contains(body, "Content-type:") {
			t.Errorf("%s %s: body must not embed the CGI header", tt.method, tt.target)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s %s: Content-Type = %q", tt.method, tt.target, ct)
		}
	}
}

func TestServerReloadsSite(t *testing.T) {
	opts := writeSite(t)
	s := NewServer(opts)

	if rec := serve(t, s, "GET", "/", ""); !strings.Contains(rec.Body.String(), "<h1>Home</h1>") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	site, err := LoadSite(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(site.Registry["default"]["content"], []byte("<h1>Edited</h1>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if rec := serve(t, s, "GET", "/", ""); !strings.Contains(rec.Body.String(), "<h1>Edited</h1>") {
		t.Errorf("edit not picked up: %q", rec.Body.String())
	}
}

func TestServerErrors(t *testing.T) {
	opts := writeSite(t)
	site, err := LoadSite(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(site.Registry["about"]["content"], []byte("{undefined}"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewServer(opts)

	rec := serve(t, s, "GET", "/about", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "<html>") {
		t.Errorf("failed build must not send partial output: %q", rec.Body.String())
	}
}

func TestServerSitemapAndStatic(t *testing.T) {
	opts := writeSite(t)
	if err := os.MkdirAll(opts.StaticDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(opts.StaticDir, "style.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewServer(opts)

	rec := serve(t, s, "GET", "/sitemap.xml", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<loc>http://example.com/</loc>") {
		t.Errorf("sitemap missing default page: %q", body)
	}
	if !strings.Contains(body, "<loc>http://example.com/?page=about</loc>") {
		t.Errorf("sitemap missing about page: %q", body)
	}
	if strings.Contains(body, url.Values{"page": {"404"}}.Encode()) {
		t.Errorf("sitemap must not list the 404 page: %q", body)
	}

	rec = serve(t, s, "GET", "/public/style.css", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "body{}" {
		t.Errorf("static: status %d body %q", rec.Code, rec.Body.String())
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "public, max-age=3600" {
		t.Errorf("static Cache-Control = %q", cc)
	}
}
