package pagebuilder

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"about", "about"},
		{"404", "404"},
		{"About Us", "about-us"},
		{"  news/2024 ", "news-2024"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		base     string
		name     string
		expected string
	}{
		{"http://x", "default", "http://x/"},
		{"http://x/", "about", "http://x/?page=about"},
		{"http://x/site", "about", "http://x/site/?page=about"},
		{"", "about", "/?page=about"},
		{"", "a b", "/?page=a+b"},
	}
	for _, tt := range tests {
		if got := PageURL(tt.base, tt.name); got != tt.expected {
			t.Errorf("PageURL(%q, %q) = %q, want %q", tt.base, tt.name, got, tt.expected)
		}
	}
}

func TestRegistryNames(t *testing.T) {
	names := testRegistry().Names()
	want := []string{"404", "about", "default"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
