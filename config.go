package pagebuilder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Well-known config and page keys.
const (
	HeaderKey  = "header"
	FooterKey  = "footer"
	ContentKey = "content"
	BaseURLKey = "baseurl"

	DefaultPage  = "default"
	NotFoundPage = "404"
)

// Config holds the site-wide variables from config.json, including the header
// and footer template paths.
type Config struct {
	Attrs Attrs
}

// Options holds all configuration for a pagebuilder site.
type Options struct {
	ConfigPath string // config.json path (default "config/config.json")
	PagesPath  string // pages.json or SQLite page store path (default "config/pages.json")

	Addr      string // Listen address for serve (default ":3000")
	StaticDir string // Static assets served under /public (default "public")

	// LocalFallback makes local invocations fall back to the 404 entry for
	// unknown page names instead of failing.
	LocalFallback bool

	CacheTTL time.Duration // Site reload interval for serve; 0 reloads on every request
}

func (o *Options) setDefaults() {
	if o.ConfigPath == "" {
		o.ConfigPath = "config/config.json"
	}
	if o.PagesPath == "" {
		o.PagesPath = "config/pages.json"
	}
	if o.Addr == "" {
		o.Addr = ":3000"
	}
	if o.StaticDir == "" {
		o.StaticDir = "public"
	}
}

// LoadSite reads the config and the page registry named by opts.
func LoadSite(opts Options) (*Site, error) {
	opts.setDefaults()
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	reg, err := LoadRegistry(opts.PagesPath)
	if err != nil {
		return nil, err
	}
	return &Site{Config: cfg, Registry: reg}, nil
}

// LoadConfig reads a JSON object of site-wide variables.
func LoadConfig(path string) (Config, error) {
	var raw map[string]any
	if err := decodeJSONFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("pagebuilder: load config %s: %w", path, err)
	}
	attrs, err := attrsFromJSON(raw)
	if err != nil {
		return Config{}, fmt.Errorf("pagebuilder: load config %s: %w", path, err)
	}
	return Config{Attrs: attrs}, nil
}

// LoadRegistry reads the page registry. Paths ending in .db, .sqlite or
// .sqlite3 are opened read-only as a PageStore; anything else is read as JSON.
func LoadRegistry(path string) (Registry, error) {
	if isStorePath(path) {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("pagebuilder: load pages %s: %w", path, err)
		}
		store, err := OpenPageStoreReadOnly(path)
		if err != nil {
			return nil, fmt.Errorf("pagebuilder: load pages %s: %w", path, err)
		}
		defer store.Close()
		reg, err := store.Registry()
		if err != nil {
			return nil, fmt.Errorf("pagebuilder: load pages %s: %w", path, err)
		}
		return reg, nil
	}

	var raw map[string]json.RawMessage
	if err := decodeJSONFile(path, &raw); err != nil {
		return nil, fmt.Errorf("pagebuilder: load pages %s: %w", path, err)
	}
	reg, err := registryFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("pagebuilder: load pages %s: %w", path, err)
	}
	return reg, nil
}

func registryFromJSON(raw map[string]json.RawMessage) (Registry, error) {
	reg := make(Registry, len(raw))
	for name, msg := range raw {
		var entry map[string]any
		if err := unmarshalNumbers(msg, &entry); err != nil || entry == nil {
			return nil, fmt.Errorf("page %q: entry must be a JSON object", name)
		}
		attrs, err := attrsFromJSON(entry)
		if err != nil {
			return nil, fmt.Errorf("page %q: %w", name, err)
		}
		reg[name] = attrs
	}
	return reg, nil
}

func isStorePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

func decodeJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return unmarshalNumbers(data, v)
}

// unmarshalNumbers decodes like json.Unmarshal but keeps numbers as json.Number
// so their literal text survives.
func unmarshalNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func attrsFromJSON(raw map[string]any) (Attrs, error) {
	attrs := make(Attrs, len(raw))
	for k, v := range raw {
		s, err := stringify(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		attrs[k] = s
	}
	return attrs, nil
}

func stringify(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		if x {
			return "true", nil
		}
		return "false", nil
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
