package pagebuilder

// Attrs is a flat set of substitution variables, as loaded from config.json or
// from one entry of pages.json.
type Attrs map[string]string

// Lookup implements format.Lookup.
func (a Attrs) Lookup(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// clone returns a shallow copy that can be modified without touching a.
func (a Attrs) clone() Attrs {
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Layers overlays attribute sets; later layers win on conflicting keys.
type Layers []Attrs

// Lookup implements format.Lookup.
func (l Layers) Lookup(key string) (string, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if v, ok := l[i][key]; ok {
			return v, true
		}
	}
	return "", false
}

// Page is a resolved entry of the page registry.
type Page struct {
	Name     string // canonical name: the requested name, "default" or "404"
	Attrs    Attrs
	NotFound bool // the 404 entry was chosen because the request named an unknown page
}

// Registry maps page names to their attributes.
type Registry map[string]Attrs

// Site is one load of config.json and pages.json. It is not modified after loading.
type Site struct {
	Config   Config
	Registry Registry
}
