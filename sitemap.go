package pagebuilder

import (
	"encoding/xml"
	"io"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

// Sitemap lists the URL of every page except the 404 entry, sorted by name.
func Sitemap(site *Site) []string {
	base := site.Config.Attrs[BaseURLKey]
	var urls []string
	for _, name := range site.Registry.Names() {
		if name == NotFoundPage {
			continue
		}
		urls = append(urls, PageURL(base, name))
	}
	return urls
}

// WriteSitemap writes the sitemap of site as XML.
func WriteSitemap(w io.Writer, site *Site) error {
	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, loc := range Sitemap(site) {
		set.URLs = append(set.URLs, sitemapURL{Loc: loc})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(set)
}
