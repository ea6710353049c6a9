package service

import (
	"encoding/xml"
	"strings"
	"time"

	"bioainexus/internal/models"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// BuildSitemap renders the sitemap XML for the site's static pages plus
// every published post. The result includes the XML declaration.
func BuildSitemap(baseURL string, posts []*models.Post) (string, error) {
	base := strings.TrimRight(baseURL, "/")
	urls := []sitemapURL{
		{Loc: base + "/", ChangeFreq: "daily", Priority: "1.0"},
		{Loc: base + "/about", ChangeFreq: "monthly", Priority: "0.8"},
		{Loc: base + "/contact", ChangeFreq: "monthly", Priority: "0.8"},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:        base + "/post/" + p.Slug,
			LastMod:    p.UpdatedAt.Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.9",
		})
	}

	body, err := xml.Marshal(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
	if err != nil {
		return "", err
	}
	return xml.Header + string(body), nil
}

// BuildRSSFeed renders the RSS 2.0 feed for every published post.
func BuildRSSFeed(baseURL, siteName, tagline string, posts []*models.Post) (string, error) {
	base := strings.TrimRight(baseURL, "/")
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := base + "/post/" + p.Slug
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			PubDate:     p.CreatedAt.Format(time.RFC1123Z),
			GUID:        postURL,
		})
	}

	body, err := xml.Marshal(rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       siteName,
			Link:        base,
			Description: tagline,
			Items:       items,
		},
	})
	if err != nil {
		return "", err
	}
	return xml.Header + string(body), nil
}
