package service

import (
	"fmt"
	"net/url"
	"strings"
)

// ShareLinks are prebuilt share targets for a post. Copy is the canonical
// post URL, which is also what the social templates embed.
type ShareLinks struct {
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	LinkedIn string `json:"linkedin"`
	Copy     string `json:"copy"`
	Text     string `json:"text"`
}

// BuildShareLinks composes the share targets from the site base URL and the
// post's slug and title.
func BuildShareLinks(baseURL, slug, title string) ShareLinks {
	postURL := strings.TrimRight(baseURL, "/") + "/post/" + slug
	text := fmt.Sprintf("Check out this post: %s", title)
	escapedURL := url.QueryEscape(postURL)

	return ShareLinks{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + escapedURL,
		Twitter:  "https://twitter.com/intent/tweet?url=" + escapedURL + "&text=" + url.QueryEscape(text),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + escapedURL,
		Copy:     postURL,
		Text:     text,
	}
}
