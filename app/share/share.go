// Package share builds outbound links to social networks.
package share

import (
	"net/url"
	"strings"
)

// Links are the share targets offered under a blog post.
type Links struct {
	Facebook string
	Twitter  string
	LinkedIn string
}

// For returns share links for the page at pageURL.
func For(pageURL, title string) Links {
	u := url.QueryEscape(pageURL)
	return Links{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + u,
		Twitter:  "https://twitter.com/intent/tweet?url=" + u + "&text=" + url.QueryEscape(title),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + u,
	}
}

// AbsoluteURL joins the request scheme and host with path. Behind a proxy
// the forwarded protocol wins.
func AbsoluteURL(host, forwardedProto string, tls bool, path string) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	if p := strings.ToLower(forwardedProto); p == "http" || p == "https" {
		scheme = p
	}
	return (&url.URL{Scheme: scheme, Host: host, Path: path}).String()
}

// MapEmbedAllowed reports whether src may be rendered in the contact page
// iframe. Only https Google Maps embeds are accepted.
func MapEmbedAllowed(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host == "www.google.com" && strings.HasPrefix(u.Path, "/maps/embed")
}
