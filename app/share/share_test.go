package share

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	links := For("https://example.com/blog/react-hooks?ref=x&y=1", "Hooks & Effects")

	fb, err := url.Parse(links.Facebook)
	require.NoError(t, err)
	assert.Equal(t, "www.facebook.com", fb.Host)
	assert.Equal(t, "https://example.com/blog/react-hooks?ref=x&y=1", fb.Query().Get("u"))

	tw, err := url.Parse(links.Twitter)
	require.NoError(t, err)
	assert.Equal(t, "Hooks & Effects", tw.Query().Get("text"))
	assert.Equal(t, "https://example.com/blog/react-hooks?ref=x&y=1", tw.Query().Get("url"))

	li, err := url.Parse(links.LinkedIn)
	require.NoError(t, err)
	assert.Equal(t, "/sharing/share-offsite/", li.Path)
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/blog/a", AbsoluteURL("localhost:8080", "", false, "/blog/a"))
	assert.Equal(t, "https://example.com/blog/a", AbsoluteURL("example.com", "", true, "/blog/a"))
	assert.Equal(t, "https://example.com/blog/a", AbsoluteURL("example.com", "HTTPS", false, "/blog/a"))
	assert.Equal(t, "http://example.com/x", AbsoluteURL("example.com", "gopher", false, "/x"))
}

func TestMapEmbedAllowed(t *testing.T) {
	assert.True(t, MapEmbedAllowed("https://www.google.com/maps/embed?pb=!1m18"))
	assert.False(t, MapEmbedAllowed("http://www.google.com/maps/embed?pb=!1m18"))
	assert.False(t, MapEmbedAllowed("https://evil.example/maps/embed"))
	assert.False(t, MapEmbedAllowed("javascript:alert(1)"))
	assert.False(t, MapEmbedAllowed(""))
}
