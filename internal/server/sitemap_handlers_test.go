package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemap(t *testing.T) {
	_, app, db := setupHandlerTest(t)
	author := createAuthor(t, db, "sitemap@bioainexus.example", false)
	createPost(t, db, author.ID, "Indexed Piece", "indexed-piece", true)
	createPost(t, db, author.ID, "Unindexed Draft", "unindexed-draft", false)

	resp, raw := doJSON(t, app, http.MethodGet, "/sitemap.xml", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))

	body := string(raw)
	assert.Contains(t, body, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, body, "http://www.sitemaps.org/schemas/sitemap/0.9")
	assert.Contains(t, body, "<loc>https://bioainexus.example/</loc>")
	assert.Contains(t, body, "<loc>https://bioainexus.example/about</loc>")
	assert.Contains(t, body, "<loc>https://bioainexus.example/contact</loc>")
	assert.Contains(t, body, "<loc>https://bioainexus.example/post/indexed-piece</loc>")
	assert.NotContains(t, body, "unindexed-draft")
	assert.Contains(t, body, "<changefreq>daily</changefreq>")
	assert.Contains(t, body, "<priority>1.0</priority>")
	assert.Contains(t, body, "<changefreq>weekly</changefreq>")
	assert.Contains(t, body, "<priority>0.9</priority>")
	assert.Contains(t, body, "<lastmod>")
}

func TestRSSFeed(t *testing.T) {
	_, app, db := setupHandlerTest(t)
	author := createAuthor(t, db, "rss@bioainexus.example", false)
	createPost(t, db, author.ID, "Syndicated Piece", "syndicated-piece", true)

	resp, raw := doJSON(t, app, http.MethodGet, "/rss.xml", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Contains(t, resp.Header.Get("Content-Type"), "application/rss+xml")

	body := string(raw)
	assert.Contains(t, body, "<title>BioAi Nexus</title>")
	assert.Contains(t, body, "<title>Syndicated Piece</title>")
	assert.Contains(t, body, "<link>https://bioainexus.example/post/syndicated-piece</link>")
	assert.Contains(t, body, "<description>excerpt for Syndicated Piece</description>")
}
