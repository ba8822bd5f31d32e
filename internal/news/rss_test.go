package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-intel/internal/api"
)

func rssBody() string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Yahoo Finance</title>
<item><title>XYZ posts record quarterly revenue</title><link>https://example.com/1</link>
<description>&lt;p&gt;Revenue up&lt;/p&gt;</description><pubDate>%s</pubDate></item>
<item><title>Old XYZ story</title><link>https://example.com/2</link><pubDate>%s</pubDate></item>
<item><title>Undated XYZ story</title><link>https://example.com/3</link></item>
</channel></rss>`,
		testNow.Add(-2*time.Hour).Format(time.RFC1123Z),
		testNow.AddDate(0, 0, -30).Format(time.RFC1123Z))
}

func TestRSSFetcher(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssBody())
	}))
	defer srv.Close()

	f := NewRSSFetcher([]string{srv.URL + "/rss/{symbol}", "ftp://ignored"}, 5*time.Second)
	items, err := f.FetchNews(context.Background(), "XYZ", testNow.AddDate(0, 0, -7), testNow)
	require.NoError(t, err)
	assert.Equal(t, "/rss/XYZ", gotPath)
	assert.Equal(t, api.BrowserHeaders()["User-Agent"], gotAgent)
	require.Len(t, items, 1)
	assert.Equal(t, "XYZ posts record quarterly revenue", items[0].Headline)
	assert.Equal(t, "Yahoo Finance", items[0].Source)
	assert.Equal(t, "https://example.com/1", items[0].URL)
}

func TestRSSFetcherAllFeedsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewRSSFetcher([]string{srv.URL + "/{symbol}"}, time.Second)
	_, err := f.FetchNews(context.Background(), "XYZ", testNow.AddDate(0, 0, -7), testNow)
	assert.Error(t, err)
}

func TestRSSFetcherNoFeeds(t *testing.T) {
	_, err := NewRSSFetcher(nil, time.Second).FetchNews(context.Background(), "XYZ", testNow, testNow)
	assert.Error(t, err)
}

func TestScrapeFetcher(t *testing.T) {
	page := fmt.Sprintf(`<html><body>
<article><h3>XYZ shares surge</h3><a href="./articles/abc">link</a><time datetime="%s"></time></article>
<article><h3>Ancient XYZ news</h3><a href="./articles/old">link</a><time datetime="%s"></time></article>
<article><h3>No link</h3></article>
</body></html>`,
		testNow.Add(-time.Hour).Format(time.RFC3339),
		testNow.AddDate(-1, 0, 0).Format(time.RFC3339))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	s := NewScrapeFetcher(5*time.Second, 10)
	s.baseURL = srv.URL

	items, err := s.FetchNews(context.Background(), "XYZ", testNow.AddDate(0, 0, -7), testNow)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "XYZ shares surge", items[0].Headline)
	assert.Equal(t, srv.URL+"/articles/abc", items[0].URL)
	assert.Equal(t, "GoogleNews", items[0].Source)
}

func googleNewsPage() string {
	return fmt.Sprintf(`<html><body>
<article><h3>XYZ shares jump after upgrade</h3><a href="./articles/abc">open</a>
<time datetime="%s"></time><div data-n-tid="9">Reuters</div></article>
<article><h3>XYZ story from last month</h3><a href="./articles/old">open</a>
<time datetime="%s"></time></article>
<article><h3>Undated XYZ story</h3><a href="./articles/undated">open</a></article>
</body></html>`,
		testNow.Add(-3*time.Hour).Format(time.RFC3339),
		testNow.AddDate(0, 0, -30).Format(time.RFC3339))
}

func TestScrapeFetcherSendsBrowserHeaders(t *testing.T) {
	var gotQuery, gotAgent, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, googleNewsPage())
	}))
	defer srv.Close()

	f := NewScrapeFetcher(5*time.Second, 10)
	f.baseURL = srv.URL

	items, err := f.FetchNews(context.Background(), "XYZ", testNow.AddDate(0, 0, -7), testNow)
	require.NoError(t, err)

	headers := api.BrowserHeaders()
	assert.Equal(t, "XYZ stock", gotQuery)
	assert.Equal(t, headers["User-Agent"], gotAgent)
	assert.Equal(t, headers["Accept-Language"], gotLang)

	require.Len(t, items, 1)
	assert.Equal(t, "XYZ shares jump after upgrade", items[0].Headline)
	assert.Equal(t, "Reuters", items[0].Source)
	assert.Equal(t, srv.URL+"/articles/abc", items[0].URL)
}
