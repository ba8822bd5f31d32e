package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"equity-intel/internal/api"
	"equity-intel/internal/logger"
)

const googleNewsBase = "https://news.google.com"

// ScrapeFetcher scrapes Google News search results for a ticker. It is the
// last-resort source when the API and feeds come back empty.
type ScrapeFetcher struct {
	timeout     time.Duration
	maxArticles int
	baseURL     string
}

// NewScrapeFetcher creates a Google News scraper
func NewScrapeFetcher(timeout time.Duration, maxArticles int) *ScrapeFetcher {
	if maxArticles <= 0 {
		maxArticles = 15
	}
	return &ScrapeFetcher{
		timeout:     timeout,
		maxArticles: maxArticles,
		baseURL:     googleNewsBase,
	}
}

func (s *ScrapeFetcher) FetchNews(ctx context.Context, ticker string, from, to time.Time) ([]Item, error) {
	articles := []Item{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(s.baseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(s.timeout)

	headers := api.BrowserHeaders()
	c.OnRequest(func(r *colly.Request) {
		for k, v := range headers {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(articles) >= s.maxArticles {
			return
		}

		title := strings.TrimSpace(e.ChildText("h3, h4, a.JtKRv"))
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}
		if strings.HasPrefix(link, "./") {
			link = s.baseURL + link[1:]
		}

		ts, ok := parseScrapedTime(e.ChildAttr("time", "datetime"))
		if !ok || ts.Before(from) || ts.After(to) {
			return
		}

		source := strings.TrimSpace(e.ChildText("div.vr1PYe, div[data-n-tid]"))
		if source == "" {
			source = "GoogleNews"
		}

		articles = append(articles, Item{
			Headline:  title,
			Source:    source,
			Timestamp: ts,
			URL:       link,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.WarnWithErr(ctx, "Scraping error", err, "url", r.Request.URL.String())
	})

	searchQuery := url.QueryEscape(ticker + " stock")
	searchURL := fmt.Sprintf("%s/search?q=%s&hl=en-US&gl=US&ceid=US:en", s.baseURL, searchQuery)

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	logger.Info(ctx, "Google News scraping completed", "ticker", ticker, "articles", len(articles))
	return articles, nil
}

func parseScrapedTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
