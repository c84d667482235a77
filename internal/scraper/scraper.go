// Package scraper fetches the fossedata show listing and extracts the
// per-show schedule page links.
package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	ShowListURL = "https://www.fossedata.co.uk/shows.aspx"
	BaseURL     = "https://www.fossedata.co.uk"
	UserAgent   = "fossedata-render/1.0 (github.com/laurab04-design/fossedata-render)"
	Timeout     = 30 * time.Second
)

// Scraper handles fetching and parsing the fossedata show listing.
type Scraper struct {
	client *http.Client
	url    string
}

// New creates a new Scraper instance.
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: ShowListURL,
	}
}

// FetchShowLinks fetches the listing page and returns the absolute URLs of
// every show page on it.
func (s *Scraper) FetchShowLinks() ([]string, error) {
	req, err := http.NewRequest("GET", s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching show list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseShowLinks(resp.Body)
}

// parseShowLinks extracts show page links from the listing HTML. Show pages
// are the .aspx links; the "Shows-To-Enter" navigation pages are not shows.
func (s *Scraper) parseShowLinks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	seen := make(map[string]bool)
	links := make([]string, 0)

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !strings.HasSuffix(href, ".aspx") || strings.Contains(href, "Shows-To-Enter") {
			return
		}

		full := href
		if !strings.HasPrefix(full, "http") {
			full = BaseURL + "/" + strings.TrimPrefix(full, "/")
		}

		if !seen[full] {
			seen[full] = true
			links = append(links, full)
		}
	})

	return links, nil
}
