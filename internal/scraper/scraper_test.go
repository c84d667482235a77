package scraper

import (
	"strings"
	"testing"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<a href="/shows/Yorkshire-Gundog-Club-2025.aspx">Yorkshire Gundog Club</a>
<a href="https://www.fossedata.co.uk/shows/Another-Show.aspx">Another Show</a>
<a href="/shows/Yorkshire-Gundog-Club-2025.aspx">duplicate link</a>
<a href="/Shows-To-Enter.aspx">All shows</a>
<a href="/contact.html">Contact</a>
<a href="mailto:info@example.org">Email</a>
</body></html>`

func TestParseShowLinks(t *testing.T) {
	links, err := New().parseShowLinks(strings.NewReader(listingHTML))
	if err != nil {
		t.Fatalf("parseShowLinks returned error: %v", err)
	}

	want := []string{
		"https://www.fossedata.co.uk/shows/Yorkshire-Gundog-Club-2025.aspx",
		"https://www.fossedata.co.uk/shows/Another-Show.aspx",
	}
	if len(links) != len(want) {
		t.Fatalf("got %d links %v, want %d", len(links), links, len(want))
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, links[i], want[i])
		}
	}
}

func TestParseShowLinksEmptyPage(t *testing.T) {
	links, err := New().parseShowLinks(strings.NewReader("<html><body>nothing here</body></html>"))
	if err != nil {
		t.Fatalf("parseShowLinks returned error: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected no links, got %v", links)
	}
}

func TestParseShowLinksRelativeWithoutSlash(t *testing.T) {
	html := `<a href="shows/Bare-Relative.aspx">show</a>`
	links, err := New().parseShowLinks(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parseShowLinks returned error: %v", err)
	}
	if len(links) != 1 || links[0] != "https://www.fossedata.co.uk/shows/Bare-Relative.aspx" {
		t.Errorf("got %v", links)
	}
}
