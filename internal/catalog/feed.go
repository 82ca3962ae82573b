package catalog

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed/atom"
	ext "github.com/mmcdole/gofeed/extensions"
)

// FeedAdapter pulls movie entries from an Atom catalog feed.
//
// Feed contract: each <entry> is one movie. The title comes from
// <title>, the summary from <summary>, and <category> elements carry
// the graph neighborhood, keyed by scheme: genre, actor and director
// schemes map to IN_GENRE, ACTED_IN and DIRECTED edges. Categories
// without a scheme count as genres. Year, rating and tagline ride in
// cg:-namespaced extension elements.
type FeedAdapter struct {
	feedURL  string
	username string
	password string
	client   *http.Client
}

const (
	relNext = "next"

	schemeGenre    = "https://cinegraph.dev/ns/genre"
	schemeActor    = "https://cinegraph.dev/ns/actor"
	schemeDirector = "https://cinegraph.dev/ns/director"

	extNamespace = "cg"
)

func NewFeedAdapter(feedURL, username, password, logLevel string) *FeedAdapter {
	// Default to the conventional document name when only a host is given
	if feedURL != "" {
		if u, err := url.Parse(feedURL); err == nil && u.Scheme != "" {
			if u.Path == "" || u.Path == "/" {
				u.Path = "/feed.xml"
				feedURL = u.String()
			}
		}
	}

	return &FeedAdapter{
		feedURL:  feedURL,
		username: username,
		password: password,
		client: &http.Client{
			Transport: &LoggingTransport{LogLevel: logLevel},
			Timeout:   2 * time.Minute,
		},
	}
}

// FetchEntries walks the feed including rel="next" pages and returns every
// movie entry updated after the given watermark. Individual page failures
// are logged and skipped so one bad page cannot sink a whole run.
func (a *FeedAdapter) FetchEntries(ctx context.Context, since int64) ([]Entry, error) {
	if a.feedURL == "" {
		return nil, fmt.Errorf("catalog feed URL is not configured")
	}

	var all []Entry
	visited := make(map[string]bool)
	next := a.feedURL

	const maxPages = 50 // guards against pagination cycles
	for pages := 0; next != "" && pages < maxPages; pages++ {
		if visited[next] {
			break
		}
		visited[next] = true

		entries, nextURL, err := a.fetchPage(ctx, next, since)
		if err != nil {
			log.Printf("[Catalog] Skipping feed page %s: %v", next, err)
			break
		}
		all = append(all, entries...)
		next = nextURL
	}

	return all, nil
}

func (a *FeedAdapter) fetchPage(ctx context.Context, targetURL string, since int64) ([]Entry, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", targetURL, nil)
	if err != nil {
		return nil, "", err
	}

	if a.username != "" {
		req.SetBasicAuth(a.username, a.password)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch catalog feed from %s: %w", targetURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("catalog feed returned status: %d", resp.StatusCode)
	}

	fp := &atom.Parser{}
	feed, err := fp.Parse(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse catalog feed as Atom: %w", err)
	}

	baseURL, _ := url.Parse(targetURL)

	var entries []Entry
	for _, item := range feed.Entries {
		var updated time.Time
		if item.UpdatedParsed != nil {
			updated = *item.UpdatedParsed
		} else if item.PublishedParsed != nil {
			updated = *item.PublishedParsed
		}

		if !updated.IsZero() && updated.Unix() <= since {
			continue
		}

		entry := Entry{
			GUID:      item.ID,
			Title:     item.Title,
			Summary:   item.Summary,
			UpdatedAt: updated,
		}
		if entry.GUID == "" {
			entry.GUID = item.Title
		}
		if entry.UpdatedAt.IsZero() {
			entry.UpdatedAt = time.Now()
		}

		for _, cat := range item.Categories {
			if cat == nil || cat.Term == "" {
				continue
			}
			switch cat.Scheme {
			case schemeActor:
				entry.Cast = append(entry.Cast, cat.Term)
			case schemeDirector:
				entry.Director = cat.Term
			case schemeGenre, "":
				entry.Genres = append(entry.Genres, cat.Term)
			}
		}

		entry.Year = extInt(item.Extensions, "year")
		entry.Rating = extFloat(item.Extensions, "rating")
		entry.Tagline = extString(item.Extensions, "tagline")

		if entry.Title == "" {
			log.Printf("[Catalog] Skipping feed entry %s: missing title", entry.GUID)
			continue
		}

		entries = append(entries, entry)
	}

	// Follow rel="next" for paginated catalogs
	nextPageURL := ""
	for _, link := range feed.Links {
		if link != nil && link.Rel == relNext {
			if ref, err := url.Parse(link.Href); err == nil {
				nextPageURL = baseURL.ResolveReference(ref).String()
			}
			break
		}
	}

	return entries, nextPageURL, nil
}

func extString(exts ext.Extensions, name string) string {
	values, ok := exts[extNamespace][name]
	if !ok || len(values) == 0 {
		return ""
	}
	return values[0].Value
}

func extInt(exts ext.Extensions, name string) int64 {
	raw := extString(exts, name)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func extFloat(exts ext.Extensions, name string) float64 {
	raw := extString(exts, name)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}
