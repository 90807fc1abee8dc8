// Package feed publishes digests and sources as RSS 2.0 and OPML documents.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/postdigest/pkg/domain"
	"github.com/umputun/postdigest/pkg/render"
)

// Generator creates RSS feeds from digests
type Generator struct {
	baseURL string
	title   string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL, title string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		title:   title,
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed with one item per digest, in the given order
func (g *Generator) GenerateRSS(digests []domain.Digest) (string, error) {
	rssItems := make([]*RSSItem, 0, len(digests))
	for _, d := range digests {
		rssItems = append(rssItems, g.convertToRSSItem(d))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         g.title,
			Link:          g.baseURL + "/",
			Description:   g.title + ": daily digests of curated posts",
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(d domain.Digest) *RSSItem {
	desc := fmt.Sprintf("%d posts: %d highlights, %d more", d.TotalCount, d.HighlightCount, d.CompactCount)
	if len(d.Topics) > 0 {
		desc += "\nTopics: " + strings.Join(d.Topics, ", ")
	}
	if narrative := render.PlainText(d.Narrative); narrative != "" {
		desc += "\n\n" + narrative
	}

	return &RSSItem{
		Title:       fmt.Sprintf("%s | %s", g.title, d.DateString()),
		Link:        g.baseURL + "/digest/" + d.Slug,
		GUID:        GUID{Value: d.Slug},
		Description: desc,
		PubDate:     d.CreatedAt.Format(time.RFC1123Z),
		Categories:  d.Topics,
	}
}

// GenerateOPML creates an OPML file with the active sources, feed sources point to their feed
func (g *Generator) GenerateOPML(sources []domain.Source) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr,omitempty"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(sources))
	for _, src := range sources {
		if !src.Active {
			continue
		}
		text := src.DisplayName
		if text == "" {
			text = src.Handle
		}
		o := outline{Text: text, Title: text, Type: "link", HTMLUrl: "https://x.com/" + src.Handle}
		if src.FeedURL != "" {
			o.Type, o.XMLUrl, o.HTMLUrl = "rss", src.FeedURL, ""
		}
		outlines = append(outlines, o)
	}

	doc := opml{
		Version: "2.0",
		Head:    head{Title: g.title + " sources", DateCreated: g.now().Format(time.RFC1123Z)},
		Body:    body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
