// Package render turns stored digests into the HTML page, the email body and
// its plain-text alternative.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/umputun/postdigest/pkg/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer renders digest views with the embedded templates
type Renderer struct {
	title   string
	baseURL string
	tmpl    *template.Template
}

// Email is a rendered digest email
type Email struct {
	Subject string
	HTML    string
	Text    string
}

type digestData struct {
	Title       string
	Date        string
	Description string
	Total       int
	Topics      []string
	Narrative   template.HTML
	Highlights  []postData
	Compact     []postData
	PageURL     string
	FeedURL     string
}

type postData struct {
	Tier          domain.Tier
	Handle        string
	DisplayName   string
	Text          string
	Summary       string
	Translation   string
	Topics        []string
	URL           string
	ScreenshotURL string
	Likes         int
	Reshares      int
	Replies       int
	Importance    float64
}

// New parses the embedded templates. baseURL is used for page and feed links, may be empty.
func New(title, baseURL string) (*Renderer, error) {
	tmpl, err := template.New("digest").Funcs(template.FuncMap{
		"score": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{title: title, baseURL: strings.TrimRight(baseURL, "/"), tmpl: tmpl}, nil
}

// Page renders the standalone web page of a digest
func (r *Renderer) Page(view domain.DigestView) ([]byte, error) {
	data := r.data(view)
	if r.baseURL != "" {
		data.FeedURL = r.baseURL + "/rss"
	}
	data.PageURL = ""
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// Email renders the digest email with html and plain text bodies
func (r *Renderer) Email(view domain.DigestView) (Email, error) {
	data := r.data(view)
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return Email{}, fmt.Errorf("render email: %w", err)
	}
	return Email{Subject: Subject(view.Digest), HTML: buf.String(), Text: plainText(data, view.Digest.Narrative)}, nil
}

// Subject returns the email subject of a digest
func Subject(d domain.Digest) string {
	return "Daily digest | " + d.DateString()
}

// PageURL returns the public link of a digest page, empty without base url
func (r *Renderer) PageURL(d domain.Digest) string {
	if r.baseURL == "" {
		return ""
	}
	return r.baseURL + "/digest/" + d.Slug
}

func (r *Renderer) data(view domain.DigestView) digestData {
	d := view.Digest
	return digestData{
		Title:       r.title,
		Date:        d.DateString(),
		Description: d.Description,
		Total:       d.TotalCount,
		Topics:      d.Topics,
		Narrative:   Narrative(d.Narrative),
		Highlights:  toPostData(view.Highlights, domain.TierHighlight),
		Compact:     toPostData(view.Compact, domain.TierCompact),
		PageURL:     r.PageURL(d),
	}
}

func toPostData(posts []domain.Post, tier domain.Tier) []postData {
	res := make([]postData, 0, len(posts))
	for _, p := range posts {
		res = append(res, postData{
			Tier:          tier,
			Handle:        p.Source.Handle,
			DisplayName:   p.Source.DisplayName,
			Text:          p.Item.Text,
			Summary:       p.Analysis.Summary,
			Translation:   p.Analysis.Translation,
			Topics:        p.Analysis.Topics,
			URL:           p.Item.URL,
			ScreenshotURL: p.Analysis.ScreenshotURL,
			Likes:         p.Item.Counts.Likes,
			Reshares:      p.Item.Counts.Reshares,
			Replies:       p.Item.Counts.Replies,
			Importance:    p.Analysis.ImportanceScore,
		})
	}
	return res
}

func plainText(data digestData, narrative string) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s\n%s\n\n", data.Title, data.Date)
	if n := PlainText(narrative); n != "" {
		buf.WriteString(n + "\n\n")
	}

	section := func(name string, posts []postData) {
		if len(posts) == 0 {
			return
		}
		buf.WriteString(name + "\n\n")
		for i, p := range posts {
			text := p.Summary
			if text == "" {
				text = p.Text
			}
			fmt.Fprintf(&buf, "%d. @%s: %s\n", i+1, p.Handle, text)
			if p.Translation != "" {
				fmt.Fprintf(&buf, "   %s\n", p.Translation)
			}
			fmt.Fprintf(&buf, "   %s\n\n", p.URL)
		}
	}
	section("Highlights", data.Highlights)
	section("Also notable", data.Compact)

	if data.PageURL != "" {
		fmt.Fprintf(&buf, "Open in browser: %s\n", data.PageURL)
	}
	return buf.String()
}
