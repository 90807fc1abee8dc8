package digest

import (
	"context"
	"fmt"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/postdigest/pkg/domain"
)

const (
	// NoHighlights is the narrative of a digest without highlights
	NoHighlights = "No highlights available."
	// NarrativeFallback replaces the narrative when generation fails
	NarrativeFallback = "Several notable developments happened today, see the selected posts below."
)

// Narrator writes the digest narrative from the highlight tier
type Narrator struct {
	generator Generator
	language  string
}

// NewNarrator makes a narrator writing in the given language, English if empty
func NewNarrator(generator Generator, language string) *Narrator {
	if language == "" {
		language = "English"
	}
	return &Narrator{generator: generator, language: language}
}

// Narrate returns the generated narrative of highlights. It never fails: no highlights give
// NoHighlights without calling the generator, a generator error gives NarrativeFallback.
func (n *Narrator) Narrate(ctx context.Context, highlights []domain.Post) string {
	if len(highlights) == 0 {
		return NoHighlights
	}

	text, err := n.generator.Generate(ctx, n.prompt(highlights))
	if err != nil {
		log.Printf("[WARN] failed to generate narrative for %d highlights: %v", len(highlights), err)
		return NarrativeFallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("[WARN] empty narrative for %d highlights", len(highlights))
		return NarrativeFallback
	}
	return text
}

func (n *Narrator) prompt(highlights []domain.Post) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the following %d posts, write a digest report in %s grouped by event.\n\n",
		len(highlights), n.language)
	sb.WriteString(`Requirements:
1. Group related posts into 3-5 events (model release, product update, company news, research, funding and so on).
2. Start with a "## Key points" section: 5-8 bullets, each starting with a [tag] and one short paragraph.
3. Then a "## Events" section. For every event write "### <event title>", a 2-3 sentence summary,
   then the related posts as bullets in this exact form:
   - **@handle (Display Name)** - summary of the post
     likes 1,234 | reshares 567 | replies 89 | bookmarks 123
     [source](post url)
4. Use only the post urls given below, never a profile link.
5. Cite the engagement numbers exactly as given.
6. Do not add an introduction paragraph.

Posts:
`)
	for i, p := range highlights {
		c := p.Item.Counts
		fmt.Fprintf(&sb, "\nPost %d by @%s (%s):\n", i+1, p.Source.Handle, p.Source.DisplayName)
		fmt.Fprintf(&sb, "Summary: %s\n", p.Analysis.Summary)
		fmt.Fprintf(&sb, "Likes: %d, Reshares: %d, Replies: %d, Bookmarks: %d\n", c.Likes, c.Reshares, c.Replies, c.Bookmarks)
		fmt.Fprintf(&sb, "URL: %s\n", p.Item.URL)
		fmt.Fprintf(&sb, "Importance: %.2f/10\n", p.Analysis.ImportanceScore)
	}
	return sb.String()
}
