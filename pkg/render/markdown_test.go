package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNarrative(t *testing.T) {
	tests := []struct {
		name     string
		md       string
		contains []string
		excludes []string
	}{
		{
			name:     "paragraphs and bold",
			md:       "First **big** news.\n\nSecond paragraph.",
			contains: []string{"<p>First <strong>big</strong> news.</p>", "<p>Second paragraph.</p>"},
		},
		{
			name:     "heading shifted and list",
			md:       "## Key points\n- one\n- two",
			contains: []string{"<h3>Key points</h3>", "<ul>", "<li>one</li>", "<li>two</li>", "</ul>"},
		},
		{
			name:     "hashtag is not a heading",
			md:       "#AI is trending\n1. first\n2. second\n\nsome *emphasis* and `code`",
			contains: []string{"<p>#AI is trending</p>", "<ol>", "<li>first</li>", "<li>second</li>",
				"<em>emphasis</em>", "<code>code</code>"},
			excludes: []string{"<h2>", "*emphasis*", "`code`"},
		},
		{
			name:     "lines in a paragraph keep breaks",
			md:       "line one\nline two",
			contains: []string{"line one<br"},
		},
		{
			name:     "links get nofollow",
			md:       "see [the post](https://x.com/i/status/1)",
			contains: []string{`href="https://x.com/i/status/1"`, `rel="nofollow`, ">the post</a>"},
		},
		{
			name:     "bare urls linked",
			md:       "read https://example.com/a today",
			contains: []string{`href="https://example.com/a"`},
		},
		{
			name:     "raw html dropped",
			md:       `<script>alert(1)</script> and <b onclick="x()">hi</b>`,
			excludes: []string{"<script>", "onclick", "<b ", "alert(1)"},
		},
		{
			name:     "javascript links dropped",
			md:       "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name: "empty input",
			md:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := string(Narrative(tt.md))
			for _, s := range tt.contains {
				assert.Contains(t, res, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, res, s)
			}
			if tt.md == "" {
				assert.Empty(t, res)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "heading paragraph and bullets",
			md:   "## Today\n\n**Big** launch, see [post](https://example.com/a).\n- item",
			want: "Today\n\nBig launch, see post (https://example.com/a).\n\n- item",
		},
		{
			name: "ordered list and inline markup",
			md:   "#AI news\n\n1. first *one*\n2. `second`",
			want: "#AI news\n\n1. first one\n2. second",
		},
		{
			name: "soft breaks kept",
			md:   "line one\nline two",
			want: "line one\nline two",
		},
		{
			name: "inline html kept verbatim",
			md:   "Big day for <models>.",
			want: "Big day for <models>.",
		},
		{
			name: "empty",
			md:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.md))
		})
	}
}
