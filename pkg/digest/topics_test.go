package digest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTopics(t *testing.T) {
	tbl := []struct {
		name  string
		lists [][]string
		limit int
		want  []string
	}{
		{name: "frequency then first seen", lists: [][]string{{"A", "B"}, {"A"}, {"C", "A"}}, limit: 10,
			want: []string{"A", "B", "C"}},
		{name: "empty", lists: nil, limit: 10, want: []string{}},
		{name: "items without topics", lists: [][]string{nil, {}, {"X"}}, limit: 10, want: []string{"X"}},
		{name: "case sensitive", lists: [][]string{{"ai", "AI"}, {"AI"}}, limit: 10, want: []string{"AI", "ai"}},
		{name: "limit", lists: [][]string{{"a", "b", "c"}, {"c"}}, limit: 2, want: []string{"c", "a"}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTopics(tt.lists, tt.limit))
		})
	}
}

func TestExtractTopics_BoundedToTen(t *testing.T) {
	var lists [][]string
	for i := range 15 {
		lists = append(lists, []string{fmt.Sprintf("t%02d", i)})
	}
	res := ExtractTopics(lists, MaxTopics)
	assert.Len(t, res, 10)
	assert.Equal(t, "t00", res[0])
	assert.Equal(t, "t09", res[9])
}
