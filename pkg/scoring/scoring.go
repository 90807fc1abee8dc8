// Package scoring implements the engagement scorer and the relevance/importance combiner.
// Both are pure functions of their inputs.
package scoring

import (
	"math"

	"github.com/umputun/postdigest/pkg/domain"
)

// Weights are per-interaction multipliers of the engagement score
type Weights struct {
	Like     float64
	Reshare  float64
	Reply    float64
	Bookmark float64
}

// DefaultWeights returns like/reshare/reply/bookmark weights of 1.0/2.0/1.5/2.5
func DefaultWeights() Weights {
	return Weights{Like: 1.0, Reshare: 2.0, Reply: 1.5, Bookmark: 2.5}
}

// Engagement returns the weighted sum of interaction counts
func (w Weights) Engagement(c domain.Counts) float64 {
	return float64(c.Likes)*w.Like +
		float64(c.Reshares)*w.Reshare +
		float64(c.Replies)*w.Reply +
		float64(c.Bookmarks)*w.Bookmark
}

// Combiner blends normalized engagement with oracle relevance into importance
type Combiner struct {
	fraction float64 // relevance share of the importance, 0..1
}

// NewCombiner makes a combiner from the relevance weight setting (0..10, 3.0 means 30%)
func NewCombiner(relevanceWeight float64) Combiner {
	return Combiner{fraction: clamp(relevanceWeight, 0, 10) / 10}
}

// Fraction returns the relevance share used by the combiner
func (c Combiner) Fraction() float64 { return c.fraction }

// Importance computes the 0..10 importance score rounded to 2 decimals.
// maxEngagement is the maximum engagement within the batch being processed; zero is treated as 1.
func (c Combiner) Importance(engagement, maxEngagement, relevance float64) float64 {
	normalized := NormalizeEngagement(engagement, maxEngagement)
	importance := normalized*(1-c.fraction) + clamp(relevance, 0, 10)*c.fraction
	return math.Round(importance*100) / 100
}

// NormalizeEngagement scales engagement to 0..10 relative to the batch maximum
func NormalizeEngagement(engagement, maxEngagement float64) float64 {
	if maxEngagement <= 0 {
		maxEngagement = 1
	}
	if engagement <= 0 {
		return 0
	}
	return clamp(engagement/maxEngagement*10, 0, 10)
}

// MaxEngagement returns the largest engagement score of the items
func MaxEngagement(items []domain.Item) float64 {
	var res float64
	for _, it := range items {
		if it.EngagementScore > res {
			res = it.EngagementScore
		}
	}
	return res
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
