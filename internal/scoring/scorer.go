// Package scoring computes the composite relevance/popularity score of a
// content record. Score is a pure function; persistence of the returned
// value is the caller's job, which keeps the engine independently testable.
package scoring

import (
	"time"

	"github.com/umayucar/search-engine/internal/domain"
)

// Score returns the composite score of a record at the given evaluation
// time:
//
//	final = base*typeCoefficient + freshness + interaction
//
// Missing optional metric fields count as zero.
func Score(c *domain.Content, now time.Time) float64 {
	base := baseScore(c)
	coefficient := typeCoefficient(c.Type)
	freshness := freshnessScore(c.PublishedAt, now)
	interaction := interactionScore(c)

	return base*coefficient + float64(freshness) + interaction
}

func baseScore(c *domain.Content) float64 {
	if c.Type == domain.TypeVideo {
		return float64(intValue(c.Views))/1000 + float64(intValue(c.Likes))/100
	}
	return float64(intValue(c.ReadingTime)) + float64(intValue(c.Reactions))/50
}

func typeCoefficient(t domain.ContentType) float64 {
	if t == domain.TypeVideo {
		return 1.5
	}
	return 1.0
}

// freshnessScore is a step function on whole days since publication:
// <=7 days 5, <=30 days 3, <=90 days 1, otherwise 0.
func freshnessScore(publishedAt, now time.Time) int {
	days := int(now.Sub(publishedAt).Hours() / 24)
	switch {
	case days <= 7:
		return 5
	case days <= 30:
		return 3
	case days <= 90:
		return 1
	default:
		return 0
	}
}

func interactionScore(c *domain.Content) float64 {
	switch {
	case c.Type == domain.TypeVideo && intValue(c.Views) > 0:
		return float64(intValue(c.Likes)) / float64(intValue(c.Views)) * 10
	case c.Type == domain.TypeArticle && intValue(c.ReadingTime) > 0:
		return float64(intValue(c.Reactions)) / float64(intValue(c.ReadingTime)) * 5
	default:
		return 0
	}
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
