// Package provider contains the format-specific parsers that turn raw
// provider payloads into normalized content records. Parsers are pure and
// stateless: fetching is the fetcher's job, persistence is the sync
// service's job. Adding a new upstream format means implementing Parser.
package provider

import (
	"strings"
	"time"

	"github.com/umayucar/search-engine/internal/domain"
)

// RawItem is the format-agnostic intermediate shape produced by Parse.
// Optional metric fields stay nil when the upstream payload omits them.
type RawItem struct {
	ID          string
	Title       string
	Type        string
	Tags        []string
	Views       *int
	Likes       *int
	Duration    *string
	ReadingTime *int
	Reactions   *int
	Comments    *int
	PublishedAt string
}

// Parser is the capability set shared by all provider formats.
type Parser interface {
	// Parse turns a raw payload into a uniform item list. It returns a
	// ParseError for a malformed byte stream and a StructureError when the
	// document is well-formed but the expected container is missing.
	Parse(data []byte) ([]RawItem, error)

	// Normalize maps parsed items onto the unified content schema. A missing
	// required field fails the whole batch with a MappingError.
	Normalize(items []RawItem, providerName string) ([]domain.Content, error)
}

// normalizer implements the format-independent half of the Parser contract.
// Both format parsers embed it.
type normalizer struct{}

func (normalizer) Normalize(items []RawItem, providerName string) ([]domain.Content, error) {
	contents := make([]domain.Content, 0, len(items))

	for i, item := range items {
		if item.ID == "" {
			return nil, &domain.MappingError{Field: "id", Index: i}
		}
		if item.Title == "" {
			return nil, &domain.MappingError{Field: "title", Index: i}
		}
		if item.Type == "" {
			return nil, &domain.MappingError{Field: "type", Index: i}
		}
		if item.PublishedAt == "" {
			return nil, &domain.MappingError{Field: "published_at", Index: i}
		}

		publishedAt, err := parseDateTime(item.PublishedAt)
		if err != nil {
			return nil, err
		}

		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}

		contents = append(contents, domain.Content{
			ProviderID:   item.ID,
			ProviderName: providerName,
			Title:        item.Title,
			Type:         normalizeType(item.Type),
			Tags:         tags,
			Views:        item.Views,
			Likes:        item.Likes,
			Duration:     item.Duration,
			ReadingTime:  item.ReadingTime,
			Reactions:    item.Reactions,
			Comments:     item.Comments,
			PublishedAt:  publishedAt,
		})
	}

	return contents, nil
}

// normalizeType maps provider type strings onto the content type enum.
// Unknown values fall back to article; that is deliberate provider-tolerance
// policy, not an error.
func normalizeType(t string) domain.ContentType {
	switch strings.ToLower(t) {
	case "video":
		return domain.TypeVideo
	case "article", "text":
		return domain.TypeArticle
	default:
		return domain.TypeArticle
	}
}

// dateLayouts are tried in order when parsing provider timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &domain.ParseError{Format: "datetime", Err: lastErr}
}
