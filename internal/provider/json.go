package provider

import (
	"encoding/json"
	"errors"

	"github.com/umayucar/search-engine/internal/domain"
)

// JSONParser parses the JSON provider format: a top-level object with a
// "contents" array. This format only carries video-style metrics, so article
// fields are always left unset.
type JSONParser struct {
	normalizer
}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

type jsonItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Tags        []string    `json:"tags"`
	Metrics     jsonMetrics `json:"metrics"`
	PublishedAt string      `json:"published_at"`
}

type jsonMetrics struct {
	Views    *int    `json:"views"`
	Likes    *int    `json:"likes"`
	Duration *string `json:"duration"`
}

func (p *JSONParser) Parse(data []byte) ([]RawItem, error) {
	var doc struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// Well-formed JSON whose top level is not an object.
			return nil, &domain.StructureError{Format: "JSON", Detail: "missing contents array"}
		}
		return nil, &domain.ParseError{Format: "JSON", Err: err}
	}

	if len(doc.Contents) == 0 || string(doc.Contents) == "null" {
		return nil, &domain.StructureError{Format: "JSON", Detail: "missing contents array"}
	}

	var items []jsonItem
	if err := json.Unmarshal(doc.Contents, &items); err != nil {
		return nil, &domain.StructureError{Format: "JSON", Detail: "contents is not a list of items"}
	}

	raw := make([]RawItem, 0, len(items))
	for _, item := range items {
		raw = append(raw, RawItem{
			ID:          item.ID,
			Title:       item.Title,
			Type:        item.Type,
			Tags:        item.Tags,
			Views:       item.Metrics.Views,
			Likes:       item.Metrics.Likes,
			Duration:    item.Metrics.Duration,
			PublishedAt: item.PublishedAt,
		})
	}

	return raw, nil
}
