package provider

import (
	"encoding/xml"

	"github.com/umayucar/search-engine/internal/domain"
)

// XMLParser parses the XML provider format: a root element containing
// items/item entries. A single item and a list of items both decode into a
// slice, so downstream code never branches on shape; the same holds for
// categories/category. encoding/xml performs no external entity resolution,
// which is required here since provider payloads are untrusted.
type XMLParser struct {
	normalizer
}

func NewXMLParser() *XMLParser {
	return &XMLParser{}
}

type xmlDocument struct {
	Items []xmlItem `xml:"items>item"`
}

type xmlItem struct {
	ID              string   `xml:"id"`
	Headline        string   `xml:"headline"`
	Type            string   `xml:"type"`
	Categories      []string `xml:"categories>category"`
	Stats           xmlStats `xml:"stats"`
	PublicationDate string   `xml:"publication_date"`
}

type xmlStats struct {
	Views       *int    `xml:"views"`
	Likes       *int    `xml:"likes"`
	Duration    *string `xml:"duration"`
	ReadingTime *int    `xml:"reading_time"`
	Reactions   *int    `xml:"reactions"`
	Comments    *int    `xml:"comments"`
}

func (p *XMLParser) Parse(data []byte) ([]RawItem, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{Format: "XML", Err: err}
	}

	if len(doc.Items) == 0 {
		return nil, &domain.StructureError{Format: "XML", Detail: "missing items/item"}
	}

	raw := make([]RawItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		raw = append(raw, RawItem{
			ID:          item.ID,
			Title:       item.Headline,
			Type:        item.Type,
			Tags:        item.Categories,
			Views:       item.Stats.Views,
			Likes:       item.Stats.Likes,
			Duration:    item.Stats.Duration,
			ReadingTime: item.Stats.ReadingTime,
			Reactions:   item.Stats.Reactions,
			Comments:    item.Stats.Comments,
			PublishedAt: item.PublicationDate,
		})
	}

	return raw, nil
}
