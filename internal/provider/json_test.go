package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umayucar/search-engine/internal/domain"
)

func TestJSONParser_ParseAndNormalize(t *testing.T) {
	payload := []byte(`{
		"contents": [
			{
				"id": "a1",
				"title": "Hi",
				"type": "video",
				"tags": ["x"],
				"metrics": {"views": 2000, "likes": 200},
				"published_at": "2025-01-01T00:00:00Z"
			},
			{
				"id": "a2",
				"title": "Reading",
				"type": "text",
				"metrics": {},
				"published_at": "2025-02-01T12:30:00Z"
			}
		]
	}`)

	parser := NewJSONParser()

	items, err := parser.Parse(payload)
	require.NoError(t, err)
	require.Len(t, items, 2)

	contents, err := parser.Normalize(items, "JSON_Provider")
	require.NoError(t, err)
	require.Len(t, contents, 2)

	first := contents[0]
	assert.Equal(t, "a1", first.ProviderID)
	assert.Equal(t, "JSON_Provider", first.ProviderName)
	assert.Equal(t, "Hi", first.Title)
	assert.Equal(t, domain.TypeVideo, first.Type)
	assert.Equal(t, []string{"x"}, first.Tags)
	require.NotNil(t, first.Views)
	assert.Equal(t, 2000, *first.Views)
	require.NotNil(t, first.Likes)
	assert.Equal(t, 200, *first.Likes)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.PublishedAt)

	// This format never carries article metrics.
	assert.Nil(t, first.ReadingTime)
	assert.Nil(t, first.Reactions)
	assert.Nil(t, first.Comments)

	second := contents[1]
	assert.Equal(t, domain.TypeArticle, second.Type)
	assert.NotNil(t, second.Tags, "tags must default to an empty list")
	assert.Empty(t, second.Tags)
	assert.Nil(t, second.Views)
}

func TestJSONParser_TypeNormalization(t *testing.T) {
	tests := []struct {
		rawType string
		want    domain.ContentType
	}{
		{"video", domain.TypeVideo},
		{"Video", domain.TypeVideo},
		{"article", domain.TypeArticle},
		{"TEXT", domain.TypeArticle},
		{"podcast", domain.TypeArticle}, // unknown values fall back to article
	}

	parser := NewJSONParser()
	for _, tt := range tests {
		t.Run(tt.rawType, func(t *testing.T) {
			items := []RawItem{{
				ID:          "id-1",
				Title:       "t",
				Type:        tt.rawType,
				PublishedAt: "2025-01-01T00:00:00Z",
			}}
			contents, err := parser.Normalize(items, "JSON_Provider")
			require.NoError(t, err)
			require.Len(t, contents, 1)
			assert.Equal(t, tt.want, contents[0].Type)
		})
	}
}

func TestJSONParser_MalformedPayload(t *testing.T) {
	parser := NewJSONParser()

	_, err := parser.Parse([]byte(`{"contents": [`))
	require.Error(t, err)

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "JSON", parseErr.Format)
}

func TestJSONParser_MissingContents(t *testing.T) {
	parser := NewJSONParser()

	tests := []struct {
		name    string
		payload string
	}{
		{"absent key", `{"items": []}`},
		{"null contents", `{"contents": null}`},
		{"contents not a list", `{"contents": {"id": "a1"}}`},
		{"top level not an object", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.payload))
			var structErr *domain.StructureError
			require.ErrorAs(t, err, &structErr)
		})
	}
}

func TestJSONParser_MissingRequiredField(t *testing.T) {
	parser := NewJSONParser()

	items, err := parser.Parse([]byte(`{
		"contents": [{"title": "no id", "type": "video", "published_at": "2025-01-01T00:00:00Z"}]
	}`))
	require.NoError(t, err)

	_, err = parser.Normalize(items, "JSON_Provider")
	var mapErr *domain.MappingError
	require.ErrorAs(t, err, &mapErr)
	assert.Equal(t, "id", mapErr.Field)
	assert.Equal(t, 0, mapErr.Index)
}

func TestJSONParser_UnparsableDateFailsBatch(t *testing.T) {
	parser := NewJSONParser()

	items, err := parser.Parse([]byte(`{
		"contents": [
			{"id": "a1", "title": "ok", "type": "video", "published_at": "2025-01-01T00:00:00Z"},
			{"id": "a2", "title": "bad", "type": "video", "published_at": "not-a-date"}
		]
	}`))
	require.NoError(t, err)

	_, err = parser.Normalize(items, "JSON_Provider")
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestJSONParser_DateLayouts(t *testing.T) {
	parser := NewJSONParser()

	for _, date := range []string{
		"2025-01-01T00:00:00Z",
		"2025-01-01T00:00:00+03:00",
		"2025-01-01T00:00:00",
		"2025-01-01 00:00:00",
		"2025-01-01",
	} {
		items := []RawItem{{ID: "a1", Title: "t", Type: "video", PublishedAt: date}}
		contents, err := parser.Normalize(items, "JSON_Provider")
		require.NoError(t, err, "date %q", date)
		assert.Equal(t, 2025, contents[0].PublishedAt.Year())
	}
}
