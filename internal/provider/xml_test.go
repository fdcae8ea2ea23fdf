package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umayucar/search-engine/internal/domain"
)

func TestXMLParser_ParseAndNormalize(t *testing.T) {
	payload := []byte(`
		<feed>
			<items>
				<item>
					<id>x1</id>
					<headline>Watch this</headline>
					<type>video</type>
					<categories>
						<category>go</category>
						<category>backend</category>
					</categories>
					<stats>
						<views>1500</views>
						<likes>30</likes>
						<duration>10:23</duration>
					</stats>
					<publication_date>2025-03-01T09:00:00Z</publication_date>
				</item>
				<item>
					<id>x2</id>
					<headline>Read this</headline>
					<type>article</type>
					<categories>
						<category>go</category>
					</categories>
					<stats>
						<reading_time>8</reading_time>
						<reactions>40</reactions>
						<comments>5</comments>
					</stats>
					<publication_date>2025-03-02T09:00:00Z</publication_date>
				</item>
			</items>
		</feed>`)

	parser := NewXMLParser()

	items, err := parser.Parse(payload)
	require.NoError(t, err)
	require.Len(t, items, 2)

	contents, err := parser.Normalize(items, "XML_Provider")
	require.NoError(t, err)
	require.Len(t, contents, 2)

	video := contents[0]
	assert.Equal(t, "x1", video.ProviderID)
	assert.Equal(t, "XML_Provider", video.ProviderName)
	assert.Equal(t, "Watch this", video.Title, "headline maps to title")
	assert.Equal(t, domain.TypeVideo, video.Type)
	assert.Equal(t, []string{"go", "backend"}, video.Tags)
	require.NotNil(t, video.Views)
	assert.Equal(t, 1500, *video.Views)
	require.NotNil(t, video.Duration)
	assert.Equal(t, "10:23", *video.Duration)

	article := contents[1]
	assert.Equal(t, domain.TypeArticle, article.Type)
	require.NotNil(t, article.ReadingTime)
	assert.Equal(t, 8, *article.ReadingTime)
	require.NotNil(t, article.Reactions)
	assert.Equal(t, 40, *article.Reactions)
	require.NotNil(t, article.Comments)
	assert.Equal(t, 5, *article.Comments)
	assert.Nil(t, article.Views)
}

func TestXMLParser_SingleItem(t *testing.T) {
	payload := []byte(`
		<feed>
			<items>
				<item>
					<id>solo</id>
					<headline>Only one</headline>
					<type>article</type>
					<publication_date>2025-01-15</publication_date>
				</item>
			</items>
		</feed>`)

	parser := NewXMLParser()

	items, err := parser.Parse(payload)
	require.NoError(t, err)
	require.Len(t, items, 1, "a single item still yields a one-element list")

	contents, err := parser.Normalize(items, "XML_Provider")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "solo", contents[0].ProviderID)
	assert.NotNil(t, contents[0].Tags)
	assert.Empty(t, contents[0].Tags)
}

func TestXMLParser_SingleCategory(t *testing.T) {
	payload := []byte(`
		<feed>
			<items>
				<item>
					<id>c1</id>
					<headline>t</headline>
					<type>article</type>
					<categories><category>solo-tag</category></categories>
					<publication_date>2025-01-15</publication_date>
				</item>
			</items>
		</feed>`)

	parser := NewXMLParser()
	items, err := parser.Parse(payload)
	require.NoError(t, err)

	contents, err := parser.Normalize(items, "XML_Provider")
	require.NoError(t, err)
	assert.Equal(t, []string{"solo-tag"}, contents[0].Tags)
}

func TestXMLParser_MalformedDocument(t *testing.T) {
	parser := NewXMLParser()

	_, err := parser.Parse([]byte(`<feed><items><item>`))
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "XML", parseErr.Format)
}

func TestXMLParser_MissingItems(t *testing.T) {
	parser := NewXMLParser()

	for _, payload := range []string{
		`<feed></feed>`,
		`<feed><items></items></feed>`,
		`<feed><entries><entry><id>1</id></entry></entries></feed>`,
	} {
		_, err := parser.Parse([]byte(payload))
		var structErr *domain.StructureError
		require.ErrorAs(t, err, &structErr, "payload %s", payload)
	}
}

func TestXMLParser_ExternalEntitiesNotResolved(t *testing.T) {
	// Payloads referencing external entities must not cause any resolution;
	// the custom entity is simply unknown and the document is rejected.
	payload := []byte(`<?xml version="1.0"?>
		<!DOCTYPE feed [<!ENTITY ext SYSTEM "file:///etc/hostname">]>
		<feed>
			<items>
				<item>
					<id>&ext;</id>
					<headline>t</headline>
					<type>article</type>
					<publication_date>2025-01-15</publication_date>
				</item>
			</items>
		</feed>`)

	parser := NewXMLParser()
	_, err := parser.Parse(payload)
	require.Error(t, err)
}
