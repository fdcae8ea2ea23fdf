package domain

import "time"

// ContentType is the normalized kind of a content item.
type ContentType string

const (
	TypeVideo   ContentType = "video"
	TypeArticle ContentType = "article"
)

// Content is the normalized unit of content, independent of source format.
// (ProviderID, ProviderName) is the identity pair used for upserts: the same
// provider_id coming from two different providers are distinct records.
type Content struct {
	ID           int64       `json:"id"`
	ProviderID   string      `json:"provider_id"`
	ProviderName string      `json:"provider_name"`
	Title        string      `json:"title"`
	Type         ContentType `json:"type"`
	Tags         []string    `json:"tags"`

	// Video metrics.
	Views    *int    `json:"views"`
	Likes    *int    `json:"likes"`
	Duration *string `json:"duration"`

	// Article metrics.
	ReadingTime *int `json:"reading_time"`
	Reactions   *int `json:"reactions"`
	Comments    *int `json:"comments"`

	PublishedAt time.Time `json:"published_at"`

	// Score is derived, never accepted from provider input. It is recomputed
	// immediately after every upsert.
	Score float64 `json:"score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContentStats is the aggregate view over the stored corpus.
type ContentStats struct {
	TotalContents int64      `json:"total_contents"`
	TotalVideos   int64      `json:"total_videos"`
	TotalArticles int64      `json:"total_articles"`
	AvgScore      float64    `json:"avg_score"`
	LastUpdated   *time.Time `json:"last_updated"`
}
