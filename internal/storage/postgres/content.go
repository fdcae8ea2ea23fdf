package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umayucar/search-engine/internal/domain"
)

// ContentStore persists normalized content records. Identity for upserts is
// the composite (provider_id, provider_name) pair.
type ContentStore struct {
	db *sqlx.DB
}

func NewContentStore(db *sqlx.DB) *ContentStore {
	return &ContentStore{db: db}
}

// tagList stores tags as a JSONB array.
type tagList []string

func (t tagList) Value() (driver.Value, error) {
	if t == nil {
		t = tagList{}
	}
	return json.Marshal(t)
}

func (t *tagList) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = tagList{}
		return nil
	default:
		return fmt.Errorf("unsupported tags type %T", src)
	}
}

type contentRow struct {
	ID           int64     `db:"id"`
	ProviderID   string    `db:"provider_id"`
	ProviderName string    `db:"provider_name"`
	Title        string    `db:"title"`
	Type         string    `db:"type"`
	Tags         tagList   `db:"tags"`
	Views        *int      `db:"views"`
	Likes        *int      `db:"likes"`
	Duration     *string   `db:"duration"`
	ReadingTime  *int      `db:"reading_time"`
	Reactions    *int      `db:"reactions"`
	Comments     *int      `db:"comments"`
	PublishedAt  time.Time `db:"published_at"`
	Score        float64   `db:"score"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r contentRow) toDomain() domain.Content {
	return domain.Content{
		ID:           r.ID,
		ProviderID:   r.ProviderID,
		ProviderName: r.ProviderName,
		Title:        r.Title,
		Type:         domain.ContentType(r.Type),
		Tags:         []string(r.Tags),
		Views:        r.Views,
		Likes:        r.Likes,
		Duration:     r.Duration,
		ReadingTime:  r.ReadingTime,
		Reactions:    r.Reactions,
		Comments:     r.Comments,
		PublishedAt:  r.PublishedAt,
		Score:        r.Score,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

const contentColumns = `id, provider_id, provider_name, title, type, tags,
	views, likes, duration, reading_time, reactions, comments,
	published_at, score, created_at, updated_at`

// Exists reports whether a record with the identity pair is already stored.
func (s *ContentStore) Exists(ctx context.Context, providerID, providerName string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &exists,
		"SELECT EXISTS (SELECT 1 FROM contents WHERE provider_id = $1 AND provider_name = $2)",
		providerID, providerName,
	)
	return exists, err
}

// Upsert inserts the record or replaces all provider-supplied fields of the
// existing row with the same identity pair. The score column is not touched
// here; it is written by UpdateScore right after.
func (s *ContentStore) Upsert(ctx context.Context, c *domain.Content) (int64, error) {
	query := `
		INSERT INTO contents (
			provider_id, provider_name, title, type, tags,
			views, likes, duration, reading_time, reactions, comments,
			published_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		ON CONFLICT (provider_id, provider_name) DO UPDATE SET
			title = EXCLUDED.title,
			type = EXCLUDED.type,
			tags = EXCLUDED.tags,
			views = EXCLUDED.views,
			likes = EXCLUDED.likes,
			duration = EXCLUDED.duration,
			reading_time = EXCLUDED.reading_time,
			reactions = EXCLUDED.reactions,
			comments = EXCLUDED.comments,
			published_at = EXCLUDED.published_at,
			updated_at = now()
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		c.ProviderID,
		c.ProviderName,
		c.Title,
		string(c.Type),
		tagList(c.Tags),
		c.Views,
		c.Likes,
		c.Duration,
		c.ReadingTime,
		c.Reactions,
		c.Comments,
		c.PublishedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateScore writes the derived score back onto the stored row.
func (s *ContentStore) UpdateScore(ctx context.Context, id int64, score float64) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE contents SET score = $1, updated_at = now() WHERE id = $2",
		score, id,
	)
	return err
}

// Search returns one page of records matching the filter plus the total
// match count. Keyword matching is case-insensitive: the title and the
// serialized tags text are matched with ILIKE, tag membership with JSONB
// containment.
func (s *ContentStore) Search(ctx context.Context, f domain.SearchFilter) ([]domain.Content, int, error) {
	var (
		conds []string
		args  []any
	)

	if f.Keyword != "" {
		pattern := "%" + f.Keyword + "%"
		exact, err := json.Marshal([]string{f.Keyword})
		if err != nil {
			return nil, 0, fmt.Errorf("marshal keyword: %w", err)
		}
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR tags @> $%d::jsonb OR tags::text ILIKE $%d)",
			len(args)+1, len(args)+2, len(args)+3,
		))
		args = append(args, pattern, string(exact), pattern)
	}

	if f.Type != "" {
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, f.Type)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	ex := GetExecutor(ctx, s.db)

	var total int
	countQuery := "SELECT COUNT(*) FROM contents" + where
	if err := sqlx.GetContext(ctx, ex, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count contents: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM contents%s ORDER BY %s LIMIT $%d OFFSET $%d",
		contentColumns, where, orderClause(f), len(args)+1, len(args)+2,
	)
	args = append(args, f.PerPage, f.Offset())

	var rows []contentRow
	if err := sqlx.SelectContext(ctx, ex, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select contents: %w", err)
	}

	contents := make([]domain.Content, 0, len(rows))
	for _, row := range rows {
		contents = append(contents, row.toDomain())
	}

	return contents, total, nil
}

// orderClause maps the sort mode to an ORDER BY expression. Relevance keeps
// a published_at DESC tie-break regardless of the requested order; ties in
// score are broken by recency, not by direction.
func orderClause(f domain.SearchFilter) string {
	dir := "DESC"
	if f.Order == domain.OrderAsc {
		dir = "ASC"
	}

	switch f.Sort {
	case domain.SortDate:
		return "published_at " + dir
	case domain.SortPopularity:
		return "score " + dir
	default:
		return "score " + dir + ", published_at DESC"
	}
}

// Stats aggregates the stored corpus.
func (s *ContentStore) Stats(ctx context.Context) (*domain.ContentStats, error) {
	query := `
		SELECT
			COUNT(*) AS total_contents,
			COUNT(*) FILTER (WHERE type = 'video') AS total_videos,
			COUNT(*) FILTER (WHERE type = 'article') AS total_articles,
			COALESCE(AVG(score), 0) AS avg_score,
			MAX(updated_at) AS last_updated
		FROM contents`

	var row struct {
		TotalContents int64      `db:"total_contents"`
		TotalVideos   int64      `db:"total_videos"`
		TotalArticles int64      `db:"total_articles"`
		AvgScore      float64    `db:"avg_score"`
		LastUpdated   *time.Time `db:"last_updated"`
	}
	if err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query); err != nil {
		return nil, fmt.Errorf("aggregate contents: %w", err)
	}

	return &domain.ContentStats{
		TotalContents: row.TotalContents,
		TotalVideos:   row.TotalVideos,
		TotalArticles: row.TotalArticles,
		AvgScore:      row.AvgScore,
		LastUpdated:   row.LastUpdated,
	}, nil
}
