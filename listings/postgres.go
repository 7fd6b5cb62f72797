package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gebo/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const videoColumns = `id, title, description, creator, creator_name, category, tags,
	duration_seconds, views, likes, comments, shares, price_eth,
	thumbnail_url, video_url, published_at, minted, token_id, chain_id`

const schema = `
CREATE TABLE IF NOT EXISTS videos (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	creator          TEXT NOT NULL DEFAULT '',
	creator_name     TEXT NOT NULL DEFAULT '',
	category         TEXT NOT NULL DEFAULT '',
	tags             TEXT[] NOT NULL DEFAULT '{}',
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	views            BIGINT NOT NULL DEFAULT 0,
	likes            BIGINT NOT NULL DEFAULT 0,
	comments         BIGINT NOT NULL DEFAULT 0,
	shares           BIGINT NOT NULL DEFAULT 0,
	price_eth        DOUBLE PRECISION NOT NULL DEFAULT 0,
	thumbnail_url    TEXT NOT NULL DEFAULT '',
	video_url        TEXT NOT NULL DEFAULT '',
	published_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	minted           BOOLEAN NOT NULL DEFAULT false,
	token_id         TEXT NOT NULL DEFAULT '',
	chain_id         BIGINT NOT NULL DEFAULT 0
)`

// PostgresStore keeps listings in a Postgres videos table
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps an open pool
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the videos table and seeds it from the mock catalog
// when it is empty
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create videos table: %w", err)
	}

	var count int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM videos`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count videos: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, v := range Catalog() {
		if err := s.Upsert(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, q types.ListQuery) ([]types.Video, int, error) {
	q = NormalizeQuery(q)
	where, args := buildWhere(q)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM videos`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM videos%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		videoColumns, where, orderBy(q.Sort), len(args)+1, len(args)+2)
	rows, err := s.db.Query(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}
	videos, err := collectVideos(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (types.Video, error) {
	rows, err := s.db.Query(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	if err != nil {
		return types.Video{}, fmt.Errorf("failed to get video: %w", err)
	}
	videos, err := collectVideos(rows)
	if err != nil {
		return types.Video{}, err
	}
	if len(videos) == 0 {
		return types.Video{}, ErrNotFound
	}
	return videos[0], nil
}

func (s *PostgresStore) All(ctx context.Context) ([]types.Video, error) {
	rows, err := s.db.Query(ctx, `SELECT `+videoColumns+` FROM videos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return collectVideos(rows)
}

// Upsert inserts or updates a listing. Mint columns are never overwritten.
func (s *PostgresStore) Upsert(ctx context.Context, v types.Video) error {
	if strings.TrimSpace(v.ID) == "" {
		return errors.New("video id is required")
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO videos (`+videoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			creator = EXCLUDED.creator,
			creator_name = EXCLUDED.creator_name,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			duration_seconds = EXCLUDED.duration_seconds,
			views = EXCLUDED.views,
			likes = EXCLUDED.likes,
			comments = EXCLUDED.comments,
			shares = EXCLUDED.shares,
			price_eth = EXCLUDED.price_eth,
			thumbnail_url = EXCLUDED.thumbnail_url,
			video_url = EXCLUDED.video_url,
			published_at = EXCLUDED.published_at`,
		v.ID, v.Title, v.Description, v.Creator, v.CreatorName, v.Category, v.Tags,
		v.DurationSeconds, v.Views, v.Likes, v.Comments, v.Shares, v.PriceETH,
		v.ThumbnailURL, v.VideoURL, v.PublishedAt, v.Minted, v.TokenID, v.ChainID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert video %s: %w", v.ID, err)
	}
	return nil
}

func (s *PostgresStore) MarkMinted(ctx context.Context, id string, chainID int64, tokenID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE videos SET minted = true, chain_id = $2, token_id = $3 WHERE id = $1`,
		id, chainID, tokenID)
	if err != nil {
		return fmt.Errorf("failed to mark video minted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// likeEscaper makes search terms match literally inside LIKE patterns
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere renders the filter part of a list query with positional args.
// q must already be normalized.
func buildWhere(q types.ListQuery) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Category != "" {
		clauses = append(clauses, "lower(category) = "+next(q.Category))
	}
	if q.Creator != "" {
		p := next(q.Creator)
		clauses = append(clauses, "(lower(creator) = "+p+" OR lower(creator_name) = "+p+")")
	}
	if q.Minted != nil {
		clauses = append(clauses, "minted = "+next(*q.Minted))
	}
	for _, term := range strings.Fields(strings.ToLower(q.Query)) {
		p := next("%" + likeEscaper.Replace(term) + "%")
		clauses = append(clauses, "lower(title || ' ' || description || ' ' || creator_name || ' ' || array_to_string(tags, ' ')) LIKE "+p+` ESCAPE '\'`)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func orderBy(sort string) string {
	switch sort {
	case types.SortPopular:
		return "views DESC, id"
	case types.SortTrending:
		return "(likes + 2 * comments + 3 * shares)::float8 / GREATEST(views, 1) DESC, id"
	case types.SortPriceAsc:
		return "price_eth ASC, id"
	case types.SortPriceDesc:
		return "price_eth DESC, id"
	default:
		return "published_at DESC, id"
	}
}

func collectVideos(rows pgx.Rows) ([]types.Video, error) {
	defer rows.Close()

	videos := []types.Video{}
	for rows.Next() {
		var v types.Video
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.Creator, &v.CreatorName, &v.Category, &v.Tags,
			&v.DurationSeconds, &v.Views, &v.Likes, &v.Comments, &v.Shares, &v.PriceETH,
			&v.ThumbnailURL, &v.VideoURL, &v.PublishedAt, &v.Minted, &v.TokenID, &v.ChainID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read videos: %w", err)
	}
	return videos, nil
}
