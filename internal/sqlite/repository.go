// Package sqlite implements the domain repositories over an embedded SQLite
// database with an FTS5 full-text index on posts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"barterbot/internal/domain"
	_ "modernc.org/sqlite"
)

// Repository implements domain.PostRepository, domain.FavoriteRepository and
// domain.AlertRepository.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if needed) the database at path, applies the
// schema, and returns a Repository. The caller should Close it when done.
// Use ":memory:" for an ephemeral database.
func NewRepository(path string) (*Repository, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_time_format=sqlite"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Schema statements and the in-memory database require a single
	// connection; the handler path is effectively single-writer anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &Repository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return r, nil
}

// Close closes the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			pricing_mode TEXT NOT NULL CHECK(pricing_mode IN ('barter', 'payment', 'both', 'free')),
			price_range TEXT NOT NULL DEFAULT '',
			portfolio_links TEXT NOT NULL DEFAULT '',
			contact_info TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			visibility TEXT NOT NULL DEFAULT 'public' CHECK(visibility IN ('public', 'private')),
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users (user_id)
		)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS posts_fts USING fts5(
			title,
			description,
			tags,
			content='posts',
			content_rowid='id'
		)`,
		`CREATE TRIGGER IF NOT EXISTS posts_ai AFTER INSERT ON posts BEGIN
			INSERT INTO posts_fts(rowid, title, description, tags)
			VALUES (NEW.id, NEW.title, NEW.description, NEW.tags);
		END`,
		`CREATE TRIGGER IF NOT EXISTS posts_ad AFTER DELETE ON posts BEGIN
			INSERT INTO posts_fts(posts_fts, rowid, title, description, tags)
			VALUES('delete', OLD.id, OLD.title, OLD.description, OLD.tags);
		END`,
		`CREATE TRIGGER IF NOT EXISTS posts_au AFTER UPDATE ON posts BEGIN
			INSERT INTO posts_fts(posts_fts, rowid, title, description, tags)
			VALUES('delete', OLD.id, OLD.title, OLD.description, OLD.tags);
			INSERT INTO posts_fts(rowid, title, description, tags)
			VALUES (NEW.id, NEW.title, NEW.description, NEW.tags);
		END`,
		`CREATE TABLE IF NOT EXISTS saved_posts (
			user_id INTEGER NOT NULL,
			post_id INTEGER NOT NULL,
			saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, post_id),
			FOREIGN KEY (user_id) REFERENCES users (user_id),
			FOREIGN KEY (post_id) REFERENCES posts (id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_posts_user ON saved_posts(user_id)`,
		`CREATE TABLE IF NOT EXISTS keyword_alerts (
			user_id INTEGER NOT NULL,
			keyword TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, keyword),
			FOREIGN KEY (user_id) REFERENCES users (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS sent_alerts (
			user_id INTEGER NOT NULL,
			post_id INTEGER NOT NULL,
			keyword TEXT NOT NULL,
			sent_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, post_id, keyword)
		)`,
	}

	for _, stmt := range schema {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// UpsertUser inserts or refreshes a user row, keeping the original creation
// time.
func (r *Repository) UpsertUser(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, first_name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET username = excluded.username, first_name = excluded.first_name`,
		user.ID, user.Username, user.FirstName, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", user.ID, err)
	}
	return nil
}

// CreatePost inserts a post and returns its id. The FTS insert trigger runs
// in the same implicit transaction, so the post is searchable on return.
func (r *Repository) CreatePost(ctx context.Context, post *domain.Post) (int64, error) {
	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return 0, fmt.Errorf("marshal tags: %w", err)
	}

	visibility := post.Visibility
	if visibility == "" {
		visibility = domain.VisibilityPublic
	}

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (user_id, title, description, pricing_mode, price_range, portfolio_links, contact_info, tags, visibility, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		post.UserID, post.Title, post.Description, string(post.PricingMode),
		post.PriceRange, post.PortfolioLinks, post.ContactInfo, string(tagsJSON),
		string(visibility), now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	post.ID = id
	post.IsActive = true
	post.Visibility = visibility
	post.CreatedAt = now
	post.UpdatedAt = now
	return id, nil
}

const postColumns = `p.id, p.user_id, p.title, p.description, p.pricing_mode, p.price_range,
	p.portfolio_links, p.contact_info, p.tags, p.visibility, p.is_active,
	p.created_at, p.updated_at, u.username, u.first_name`

func scanPost(s interface{ Scan(...any) error }) (domain.Post, error) {
	var (
		p        domain.Post
		mode     string
		vis      string
		active   int
		tagsJSON string
	)
	err := s.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &mode, &p.PriceRange,
		&p.PortfolioLinks, &p.ContactInfo, &tagsJSON, &vis, &active,
		&p.CreatedAt, &p.UpdatedAt, &p.OwnerUsername, &p.OwnerFirstName)
	if err != nil {
		return p, err
	}
	p.PricingMode = domain.PricingMode(mode)
	p.Visibility = domain.Visibility(vis)
	p.IsActive = active != 0
	if err := unmarshalTags(tagsJSON, &p.Tags); err != nil {
		return p, err
	}
	return p, nil
}

func unmarshalTags(tagsJSON string, dst *[]string) error {
	if tagsJSON == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(tagsJSON), dst); err != nil {
		return fmt.Errorf("unmarshal tags: %w", err)
	}
	return nil
}

// GetPost returns a post by id joined with owner display fields. Inactive and
// private posts are returned; visibility policy is the caller's concern.
func (r *Repository) GetPost(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON p.user_id = u.user_id
		WHERE p.id = ?`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &p, nil
}

// pricingClause appends the pricing-mode filter. "barter" and "payment" also
// match posts offering "both"; "free" matches only "free".
func pricingClause(mode domain.PricingMode, args []any) (string, []any) {
	switch mode {
	case "":
		return "", args
	case domain.PricingFree:
		return " AND p.pricing_mode = 'free'", args
	default:
		return " AND p.pricing_mode IN (?, 'both')", append(args, string(mode))
	}
}

// ftsQuery turns free text into a safe FTS5 match expression: each token is
// quoted so user input cannot inject match syntax.
func ftsQuery(text string) string {
	fields := strings.Fields(text)
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `"`, "")
		if f != "" {
			quoted = append(quoted, `"`+f+`"`)
		}
	}
	return strings.Join(quoted, " ")
}

func buildSearch(selectList string, q domain.PostQuery) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)

	text := strings.TrimSpace(q.Text)
	switch {
	case text != "" && q.TitleOnly:
		sb.WriteString(`SELECT ` + selectList + `
			FROM posts p
			JOIN users u ON p.user_id = u.user_id
			WHERE p.title LIKE ? AND p.is_active = 1 AND p.visibility = 'public'`)
		args = append(args, "%"+text+"%")
	case text != "":
		sb.WriteString(`SELECT ` + selectList + `
			FROM posts_fts f
			JOIN posts p ON f.rowid = p.id
			JOIN users u ON p.user_id = u.user_id
			WHERE posts_fts MATCH ? AND p.is_active = 1 AND p.visibility = 'public'`)
		args = append(args, ftsQuery(text))
	default:
		sb.WriteString(`SELECT ` + selectList + `
			FROM posts p
			JOIN users u ON p.user_id = u.user_id
			WHERE p.is_active = 1 AND p.visibility = 'public'`)
	}

	clause, args := pricingClause(q.Pricing, args)
	sb.WriteString(clause)
	return sb.String(), args
}

// SearchPosts runs the unified paginated query over active public posts,
// newest first.
func (r *Repository) SearchPosts(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	query, args := buildSearch(postColumns, q)
	query += " ORDER BY p.created_at DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
		if q.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, q.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// CountPosts returns the total match count for q, ignoring pagination.
func (r *Repository) CountPosts(ctx context.Context, q domain.PostQuery) (int, error) {
	query, args := buildSearch("COUNT(*)", q)
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func collectPosts(rows *sql.Rows) ([]domain.Post, error) {
	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// GetUserPosts returns every post owned by the user, frozen ones included,
// newest first.
func (r *Repository) GetUserPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON p.user_id = u.user_id
		WHERE p.user_id = ?
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("get user posts: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// editableColumns maps validator field names to post columns. Anything not
// listed is not editable through the bot.
var editableColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"pricing":     "pricing_mode",
	"tags":        "tags",
	"links":       "portfolio_links",
	"contact":     "contact_info",
}

// UpdatePostField updates a single editable field and bumps updated_at.
func (r *Repository) UpdatePostField(ctx context.Context, postID int64, field, value string) error {
	column, ok := editableColumns[field]
	if !ok {
		return fmt.Errorf("update post %d: unknown field %q", postID, field)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET `+column+` = ?, updated_at = ? WHERE id = ?`,
		value, time.Now().UTC(), postID,
	)
	if err != nil {
		return fmt.Errorf("update post %d field %s: %w", postID, field, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeletePost permanently removes a post when ownerID owns it. The saved_posts
// cascade and the FTS delete trigger clean up the dependents.
func (r *Repository) DeletePost(ctx context.Context, postID, ownerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = ? AND user_id = ?`, postID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete post %d: %w", postID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post %d: %w", postID, err)
	}
	return n > 0, nil
}

// TogglePost flips the active flag when ownerID owns the post.
func (r *Repository) TogglePost(ctx context.Context, postID, ownerID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE posts
		SET is_active = 1 - is_active, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		time.Now().UTC(), postID, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("toggle post %d: %w", postID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle post %d: %w", postID, err)
	}
	return n > 0, nil
}
