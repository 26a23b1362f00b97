package sqlite

import (
	"context"
	"fmt"
	"time"

	"barterbot/internal/domain"
)

// SavePost adds a favorite. It reports false when the pair already existed.
func (r *Repository) SavePost(ctx context.Context, userID, postID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_posts (user_id, post_id, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("save post %d for user %d: %w", postID, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save post %d for user %d: %w", postID, userID, err)
	}
	return n > 0, nil
}

// UnsavePost removes a favorite. It reports whether a row was removed.
func (r *Repository) UnsavePost(ctx context.Context, userID, postID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_posts WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("unsave post %d for user %d: %w", postID, userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unsave post %d for user %d: %w", postID, userID, err)
	}
	return n > 0, nil
}

// IsPostSaved reports whether the user has favorited the post.
func (r *Repository) IsPostSaved(ctx context.Context, userID, postID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM saved_posts WHERE user_id = ? AND post_id = ?`,
		userID, postID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check saved post %d for user %d: %w", postID, userID, err)
	}
	return n > 0, nil
}

// GetSavedPosts returns the user's favorites that are still active, most
// recently saved first.
func (r *Repository) GetSavedPosts(ctx context.Context, userID int64) ([]domain.SavedPost, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+`, s.saved_at
		FROM saved_posts s
		JOIN posts p ON s.post_id = p.id
		JOIN users u ON p.user_id = u.user_id
		WHERE s.user_id = ? AND p.is_active = 1
		ORDER BY s.saved_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("get saved posts for user %d: %w", userID, err)
	}
	defer rows.Close()

	var saved []domain.SavedPost
	for rows.Next() {
		var (
			sp       domain.SavedPost
			mode     string
			vis      string
			active   int
			tagsJSON string
		)
		err := rows.Scan(&sp.ID, &sp.UserID, &sp.Title, &sp.Description, &mode, &sp.PriceRange,
			&sp.PortfolioLinks, &sp.ContactInfo, &tagsJSON, &vis, &active,
			&sp.CreatedAt, &sp.UpdatedAt, &sp.OwnerUsername, &sp.OwnerFirstName, &sp.SavedAt)
		if err != nil {
			return nil, fmt.Errorf("scan saved post: %w", err)
		}
		sp.PricingMode = domain.PricingMode(mode)
		sp.Visibility = domain.Visibility(vis)
		sp.IsActive = active != 0
		if err := unmarshalTags(tagsJSON, &sp.Tags); err != nil {
			return nil, err
		}
		saved = append(saved, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved posts: %w", err)
	}
	return saved, nil
}

// CountSavedPosts counts the user's favorites that are still active.
func (r *Repository) CountSavedPosts(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM saved_posts s
		JOIN posts p ON s.post_id = p.id
		WHERE s.user_id = ? AND p.is_active = 1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count saved posts for user %d: %w", userID, err)
	}
	return n, nil
}
