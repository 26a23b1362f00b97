package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"barterbot/internal/domain"
)

// AddKeywordAlert subscribes the user to a keyword. It reports false when the
// subscription already existed.
func (r *Repository) AddKeywordAlert(ctx context.Context, userID int64, keyword string) (bool, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO keyword_alerts (user_id, keyword, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, keyword) DO NOTHING`,
		userID, keyword, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("add keyword alert for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add keyword alert for user %d: %w", userID, err)
	}
	return n > 0, nil
}

// RemoveKeywordAlert unsubscribes the user from a keyword. It reports whether
// a row was removed.
func (r *Repository) RemoveKeywordAlert(ctx context.Context, userID int64, keyword string) (bool, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM keyword_alerts WHERE user_id = ? AND keyword = ?`, userID, keyword)
	if err != nil {
		return false, fmt.Errorf("remove keyword alert for user %d: %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove keyword alert for user %d: %w", userID, err)
	}
	return n > 0, nil
}

// GetUserKeywords returns the user's keyword subscriptions, oldest first.
func (r *Repository) GetUserKeywords(ctx context.Context, userID int64) ([]domain.KeywordAlert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, keyword, created_at
		FROM keyword_alerts
		WHERE user_id = ?
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("get keywords for user %d: %w", userID, err)
	}
	defer rows.Close()

	var alerts []domain.KeywordAlert
	for rows.Next() {
		var a domain.KeywordAlert
		if err := rows.Scan(&a.UserID, &a.Keyword, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan keyword alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keyword alerts: %w", err)
	}
	return alerts, nil
}

// SetUserKeywords replaces the user's full keyword set in one transaction.
func (r *Repository) SetUserKeywords(ctx context.Context, userID int64, keywords []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set keywords for user %d: %w", userID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM keyword_alerts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear keywords for user %d: %w", userID, err)
	}

	now := time.Now().UTC()
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO keyword_alerts (user_id, keyword, created_at)
			VALUES (?, ?, ?)
			ON CONFLICT (user_id, keyword) DO NOTHING`,
			userID, kw, now); err != nil {
			return fmt.Errorf("insert keyword %q for user %d: %w", kw, userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit keywords for user %d: %w", userID, err)
	}
	return nil
}

// CheckPostForKeywords finds the subscriptions whose keyword occurs in the
// post's title or description. The author is excluded, as are pairs already
// recorded in sent_alerts for this post.
func (r *Repository) CheckPostForKeywords(ctx context.Context, post *domain.Post) ([]domain.AlertMatch, error) {
	haystack := strings.ToLower(post.Title + " " + post.Description)

	rows, err := r.db.QueryContext(ctx, `
		SELECT ka.user_id, ka.keyword
		FROM keyword_alerts ka
		WHERE instr(?, ka.keyword) > 0
		  AND ka.user_id != ?
		  AND NOT EXISTS (
			SELECT 1 FROM sent_alerts sa
			WHERE sa.user_id = ka.user_id AND sa.post_id = ? AND sa.keyword = ka.keyword
		  )`,
		haystack, post.UserID, post.ID)
	if err != nil {
		return nil, fmt.Errorf("check post %d for keywords: %w", post.ID, err)
	}
	defer rows.Close()

	var matches []domain.AlertMatch
	for rows.Next() {
		var m domain.AlertMatch
		if err := rows.Scan(&m.UserID, &m.Keyword); err != nil {
			return nil, fmt.Errorf("scan alert match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alert matches: %w", err)
	}
	return matches, nil
}

// RecordSentAlert marks a (user, post, keyword) notification as delivered.
func (r *Repository) RecordSentAlert(ctx context.Context, userID, postID int64, keyword string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sent_alerts (user_id, post_id, keyword, sent_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, post_id, keyword) DO NOTHING`,
		userID, postID, strings.ToLower(strings.TrimSpace(keyword)), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record sent alert for user %d post %d: %w", userID, postID, err)
	}
	return nil
}
