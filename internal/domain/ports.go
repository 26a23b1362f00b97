package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups that reference a missing row.
var ErrNotFound = errors.New("not found")

// PostRepository defines persistence operations for users and posts.
type PostRepository interface {
	// UpsertUser inserts or refreshes a user row, preserving the original
	// creation time. Never fails on duplicates.
	UpsertUser(ctx context.Context, user User) error

	// CreatePost inserts a post with is_active=true and returns the new id.
	// The full-text index is updated in the same statement's transaction, so
	// a successful create is immediately searchable unless private.
	CreatePost(ctx context.Context, post *Post) (int64, error)

	// GetPost returns the post joined with owner display fields, or
	// ErrNotFound. Inactive and private posts ARE returned; callers decide
	// what to show based on the caller's identity.
	GetPost(ctx context.Context, id int64) (*Post, error)

	// SearchPosts runs the unified query: full-text match when q.Text is set
	// (title-only substring match when q.TitleOnly), plain listing otherwise.
	// Only active public posts are returned, newest first.
	SearchPosts(ctx context.Context, q PostQuery) ([]Post, error)

	// CountPosts returns the total number of rows SearchPosts would match,
	// ignoring Limit/Offset. Used for pagination.
	CountPosts(ctx context.Context, q PostQuery) (int, error)

	// GetUserPosts returns all posts owned by the user regardless of active
	// state, newest first.
	GetUserPosts(ctx context.Context, userID int64) ([]Post, error)

	// UpdatePostField updates a single editable field. The field name is one
	// of the validator registry names, not a raw column.
	UpdatePostField(ctx context.Context, postID int64, field, value string) error

	// DeletePost permanently removes a post if ownerID owns it. Reports
	// whether a row was deleted.
	DeletePost(ctx context.Context, postID, ownerID int64) (bool, error)

	// TogglePost flips the active flag if ownerID owns the post.
	TogglePost(ctx context.Context, postID, ownerID int64) (bool, error)
}

// FavoriteRepository defines persistence operations for saved posts.
type FavoriteRepository interface {
	// SavePost is idempotent; it reports false when the pair already existed.
	SavePost(ctx context.Context, userID, postID int64) (bool, error)

	// UnsavePost reports whether a row was removed.
	UnsavePost(ctx context.Context, userID, postID int64) (bool, error)

	IsPostSaved(ctx context.Context, userID, postID int64) (bool, error)

	// GetSavedPosts returns the user's active favorites, most recently saved
	// first.
	GetSavedPosts(ctx context.Context, userID int64) ([]SavedPost, error)

	CountSavedPosts(ctx context.Context, userID int64) (int, error)
}

// AlertRepository defines persistence operations for keyword alerts.
type AlertRepository interface {
	// AddKeywordAlert reports false when the subscription already existed.
	AddKeywordAlert(ctx context.Context, userID int64, keyword string) (bool, error)

	RemoveKeywordAlert(ctx context.Context, userID int64, keyword string) (bool, error)

	GetUserKeywords(ctx context.Context, userID int64) ([]KeywordAlert, error)

	// SetUserKeywords replaces the user's full keyword set atomically.
	SetUserKeywords(ctx context.Context, userID int64, keywords []string) error

	// CheckPostForKeywords returns the (user, keyword) pairs whose keyword is
	// a substring of the post's title+description, excluding the post's
	// author and pairs already notified about this post.
	CheckPostForKeywords(ctx context.Context, post *Post) ([]AlertMatch, error)

	// RecordSentAlert marks a (user, post, keyword) notification as sent so
	// it is never delivered twice.
	RecordSentAlert(ctx context.Context, userID, postID int64, keyword string) error
}
