package bot

import (
	"context"
	"errors"
	"fmt"

	"barterbot/internal/domain"
	"barterbot/internal/render"
	"barterbot/internal/telegram"
)

// showMyPosts lists the owner's posts, active and frozen, as buttons into
// the management view.
func (b *Bot) showMyPosts(ctx context.Context, chatID, userID int64) error {
	posts, err := b.store.GetUserPosts(ctx, userID)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		b.send(ctx, chatID, msgMyPostsEmpty, mainMenuKeyboard())
		return nil
	}

	active, frozen := 0, 0
	for _, p := range posts {
		if p.IsActive {
			active++
		} else {
			frozen++
		}
	}
	b.send(ctx, chatID, fmt.Sprintf(msgMyPostsHeaderFmt, active, frozen), myPostsKeyboard(posts))
	return nil
}

// showSavedPosts lists the user's favorites.
func (b *Bot) showSavedPosts(ctx context.Context, chatID, userID int64) error {
	saved, err := b.store.GetSavedPosts(ctx, userID)
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		b.send(ctx, chatID, msgSavedEmpty, mainMenuKeyboard())
		return nil
	}
	b.send(ctx, chatID, fmt.Sprintf(msgSavedHeaderFmt, len(saved)), savedPostsKeyboard(saved))
	return nil
}

// ownedPost fetches a post and verifies the caller may manage it. Admins may
// manage any post.
func (b *Bot) ownedPost(ctx context.Context, userID, postID int64) (*domain.Post, error) {
	post, err := b.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID && !b.auth.IsAdmin(userID) {
		return nil, errNotOwner
	}
	return post, nil
}

var errNotOwner = errors.New("not the post owner")

// showOwnPost renders the management view: full form with contact plus the
// owner keyboard.
func (b *Bot) showOwnPost(ctx context.Context, chatID, userID, postID int64) error {
	post, err := b.ownedPost(ctx, userID, postID)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, errNotOwner) {
		b.send(ctx, chatID, msgPostNotFound, mainMenuKeyboard())
		return nil
	}
	if err != nil {
		return err
	}
	b.sendMarkdown(ctx, chatID, render.Full(post, true, b.now()), ownerKeyboard(post))
	return nil
}

func (b *Bot) handleToggle(ctx context.Context, cb *telegram.CallbackQuery, postID int64) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	post, err := b.ownedPost(ctx, userID, postID)
	if errors.Is(err, domain.ErrNotFound) {
		b.answer(ctx, cb.ID, msgPostNotFound)
		return nil
	}
	if errors.Is(err, errNotOwner) {
		b.answer(ctx, cb.ID, msgNotYourPost)
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := b.store.TogglePost(ctx, postID, post.UserID); err != nil {
		return err
	}

	toast := msgPostFrozenToast
	if !post.IsActive {
		toast = msgPostUnfrozenToast
	}
	b.answer(ctx, cb.ID, toast)
	b.log.Info("post toggled", "post_id", postID, "user_id", userID, "now_active", !post.IsActive)
	return b.showOwnPost(ctx, chatID, userID, postID)
}

func (b *Bot) handleConfirmDelete(ctx context.Context, cb *telegram.CallbackQuery, postID int64) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	post, err := b.ownedPost(ctx, userID, postID)
	if errors.Is(err, domain.ErrNotFound) {
		b.answer(ctx, cb.ID, msgPostNotFound)
		return nil
	}
	if errors.Is(err, errNotOwner) {
		b.answer(ctx, cb.ID, msgNotYourPost)
		return nil
	}
	if err != nil {
		return err
	}

	deleted, err := b.store.DeletePost(ctx, postID, post.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		b.answer(ctx, cb.ID, msgPostNotFound)
		return nil
	}

	b.tracker.Remove(postID)
	b.answer(ctx, cb.ID, "")
	b.log.Info("post deleted", "post_id", postID, "user_id", userID)
	b.send(ctx, chatID, msgDeleted, mainMenuKeyboard())
	return nil
}

func (b *Bot) handleStats(ctx context.Context, cb *telegram.CallbackQuery, postID int64) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	post, err := b.ownedPost(ctx, userID, postID)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, errNotOwner) {
		b.answer(ctx, cb.ID, msgNotYourPost)
		return nil
	}
	if err != nil {
		return err
	}
	b.answer(ctx, cb.ID, "")

	stats := b.tracker.Get(postID)
	engagement := 0.0
	if stats.Views > 0 {
		engagement = float64(stats.Contacts+stats.Saves+stats.Shares) / float64(stats.Views) * 100
	}

	text := fmt.Sprintf(msgStatsFmt,
		post.Title,
		stats.Views, stats.Contacts, stats.Saves, stats.Shares, stats.Reports,
		stats.UniqueUsers, engagement,
		render.TimeAgo(post.CreatedAt, b.now()),
	)
	b.send(ctx, chatID, text, inline([]telegram.InlineKeyboardButton{
		btn(btnBack, fmt.Sprintf("back_to_post_%d", postID)),
	}))
	return nil
}
