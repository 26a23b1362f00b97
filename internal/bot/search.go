package bot

import (
	"context"
	"errors"
	"fmt"

	"barterbot/internal/domain"
	"barterbot/internal/metrics"
	"barterbot/internal/render"
)

// runFullSearch executes a free-text search and sends each hit as its own
// rendered preview.
func (b *Bot) runFullSearch(ctx context.Context, chatID, userID int64, text string) error {
	metrics.SearchesTotal.Inc()
	b.sessions.Clear(userID)

	posts, err := b.store.SearchPosts(ctx, domain.PostQuery{Text: text, Limit: b.searchLimit})
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		b.send(ctx, chatID, msgNoSearchResults, mainMenuKeyboard())
		return nil
	}

	b.send(ctx, chatID, fmt.Sprintf(msgSearchResultsFmt, len(posts)), mainMenuKeyboard())
	for i := range posts {
		p := &posts[i]
		b.sendMarkdown(ctx, chatID, render.Preview(p, b.now()), b.postKeyboard(ctx, userID, p, ""))
	}
	return nil
}

// runTitleSearch executes a title-substring search and answers with a single
// message listing the matching titles as buttons.
func (b *Bot) runTitleSearch(ctx context.Context, chatID, userID int64, text string) error {
	metrics.SearchesTotal.Inc()
	b.sessions.Clear(userID)

	posts, err := b.store.SearchPosts(ctx, domain.PostQuery{Text: text, TitleOnly: true, Limit: b.titleSearchLimit})
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		b.send(ctx, chatID, msgNoSearchResults, mainMenuKeyboard())
		return nil
	}

	b.send(ctx, chatID, fmt.Sprintf(msgTitleResultsFmt, len(posts)), titleResultsKeyboard(posts))
	return nil
}

// postKeyboard picks the owner or viewer keyboard for a post.
func (b *Bot) postKeyboard(ctx context.Context, userID int64, p *domain.Post, backData string) any {
	if p.UserID == userID {
		return ownerKeyboard(p)
	}
	saved, err := b.store.IsPostSaved(ctx, userID, p.ID)
	if err != nil {
		b.log.Error("check saved", "error", err, "post_id", p.ID)
	}
	return viewerKeyboard(p.ID, saved, backData)
}

// showPost renders a post's full form for a viewer. Owners get the
// management view instead.
func (b *Bot) showPost(ctx context.Context, chatID, userID int64, a ViewPost) error {
	post, err := b.store.GetPost(ctx, a.PostID)
	if errors.Is(err, domain.ErrNotFound) {
		b.send(ctx, chatID, msgPostNotFound, mainMenuKeyboard())
		return nil
	}
	if err != nil {
		return err
	}

	if post.UserID == userID {
		return b.showOwnPost(ctx, chatID, userID, a.PostID)
	}

	// Direct lookups return frozen rows too; hide those from everyone but
	// the owner and admins. Private posts stay out of search and browse at
	// the query level, but anyone holding a direct link may view them.
	if !post.IsActive && !b.auth.IsAdmin(userID) {
		b.send(ctx, chatID, msgPostNotFound, mainMenuKeyboard())
		return nil
	}

	b.tracker.Record(post.ID, userID, InteractionView)

	backData := ""
	if a.FromBrowse {
		backData = fmt.Sprintf("browse_%s_page_%d", a.Category, a.Page)
	}
	b.sendMarkdown(ctx, chatID, render.Full(post, false, b.now()), b.postKeyboard(ctx, userID, post, backData))
	return nil
}

// showSharedPost handles the /start post_<id> deep link.
func (b *Bot) showSharedPost(ctx context.Context, chatID, userID int64, idStr string) error {
	id, err := parseID(idStr)
	if err != nil {
		b.send(ctx, chatID, msgPostNotFound, mainMenuKeyboard())
		return nil
	}
	return b.showPost(ctx, chatID, userID, ViewPost{PostID: id})
}
