package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"barterbot/internal/domain"
	"barterbot/internal/telegram"
	"barterbot/internal/validate"
)

func (b *Bot) handleContact(ctx context.Context, cb *telegram.CallbackQuery, postID int64) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	post, err := b.store.GetPost(ctx, postID)
	if errors.Is(err, domain.ErrNotFound) {
		b.answer(ctx, cb.ID, msgPostNotFound)
		return nil
	}
	if err != nil {
		return err
	}

	b.tracker.Record(postID, userID, InteractionContact)
	b.answer(ctx, cb.ID, "")
	b.send(ctx, chatID, fmt.Sprintf(msgContactFmt, post.OwnerDisplayName(), post.ContactInfo), contactKeyboard(postID))
	return nil
}

// contactKind classifies stored contact info for the copy instructions.
func contactKind(contact string) string {
	switch {
	case strings.HasPrefix(contact, "@"):
		return msgCopyContactHandle
	case strings.Contains(contact, "@"):
		return msgCopyContactEmail
	case strings.HasPrefix(contact, "0"), strings.HasPrefix(contact, "+"):
		return msgCopyContactPhone
	}
	return msgCopyContactOther
}

// handleCopyContact re-sends the contact info as a bare message so a long
// press copies just the value.
func (b *Bot) handleCopyContact(ctx context.Context, cb *telegram.CallbackQuery, postID int64) error {
	chatID := cb.Message.Chat.ID

	post, err := b.store.GetPost(ctx, postID)
	if errors.Is(err, domain.ErrNotFound) {
		b.answer(ctx, cb.ID, msgPostNotFound)
		return nil
	}
	if err != nil {
		return err
	}

	b.answer(ctx, cb.ID, "")
	b.send(ctx, chatID, contactKind(post.ContactInfo), nil)
	b.send(ctx, chatID, post.ContactInfo, nil)
	return nil
}

// handleSave toggles the post in the viewer's favorites.
func (b *Bot) handleSave(ctx context.Context, cb *telegram.CallbackQuery, postID int64) error {
	userID := cb.From.ID

	if _, err := b.store.GetPost(ctx, postID); errors.Is(err, domain.ErrNotFound) {
		b.answer(ctx, cb.ID, msgPostNotFound)
		return nil
	} else if err != nil {
		return err
	}

	saved, err := b.store.IsPostSaved(ctx, userID, postID)
	if err != nil {
		return err
	}

	if saved {
		if _, err := b.store.UnsavePost(ctx, userID, postID); err != nil {
			return err
		}
		b.answer(ctx, cb.ID, msgUnsaved)
		b.refreshViewerKeyboard(ctx, cb, postID, false)
		return nil
	}

	if _, err := b.store.SavePost(ctx, userID, postID); err != nil {
		return err
	}
	b.tracker.Record(postID, userID, InteractionSave)
	b.answer(ctx, cb.ID, msgSaved)
	b.refreshViewerKeyboard(ctx, cb, postID, true)
	return nil
}

// refreshViewerKeyboard repaints the post's action row in place so the save
// button reflects the new state, keeping whatever back button the message
// carried. Edit failures are logged, not propagated: the toggle itself
// already committed.
func (b *Bot) refreshViewerKeyboard(ctx context.Context, cb *telegram.CallbackQuery, postID int64, saved bool) {
	backData := ""
	if cb.Message.ReplyMarkup != nil {
		for _, row := range cb.Message.ReplyMarkup.InlineKeyboard {
			for _, button := range row {
				if strings.HasPrefix(button.CallbackData, "browse_") {
					backData = button.CallbackData
				}
			}
		}
	}

	err := b.api.EditMessageReplyMarkup(ctx, telegram.EditMessageReplyMarkupRequest{
		ChatID:      cb.Message.Chat.ID,
		MessageID:   cb.Message.MessageID,
		ReplyMarkup: viewerKeyboard(postID, saved, backData),
	})
	if err != nil {
		b.log.Error("refresh keyboard", "error", err, "post_id", postID)
	}
}

// handleShare answers with the post's deep link. own marks the share button
// on the owner's management view, which is not counted as engagement.
func (b *Bot) handleShare(ctx context.Context, cb *telegram.CallbackQuery, postID int64, own bool) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	if _, err := b.store.GetPost(ctx, postID); errors.Is(err, domain.ErrNotFound) {
		b.answer(ctx, cb.ID, msgPostNotFound)
		return nil
	} else if err != nil {
		return err
	}

	if !own {
		b.tracker.Record(postID, userID, InteractionShare)
	}
	b.answer(ctx, cb.ID, "")

	link := fmt.Sprintf("https://t.me/%s?start=post_%d", b.username, postID)
	b.send(ctx, chatID, fmt.Sprintf(msgShareFmt, link), nil)
	return nil
}

// handleReportReason finishes the two-step report dialog: the free text is
// the reason, forwarded to every admin with a reference id.
func (b *Bot) handleReportReason(ctx context.Context, chatID, userID int64, report PendingReport, text string) error {
	reason := validate.Sanitize(text)
	if reason == "" {
		b.send(ctx, chatID, msgAskReportReason, reportCancelKeyboard(report.PostID))
		return nil
	}

	post, err := b.store.GetPost(ctx, report.PostID)
	if errors.Is(err, domain.ErrNotFound) {
		b.sessions.ClearReport(userID)
		b.send(ctx, chatID, msgPostNotFound, mainMenuKeyboard())
		return nil
	}
	if err != nil {
		return err
	}

	ref := uuid.NewString()
	forward := fmt.Sprintf(msgReportForwardFmt, ref, post.ID, post.Title, userID, reason)
	for _, adminID := range b.auth.AdminIDs() {
		b.send(ctx, adminID, forward, nil)
	}

	b.tracker.Record(post.ID, userID, InteractionReport)
	b.sessions.ClearReport(userID)
	b.log.Info("post reported", "post_id", post.ID, "reporter", userID, "ref", ref)
	b.send(ctx, chatID, msgReportSent, mainMenuKeyboard())
	return nil
}
