package bot

import (
	"context"
	"fmt"
	"strings"

	"barterbot/internal/domain"
	"barterbot/internal/render"
	"barterbot/internal/telegram"
	"barterbot/internal/validate"
)

// handleAlertAdd lands the free-text keyword from the add prompt.
func (b *Bot) handleAlertAdd(ctx context.Context, chatID, userID int64, text string) error {
	keyword := strings.ToLower(validate.Sanitize(text))
	if len([]rune(keyword)) < 2 {
		b.send(ctx, chatID, msgAskAlertKeyword, cancelKeyboard())
		return nil
	}

	added, err := b.store.AddKeywordAlert(ctx, userID, keyword)
	if err != nil {
		return err
	}
	b.sessions.Clear(userID)

	if added {
		b.send(ctx, chatID, fmt.Sprintf(msgAlertAdded, keyword), alertMenuKeyboard())
	} else {
		b.send(ctx, chatID, fmt.Sprintf(msgAlertExists, keyword), alertMenuKeyboard())
	}
	return nil
}

// handleAlertReplace lands the comma-separated full list and swaps it in
// atomically.
func (b *Bot) handleAlertReplace(ctx context.Context, chatID, userID int64, text string) error {
	keywords := validate.Tags(text, b.limits)
	if len(keywords) == 0 {
		b.send(ctx, chatID, msgAskAlertReplace, cancelKeyboard())
		return nil
	}

	if err := b.store.SetUserKeywords(ctx, userID, keywords); err != nil {
		return err
	}
	b.sessions.Clear(userID)
	b.send(ctx, chatID, msgAlertReplaced, alertMenuKeyboard())
	return nil
}

func (b *Bot) handleAlertShow(ctx context.Context, cb *telegram.CallbackQuery) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	alerts, err := b.store.GetUserKeywords(ctx, userID)
	if err != nil {
		return err
	}
	b.answer(ctx, cb.ID, "")

	if len(alerts) == 0 {
		b.send(ctx, chatID, msgAlertNoKeywords, alertMenuKeyboard())
		return nil
	}

	lines := make([]string, len(alerts))
	for i, a := range alerts {
		lines[i] = "🔔 " + a.Keyword
	}
	b.send(ctx, chatID, fmt.Sprintf(msgAlertKeywordsFmt, strings.Join(lines, "\n")), alertMenuKeyboard())
	return nil
}

func (b *Bot) handleAlertRemoveMenu(ctx context.Context, cb *telegram.CallbackQuery) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	alerts, err := b.store.GetUserKeywords(ctx, userID)
	if err != nil {
		return err
	}
	b.answer(ctx, cb.ID, "")

	if len(alerts) == 0 {
		b.send(ctx, chatID, msgAlertNoKeywords, alertMenuKeyboard())
		return nil
	}
	b.send(ctx, chatID, msgAlertRemovePick, alertRemoveKeyboard(alerts))
	return nil
}

func (b *Bot) handleAlertDelete(ctx context.Context, cb *telegram.CallbackQuery, keyword string) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	if _, err := b.store.RemoveKeywordAlert(ctx, userID, keyword); err != nil {
		return err
	}
	b.answer(ctx, cb.ID, msgAlertRemoved)

	alerts, err := b.store.GetUserKeywords(ctx, userID)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		b.send(ctx, chatID, msgAlertNoKeywords, alertMenuKeyboard())
		return nil
	}
	b.send(ctx, chatID, msgAlertRemovePick, alertRemoveKeyboard(alerts))
	return nil
}

// dispatchAlerts notifies keyword subscribers about a fresh public post.
// Delivery failures are logged per recipient; a recorded pair is never sent
// again.
func (b *Bot) dispatchAlerts(ctx context.Context, post *domain.Post) {
	matches, err := b.store.CheckPostForKeywords(ctx, post)
	if err != nil {
		b.log.Error("check keywords", "error", err, "post_id", post.ID)
		return
	}

	for _, m := range matches {
		b.send(ctx, m.UserID, fmt.Sprintf(msgAlertNotifyFmt, m.Keyword), nil)
		b.sendMarkdown(ctx, m.UserID, render.Preview(post, b.now()), viewerKeyboard(post.ID, false, ""))

		if err := b.store.RecordSentAlert(ctx, m.UserID, post.ID, m.Keyword); err != nil {
			b.log.Error("record sent alert", "error", err, "post_id", post.ID, "user_id", m.UserID)
		}
	}
	if len(matches) > 0 {
		b.log.Info("keyword alerts dispatched", "post_id", post.ID, "count", len(matches))
	}
}
