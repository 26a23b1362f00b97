package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"barterbot/internal/domain"
	"barterbot/internal/render"
	"barterbot/internal/telegram"
	"barterbot/internal/validate"
)

func (b *Bot) handleEditMenu(ctx context.Context, cb *telegram.CallbackQuery, postID int64) error {
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID

	_, err := b.ownedPost(ctx, userID, postID)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, errNotOwner) {
		b.answer(ctx, cb.ID, msgNotYourPost)
		return nil
	}
	if err != nil {
		return err
	}

	b.answer(ctx, cb.ID, "")
	b.send(ctx, chatID, msgEditMenu, editFieldsKeyboard(postID))
	return nil
}

// fieldValue extracts a field's current value in its prompt form.
func fieldValue(p *domain.Post, field string) string {
	switch field {
	case "title":
		return p.Title
	case "description":
		return p.Description
	case "pricing":
		return render.PricingLabel(p.PricingMode)
	case "tags":
		return strings.Join(p.Tags, ", ")
	case "links":
		return p.PortfolioLinks
	case "contact":
		return p.ContactInfo
	}
	return ""
}

func (b *Bot) handleEditField(ctx context.Context, cb *telegram.CallbackQuery, postID int64, field string) error {
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
	b.sessions.StartEdit(userID, postID, field, fieldValue(post, field))

	if field == "pricing" {
		b.send(ctx, chatID, msgEditPricingMenu, editPricingKeyboard(postID))
		return nil
	}
	b.send(ctx, chatID, fmt.Sprintf(msgEditPromptFmt, fieldValue(post, field)), cancelKeyboard())
	return nil
}

// handleEditInput validates the replacement value through the shared
// registry and persists it with a single-field update.
func (b *Bot) handleEditInput(ctx context.Context, chatID, userID int64, edit *EditSession, text string) error {
	validator, ok := validate.Registry[edit.Field]
	if !ok {
		b.sessions.ClearEdit(userID)
		return fmt.Errorf("edit session for unknown field %q", edit.Field)
	}

	value, err := validator(text, b.limits)
	if err != nil {
		b.send(ctx, chatID, err.Error(), cancelKeyboard())
		return nil
	}

	// The post may have been deleted while the prompt was open.
	if _, lookupErr := b.ownedPost(ctx, userID, edit.PostID); lookupErr != nil {
		b.sessions.ClearEdit(userID)
		if errors.Is(lookupErr, domain.ErrNotFound) || errors.Is(lookupErr, errNotOwner) {
			b.send(ctx, chatID, msgPostNotFound, mainMenuKeyboard())
			return nil
		}
		return lookupErr
	}

	if err := b.store.UpdatePostField(ctx, edit.PostID, edit.Field, value); err != nil {
		return err
	}

	b.sessions.ClearEdit(userID)
	b.log.Info("post edited", "post_id", edit.PostID, "user_id", userID, "field", edit.Field)
	b.send(ctx, chatID, msgEditSaved, mainMenuKeyboard())
	return b.showOwnPost(ctx, chatID, userID, edit.PostID)
}
