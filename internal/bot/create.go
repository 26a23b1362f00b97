package bot

import (
	"context"
	"strings"

	"barterbot/internal/domain"
	"barterbot/internal/metrics"
	"barterbot/internal/render"
	"barterbot/internal/validate"
)

// handleCreateInput advances the creation flow by one free-text answer.
// Invalid input re-prompts without changing the step.
func (b *Bot) handleCreateInput(ctx context.Context, chatID, userID int64, sess *Session, text string) error {
	switch sess.Step {
	case StepTitle:
		title, err := validate.Title(text, b.limits)
		if err != nil {
			b.send(ctx, chatID, err.Error(), cancelKeyboard())
			return nil
		}
		sess.Draft.Title = title
		sess.Step = StepDescription
		b.send(ctx, chatID, msgAskDescription, cancelKeyboard())

	case StepDescription:
		desc, err := validate.Description(text, b.limits)
		if err != nil {
			b.send(ctx, chatID, err.Error(), cancelKeyboard())
			return nil
		}
		sess.Draft.Description = desc
		sess.Step = StepPricing
		b.send(ctx, chatID, msgAskPricing, pricingKeyboard())

	case StepPriceRange:
		priceRange, err := validate.PriceRange(text)
		if err != nil {
			b.send(ctx, chatID, err.Error(), cancelKeyboard())
			return nil
		}
		sess.Draft.PriceRange = priceRange
		sess.Step = StepPortfolio
		b.send(ctx, chatID, msgAskPortfolio, cancelKeyboard())

	case StepPortfolio:
		sess.Draft.PortfolioLinks = strings.Join(validate.Links(text), "\n")
		sess.Step = StepContact
		b.send(ctx, chatID, msgAskContact, cancelKeyboard())

	case StepContact:
		contact, err := validate.ContactInfo(text)
		if err != nil {
			b.send(ctx, chatID, err.Error(), cancelKeyboard())
			return nil
		}
		sess.Draft.ContactInfo = contact
		sess.Step = StepTags
		b.send(ctx, chatID, msgAskTags, cancelKeyboard())

	case StepTags:
		sess.Draft.Tags = validate.Tags(text, b.limits)
		return b.finishDraft(ctx, chatID, userID, sess)
	}

	return nil
}

// handlePricingChosen lands a pricing button. During creation it advances the
// flow; during an edit it persists the new mode.
func (b *Bot) handlePricingChosen(ctx context.Context, chatID, userID int64, mode domain.PricingMode) error {
	if edit, ok := b.sessions.GetEdit(userID); ok && edit.Field == "pricing" {
		return b.handleEditInput(ctx, chatID, userID, edit, string(mode))
	}

	sess, ok := b.sessions.Get(userID)
	if !ok || sess.Step != StepPricing {
		b.send(ctx, chatID, msgUnknown, mainMenuKeyboard())
		return nil
	}

	sess.Draft.PricingMode = mode
	switch mode {
	case domain.PricingPayment, domain.PricingBoth:
		sess.Step = StepPriceRange
		b.send(ctx, chatID, msgAskPriceRange, cancelKeyboard())
	case domain.PricingFree:
		// Free posts get a preset price and skip the range question.
		sess.Draft.PriceRange = msgFreePreset
		sess.Step = StepPortfolio
		b.send(ctx, chatID, msgAskPortfolio, cancelKeyboard())
	default:
		sess.Step = StepPortfolio
		b.send(ctx, chatID, msgAskPortfolio, cancelKeyboard())
	}
	return nil
}

// finishDraft is the step after tags: admins pick visibility, everyone else
// publishes public immediately.
func (b *Bot) finishDraft(ctx context.Context, chatID, userID int64, sess *Session) error {
	if sess.Private {
		sess.Draft.Visibility = domain.VisibilityPrivate
		return b.publishDraft(ctx, chatID, userID, sess)
	}
	if b.auth.IsAdmin(userID) {
		sess.Step = StepVisibility
		b.send(ctx, chatID, msgAskVisibility, visibilityKeyboard())
		return nil
	}
	sess.Draft.Visibility = domain.VisibilityPublic
	return b.publishDraft(ctx, chatID, userID, sess)
}

func (b *Bot) handleVisibilityChosen(ctx context.Context, chatID, userID int64, v domain.Visibility) error {
	sess, ok := b.sessions.Get(userID)
	if !ok || sess.Step != StepVisibility {
		b.send(ctx, chatID, msgUnknown, mainMenuKeyboard())
		return nil
	}
	if !b.auth.IsAdmin(userID) {
		v = domain.VisibilityPublic
	}
	sess.Draft.Visibility = v
	return b.publishDraft(ctx, chatID, userID, sess)
}

// publishDraft persists the draft, clears the session, confirms with the
// rendered post, and notifies keyword subscribers.
func (b *Bot) publishDraft(ctx context.Context, chatID, userID int64, sess *Session) error {
	post := sess.Draft
	post.UserID = userID

	if _, err := b.store.CreatePost(ctx, &post); err != nil {
		return err
	}
	b.sessions.Clear(userID)
	metrics.PostsCreatedTotal.Inc()
	b.log.Info("post created", "post_id", post.ID, "user_id", userID, "visibility", post.Visibility)

	b.send(ctx, chatID, msgPostCreated, mainMenuKeyboard())

	full, err := b.store.GetPost(ctx, post.ID)
	if err != nil {
		return err
	}
	b.sendMarkdown(ctx, chatID, render.Full(full, true, b.now()), ownerKeyboard(full))

	if post.Visibility == domain.VisibilityPublic {
		b.dispatchAlerts(ctx, full)
	}
	return nil
}
