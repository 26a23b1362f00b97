package bot

import (
	"context"
	"fmt"
	"strings"

	"barterbot/internal/domain"
	"barterbot/internal/render"
	"barterbot/internal/telegram"
)

// categoryPricing maps a browse category to its pricing filter.
func categoryPricing(category string) domain.PricingMode {
	switch category {
	case "barter":
		return domain.PricingBarter
	case "payment":
		return domain.PricingPayment
	case "free":
		return domain.PricingFree
	}
	return ""
}

func categoryLabel(category string) string {
	switch category {
	case "barter":
		return btnCatBarter
	case "payment":
		return btnCatPayment
	case "free":
		return btnCatFree
	}
	return btnCatAll
}

// showBrowsePage renders one page of a category. Navigation edits the
// existing message in place; the first page after the category picker does
// too, so the picker message becomes the listing.
func (b *Bot) showBrowsePage(ctx context.Context, chatID, messageID int64, category string, page int, edit bool) error {
	query := domain.PostQuery{Pricing: categoryPricing(category)}

	total, err := b.store.CountPosts(ctx, query)
	if err != nil {
		return err
	}
	if total == 0 {
		return b.browseReply(ctx, chatID, messageID, edit, msgBrowseEmpty, browseCategoriesKeyboard())
	}

	totalPages := (total + b.pageSize - 1) / b.pageSize
	if page > totalPages {
		page = totalPages
	}

	query.Limit = b.pageSize
	query.Offset = (page - 1) * b.pageSize
	posts, err := b.store.SearchPosts(ctx, query)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, msgBrowseHeaderFmt, categoryLabel(category), page, totalPages, total)
	sb.WriteString("\n\n")
	for i := range posts {
		p := &posts[i]
		fmt.Fprintf(&sb, "%d. %s\n    %s", i+1, render.Truncate(p.Title, 50), render.PricingLabel(p.PricingMode))
		if p.PriceRange != "" {
			fmt.Fprintf(&sb, " · %s", p.PriceRange)
		}
		sb.WriteString("\n")
	}

	return b.browseReply(ctx, chatID, messageID, edit, sb.String(), browsePageKeyboard(posts, category, page, totalPages))
}

func (b *Bot) browseReply(ctx context.Context, chatID, messageID int64, edit bool, text string, markup *telegram.InlineKeyboardMarkup) error {
	if edit && messageID != 0 {
		return b.api.EditMessageText(ctx, telegram.EditMessageTextRequest{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        text,
			ReplyMarkup: markup,
		})
	}
	b.send(ctx, chatID, text, markup)
	return nil
}
