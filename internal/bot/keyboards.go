package bot

import (
	"fmt"

	"barterbot/internal/domain"
	"barterbot/internal/telegram"
)

func mainMenuKeyboard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: menuCreate}, {Text: menuSearch}},
			{{Text: menuBrowse}, {Text: menuMyPosts}},
			{{Text: menuSaved}, {Text: menuAlerts}},
			{{Text: menuHelp}},
		},
		ResizeKeyboard: true,
	}
}

func btn(text, data string) telegram.InlineKeyboardButton {
	return telegram.InlineKeyboardButton{Text: text, CallbackData: data}
}

func inline(rows ...[]telegram.InlineKeyboardButton) *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func pricingKeyboard() *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{btn(btnBarter, "pricing_barter"), btn(btnPayment, "pricing_payment")},
		[]telegram.InlineKeyboardButton{btn(btnBoth, "pricing_both"), btn(btnFree, "pricing_free")},
		[]telegram.InlineKeyboardButton{btn(btnCancel, "cancel_operation")},
	)
}

func visibilityKeyboard() *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{btn(btnPublic, "visibility_public"), btn(btnPrivate, "visibility_private")},
		[]telegram.InlineKeyboardButton{btn(btnCancel, "cancel_operation")},
	)
}

func cancelKeyboard() *telegram.InlineKeyboardMarkup {
	return inline([]telegram.InlineKeyboardButton{btn(btnCancel, "cancel_operation")})
}

func searchTypeKeyboard() *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{btn(btnSearchFull, "search_full"), btn(btnSearchTitles, "search_titles")},
		[]telegram.InlineKeyboardButton{btn(btnCancel, "cancel_operation")},
	)
}

// viewerKeyboard is the action row under a post shown to a non-owner. The
// back button is included only when backData is non-empty.
func viewerKeyboard(postID int64, saved bool, backData string) *telegram.InlineKeyboardMarkup {
	saveBtn := btn(btnSave, fmt.Sprintf("save_%d", postID))
	if saved {
		saveBtn = btn(btnUnsave, fmt.Sprintf("save_%d", postID))
	}
	rows := [][]telegram.InlineKeyboardButton{
		{btn(btnContact, fmt.Sprintf("contact_%d", postID)), saveBtn},
		{btn(btnShare, fmt.Sprintf("share_%d", postID)), btn(btnReport, fmt.Sprintf("report_%d", postID))},
	}
	if backData != "" {
		rows = append(rows, []telegram.InlineKeyboardButton{btn(btnBack, backData)})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// contactKeyboard follows a contact reveal.
func contactKeyboard(postID int64) *telegram.InlineKeyboardMarkup {
	return inline([]telegram.InlineKeyboardButton{
		btn(btnCopyContact, fmt.Sprintf("copy_contact_%d", postID)),
	})
}

// ownerKeyboard is the management view under the owner's own post.
func ownerKeyboard(p *domain.Post) *telegram.InlineKeyboardMarkup {
	toggle := btn(btnToggleFreeze, fmt.Sprintf("toggle_%d", p.ID))
	if !p.IsActive {
		toggle = btn(btnToggleActive, fmt.Sprintf("toggle_%d", p.ID))
	}
	return inline(
		[]telegram.InlineKeyboardButton{btn(btnEdit, fmt.Sprintf("edit_%d", p.ID)), toggle},
		[]telegram.InlineKeyboardButton{btn(btnStats, fmt.Sprintf("stats_%d", p.ID)), btn(btnShare, fmt.Sprintf("share_own_%d", p.ID))},
		[]telegram.InlineKeyboardButton{btn(btnDelete, fmt.Sprintf("delete_%d", p.ID)), btn(btnBack, "back_to_my_posts")},
	)
}

func editFieldsKeyboard(postID int64) *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{
			btn(btnEditTitle, fmt.Sprintf("edit_title_%d", postID)),
			btn(btnEditDesc, fmt.Sprintf("edit_desc_%d", postID)),
		},
		[]telegram.InlineKeyboardButton{
			btn(btnEditPricing, fmt.Sprintf("edit_pricing_%d", postID)),
			btn(btnEditTags, fmt.Sprintf("edit_tags_%d", postID)),
		},
		[]telegram.InlineKeyboardButton{
			btn(btnEditLinks, fmt.Sprintf("edit_links_%d", postID)),
			btn(btnEditContact, fmt.Sprintf("edit_contact_%d", postID)),
		},
		[]telegram.InlineKeyboardButton{btn(btnBack, fmt.Sprintf("back_to_post_%d", postID))},
	)
}

func editPricingKeyboard(postID int64) *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{btn(btnBarter, "pricing_barter"), btn(btnPayment, "pricing_payment")},
		[]telegram.InlineKeyboardButton{btn(btnBoth, "pricing_both"), btn(btnFree, "pricing_free")},
		[]telegram.InlineKeyboardButton{btn(btnBack, fmt.Sprintf("back_to_post_%d", postID))},
	)
}

func deleteConfirmKeyboard(postID int64) *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{
			btn(btnConfirmDel, fmt.Sprintf("confirm_delete_%d", postID)),
			btn(btnCancelDel, fmt.Sprintf("cancel_delete_%d", postID)),
		},
	)
}

func reportCancelKeyboard(postID int64) *telegram.InlineKeyboardMarkup {
	return inline([]telegram.InlineKeyboardButton{
		btn(btnCancel, fmt.Sprintf("cancel_report_%d", postID)),
	})
}

func browseCategoriesKeyboard() *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{btn(btnCatAll, "browse_all"), btn(btnCatBarter, "browse_barter")},
		[]telegram.InlineKeyboardButton{btn(btnCatPayment, "browse_payment"), btn(btnCatFree, "browse_free")},
	)
}

// browsePageKeyboard lays out numbered item buttons in two rows of four, then
// prev / page-indicator / next controls, then a back row.
func browsePageKeyboard(posts []domain.Post, category string, page, totalPages int) *telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton

	var row []telegram.InlineKeyboardButton
	for i, p := range posts {
		row = append(row, btn(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("view_post_%d_from_browse_%s_%d", p.ID, category, page),
		))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	var nav []telegram.InlineKeyboardButton
	if page > 1 {
		nav = append(nav, btn("⬅️", fmt.Sprintf("browse_%s_page_%d", category, page-1)))
	}
	nav = append(nav, btn(fmt.Sprintf("%d/%d", page, totalPages), "noop"))
	if page < totalPages {
		nav = append(nav, btn("➡️", fmt.Sprintf("browse_%s_page_%d", category, page+1)))
	}
	rows = append(rows, nav)

	rows = append(rows, []telegram.InlineKeyboardButton{btn(btnBack, "back_to_browse_options")})
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// titleResultsKeyboard is the inline list for title search: one button per
// hit.
func titleResultsKeyboard(posts []domain.Post) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []telegram.InlineKeyboardButton{
			btn(p.Title, fmt.Sprintf("view_post_%d", p.ID)),
		})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// myPostsKeyboard is one button per owned post, active ones first marked.
func myPostsKeyboard(posts []domain.Post) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(posts))
	for _, p := range posts {
		label := "🟢 " + p.Title
		if !p.IsActive {
			label = "❄️ " + p.Title
		}
		rows = append(rows, []telegram.InlineKeyboardButton{
			btn(label, fmt.Sprintf("back_to_post_%d", p.ID)),
		})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// savedPostsKeyboard is one button per favorite.
func savedPostsKeyboard(saved []domain.SavedPost) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(saved))
	for _, sp := range saved {
		rows = append(rows, []telegram.InlineKeyboardButton{
			btn(sp.Title, fmt.Sprintf("view_post_%d", sp.ID)),
		})
	}
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func alertMenuKeyboard() *telegram.InlineKeyboardMarkup {
	return inline(
		[]telegram.InlineKeyboardButton{btn(btnAlertAdd, "alert_add_keyword"), btn(btnAlertShow, "alert_show_keywords")},
		[]telegram.InlineKeyboardButton{btn(btnAlertRemove, "alert_remove_keyword"), btn(btnAlertReplace, "alert_replace_all")},
	)
}

func alertRemoveKeyboard(alerts []domain.KeywordAlert) *telegram.InlineKeyboardMarkup {
	rows := make([][]telegram.InlineKeyboardButton, 0, len(alerts)+1)
	for _, a := range alerts {
		rows = append(rows, []telegram.InlineKeyboardButton{
			btn("🗑 "+a.Keyword, "alert_delete_"+a.Keyword),
		})
	}
	rows = append(rows, []telegram.InlineKeyboardButton{btn(btnBack, "alert_menu")})
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}
