package bot

import (
	"fmt"
	"strconv"
	"strings"

	"barterbot/internal/domain"
)

// Action is a parsed callback token. Tokens are parsed exactly once, at the
// edge, into this closed set; handlers switch on the concrete type and never
// see the raw string again.
type Action interface {
	isAction()
}

type (
	// PricingChosen is a pricing button in the creation flow.
	PricingChosen struct{ Mode domain.PricingMode }

	// VisibilityChosen is a visibility button in the admin creation flow.
	VisibilityChosen struct{ Visibility domain.Visibility }

	// ViewPost opens a post's full form. When FromBrowse is set, the back
	// button returns to the originating browse page.
	ViewPost struct {
		PostID     int64
		FromBrowse bool
		Category   string
		Page       int
	}

	// Browse opens a category listing at the given page (1-based).
	Browse struct {
		Category string
		Page     int
	}

	// BrowsePost is a numbered item button on a browse page.
	BrowsePost struct{ PostID int64 }

	// BackToBrowseOptions returns to the category picker.
	BackToBrowseOptions struct{}

	// Contact reveals a post's contact info.
	Contact struct{ PostID int64 }

	// CopyContact re-sends the contact info as a bare copyable message.
	CopyContact struct{ PostID int64 }

	// Save toggles a post in the viewer's favorites.
	Save struct{ PostID int64 }

	// Report starts the two-step report dialog.
	Report struct{ PostID int64 }

	// CancelReport aborts a pending report.
	CancelReport struct{ PostID int64 }

	// Share produces a deep link for a post.
	Share struct{ PostID int64 }

	// ShareOwn is the share button on the owner's own management view.
	ShareOwn struct{ PostID int64 }

	// EditMenu opens the field picker for a post.
	EditMenu struct{ PostID int64 }

	// EditField starts an edit session for one field. Field is a validator
	// registry name.
	EditField struct {
		PostID int64
		Field  string
	}

	// Toggle freezes or unfreezes a post.
	Toggle struct{ PostID int64 }

	// Delete asks for delete confirmation.
	Delete struct{ PostID int64 }

	// ConfirmDelete permanently deletes a post.
	ConfirmDelete struct{ PostID int64 }

	// CancelDelete aborts a pending delete.
	CancelDelete struct{ PostID int64 }

	// Stats shows a post's interaction counters to its owner.
	Stats struct{ PostID int64 }

	// BackToPost returns to the post's management view.
	BackToPost struct{ PostID int64 }

	// BackToMyPosts returns to the owner's post list.
	BackToMyPosts struct{}

	// BackToMain returns to the main menu.
	BackToMain struct{}

	// AlertMenu opens the keyword-alert menu.
	AlertMenu struct{}

	// AlertAddKeyword prompts for a keyword to add.
	AlertAddKeyword struct{}

	// AlertShowKeywords lists the user's keywords.
	AlertShowKeywords struct{}

	// AlertRemoveKeyword lists keywords with delete buttons.
	AlertRemoveKeyword struct{}

	// AlertReplaceAll prompts for a full replacement keyword list.
	AlertReplaceAll struct{}

	// AlertDelete removes one keyword subscription.
	AlertDelete struct{ Keyword string }

	// SearchFull starts a free-text search.
	SearchFull struct{}

	// SearchTitles starts a title-only search.
	SearchTitles struct{}

	// CancelOperation aborts whatever flow the user is in.
	CancelOperation struct{}

	// Noop acknowledges a decorative button, like the page indicator.
	Noop struct{}
)

func (PricingChosen) isAction()       {}
func (VisibilityChosen) isAction()    {}
func (ViewPost) isAction()            {}
func (Browse) isAction()              {}
func (BrowsePost) isAction()          {}
func (BackToBrowseOptions) isAction() {}
func (Contact) isAction()             {}
func (CopyContact) isAction()         {}
func (Save) isAction()                {}
func (Report) isAction()              {}
func (CancelReport) isAction()        {}
func (Share) isAction()               {}
func (ShareOwn) isAction()            {}
func (EditMenu) isAction()            {}
func (EditField) isAction()           {}
func (Toggle) isAction()              {}
func (Delete) isAction()              {}
func (ConfirmDelete) isAction()       {}
func (CancelDelete) isAction()        {}
func (Stats) isAction()               {}
func (BackToPost) isAction()          {}
func (BackToMyPosts) isAction()       {}
func (BackToMain) isAction()          {}
func (AlertMenu) isAction()           {}
func (AlertAddKeyword) isAction()     {}
func (AlertShowKeywords) isAction()   {}
func (AlertRemoveKeyword) isAction()  {}
func (AlertReplaceAll) isAction()     {}
func (AlertDelete) isAction()         {}
func (SearchFull) isAction()          {}
func (SearchTitles) isAction()        {}
func (CancelOperation) isAction()     {}
func (Noop) isAction()                {}

// editFields maps the short field tokens used in callback data to validator
// registry names.
var editFields = map[string]string{
	"title":   "title",
	"desc":    "description",
	"pricing": "pricing",
	"tags":    "tags",
	"links":   "links",
	"contact": "contact",
}

func validCategory(cat string) bool {
	switch cat {
	case "all", "barter", "payment", "free":
		return true
	}
	return false
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad post id %q", s)
	}
	return id, nil
}

// ParseAction parses a callback token. Unknown tokens are an error; the
// handler answers the callback and ignores them.
func ParseAction(data string) (Action, error) {
	switch data {
	case "back_to_browse_options":
		return BackToBrowseOptions{}, nil
	case "back_to_my_posts":
		return BackToMyPosts{}, nil
	case "back_to_main":
		return BackToMain{}, nil
	case "alert_menu":
		return AlertMenu{}, nil
	case "alert_add_keyword":
		return AlertAddKeyword{}, nil
	case "alert_show_keywords":
		return AlertShowKeywords{}, nil
	case "alert_remove_keyword":
		return AlertRemoveKeyword{}, nil
	case "alert_replace_all":
		return AlertReplaceAll{}, nil
	case "search_full":
		return SearchFull{}, nil
	case "search_titles":
		return SearchTitles{}, nil
	case "cancel_operation":
		return CancelOperation{}, nil
	case "noop":
		return Noop{}, nil
	}

	// Longer prefixes first: several tokens share a shorter token's prefix
	// (share_own_/share_, confirm_delete_/delete_, browse_post_/browse_).
	switch {
	case strings.HasPrefix(data, "pricing_"):
		mode := domain.PricingMode(strings.TrimPrefix(data, "pricing_"))
		if !domain.ValidPricingMode(mode) {
			return nil, fmt.Errorf("bad pricing token %q", data)
		}
		return PricingChosen{Mode: mode}, nil

	case strings.HasPrefix(data, "visibility_"):
		switch v := strings.TrimPrefix(data, "visibility_"); v {
		case "public":
			return VisibilityChosen{Visibility: domain.VisibilityPublic}, nil
		case "private":
			return VisibilityChosen{Visibility: domain.VisibilityPrivate}, nil
		}
		return nil, fmt.Errorf("bad visibility token %q", data)

	case strings.HasPrefix(data, "view_post_"):
		rest := strings.TrimPrefix(data, "view_post_")
		if idStr, from, ok := strings.Cut(rest, "_from_browse_"); ok {
			id, err := parseID(idStr)
			if err != nil {
				return nil, err
			}
			cat, pageStr, ok := cutLast(from, "_")
			if !ok || !validCategory(cat) {
				return nil, fmt.Errorf("bad browse origin %q", data)
			}
			page, err := strconv.Atoi(pageStr)
			if err != nil || page < 1 {
				return nil, fmt.Errorf("bad browse page %q", data)
			}
			return ViewPost{PostID: id, FromBrowse: true, Category: cat, Page: page}, nil
		}
		id, err := parseID(rest)
		if err != nil {
			return nil, err
		}
		return ViewPost{PostID: id}, nil

	case strings.HasPrefix(data, "browse_post_"):
		id, err := parseID(strings.TrimPrefix(data, "browse_post_"))
		if err != nil {
			return nil, err
		}
		return BrowsePost{PostID: id}, nil

	case strings.HasPrefix(data, "browse_"):
		rest := strings.TrimPrefix(data, "browse_")
		if cat, pageStr, ok := cutLast(rest, "_page_"); ok {
			if !validCategory(cat) {
				return nil, fmt.Errorf("bad browse category %q", data)
			}
			page, err := strconv.Atoi(pageStr)
			if err != nil || page < 1 {
				return nil, fmt.Errorf("bad browse page %q", data)
			}
			return Browse{Category: cat, Page: page}, nil
		}
		if !validCategory(rest) {
			return nil, fmt.Errorf("bad browse category %q", data)
		}
		return Browse{Category: rest, Page: 1}, nil

	case strings.HasPrefix(data, "copy_contact_"):
		id, err := parseID(strings.TrimPrefix(data, "copy_contact_"))
		if err != nil {
			return nil, err
		}
		return CopyContact{PostID: id}, nil

	case strings.HasPrefix(data, "contact_"):
		id, err := parseID(strings.TrimPrefix(data, "contact_"))
		if err != nil {
			return nil, err
		}
		return Contact{PostID: id}, nil

	case strings.HasPrefix(data, "save_"):
		id, err := parseID(strings.TrimPrefix(data, "save_"))
		if err != nil {
			return nil, err
		}
		return Save{PostID: id}, nil

	case strings.HasPrefix(data, "cancel_report_"):
		id, err := parseID(strings.TrimPrefix(data, "cancel_report_"))
		if err != nil {
			return nil, err
		}
		return CancelReport{PostID: id}, nil

	case strings.HasPrefix(data, "report_"):
		id, err := parseID(strings.TrimPrefix(data, "report_"))
		if err != nil {
			return nil, err
		}
		return Report{PostID: id}, nil

	case strings.HasPrefix(data, "share_own_"):
		id, err := parseID(strings.TrimPrefix(data, "share_own_"))
		if err != nil {
			return nil, err
		}
		return ShareOwn{PostID: id}, nil

	case strings.HasPrefix(data, "share_"):
		id, err := parseID(strings.TrimPrefix(data, "share_"))
		if err != nil {
			return nil, err
		}
		return Share{PostID: id}, nil

	case strings.HasPrefix(data, "edit_"):
		rest := strings.TrimPrefix(data, "edit_")
		if token, idStr, ok := strings.Cut(rest, "_"); ok {
			if field, known := editFields[token]; known {
				id, err := parseID(idStr)
				if err != nil {
					return nil, err
				}
				return EditField{PostID: id, Field: field}, nil
			}
		}
		id, err := parseID(rest)
		if err != nil {
			return nil, err
		}
		return EditMenu{PostID: id}, nil

	case strings.HasPrefix(data, "toggle_"):
		id, err := parseID(strings.TrimPrefix(data, "toggle_"))
		if err != nil {
			return nil, err
		}
		return Toggle{PostID: id}, nil

	case strings.HasPrefix(data, "confirm_delete_"):
		id, err := parseID(strings.TrimPrefix(data, "confirm_delete_"))
		if err != nil {
			return nil, err
		}
		return ConfirmDelete{PostID: id}, nil

	case strings.HasPrefix(data, "cancel_delete_"):
		id, err := parseID(strings.TrimPrefix(data, "cancel_delete_"))
		if err != nil {
			return nil, err
		}
		return CancelDelete{PostID: id}, nil

	case strings.HasPrefix(data, "delete_"):
		id, err := parseID(strings.TrimPrefix(data, "delete_"))
		if err != nil {
			return nil, err
		}
		return Delete{PostID: id}, nil

	case strings.HasPrefix(data, "stats_"):
		id, err := parseID(strings.TrimPrefix(data, "stats_"))
		if err != nil {
			return nil, err
		}
		return Stats{PostID: id}, nil

	case strings.HasPrefix(data, "back_to_post_"):
		id, err := parseID(strings.TrimPrefix(data, "back_to_post_"))
		if err != nil {
			return nil, err
		}
		return BackToPost{PostID: id}, nil

	case strings.HasPrefix(data, "alert_delete_"):
		kw := strings.TrimPrefix(data, "alert_delete_")
		if kw == "" {
			return nil, fmt.Errorf("empty alert keyword in %q", data)
		}
		return AlertDelete{Keyword: kw}, nil
	}

	return nil, fmt.Errorf("unknown callback token %q", data)
}

// cutLast splits s around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
