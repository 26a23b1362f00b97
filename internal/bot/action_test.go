package bot

import (
	"reflect"
	"testing"

	"barterbot/internal/domain"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		data string
		want Action
	}{
		{"pricing_barter", PricingChosen{Mode: domain.PricingBarter}},
		{"pricing_both", PricingChosen{Mode: domain.PricingBoth}},
		{"visibility_private", VisibilityChosen{Visibility: domain.VisibilityPrivate}},
		{"view_post_42", ViewPost{PostID: 42}},
		{"view_post_42_from_browse_barter_3", ViewPost{PostID: 42, FromBrowse: true, Category: "barter", Page: 3}},
		{"browse_all", Browse{Category: "all", Page: 1}},
		{"browse_free_page_2", Browse{Category: "free", Page: 2}},
		{"browse_post_7", BrowsePost{PostID: 7}},
		{"back_to_browse_options", BackToBrowseOptions{}},
		{"contact_5", Contact{PostID: 5}},
		{"copy_contact_5", CopyContact{PostID: 5}},
		{"save_5", Save{PostID: 5}},
		{"report_5", Report{PostID: 5}},
		{"cancel_report_5", CancelReport{PostID: 5}},
		{"share_5", Share{PostID: 5}},
		{"share_own_5", ShareOwn{PostID: 5}},
		{"edit_5", EditMenu{PostID: 5}},
		{"edit_title_5", EditField{PostID: 5, Field: "title"}},
		{"edit_desc_5", EditField{PostID: 5, Field: "description"}},
		{"edit_contact_5", EditField{PostID: 5, Field: "contact"}},
		{"toggle_5", Toggle{PostID: 5}},
		{"delete_5", Delete{PostID: 5}},
		{"confirm_delete_5", ConfirmDelete{PostID: 5}},
		{"cancel_delete_5", CancelDelete{PostID: 5}},
		{"stats_5", Stats{PostID: 5}},
		{"back_to_post_5", BackToPost{PostID: 5}},
		{"back_to_my_posts", BackToMyPosts{}},
		{"back_to_main", BackToMain{}},
		{"alert_menu", AlertMenu{}},
		{"alert_add_keyword", AlertAddKeyword{}},
		{"alert_show_keywords", AlertShowKeywords{}},
		{"alert_remove_keyword", AlertRemoveKeyword{}},
		{"alert_replace_all", AlertReplaceAll{}},
		{"alert_delete_לוגו", AlertDelete{Keyword: "לוגו"}},
		{"search_full", SearchFull{}},
		{"search_titles", SearchTitles{}},
		{"cancel_operation", CancelOperation{}},
		{"noop", Noop{}},
	}
	for _, tc := range cases {
		t.Run(tc.data, func(t *testing.T) {
			got, err := ParseAction(tc.data)
			if err != nil {
				t.Fatalf("ParseAction(%q): %v", tc.data, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseAction(%q) = %#v, want %#v", tc.data, got, tc.want)
			}
		})
	}
}

func TestParseActionRejects(t *testing.T) {
	bad := []string{
		"",
		"something_else",
		"pricing_gold",
		"visibility_hidden",
		"view_post_abc",
		"view_post_0",
		"view_post_3_from_browse_unknown_1",
		"view_post_3_from_browse_all_0",
		"browse_unknown",
		"browse_all_page_0",
		"edit_color_5",
		"delete_",
		"alert_delete_",
	}
	for _, data := range bad {
		if got, err := ParseAction(data); err == nil {
			t.Errorf("ParseAction(%q) = %#v, want error", data, got)
		}
	}
}
