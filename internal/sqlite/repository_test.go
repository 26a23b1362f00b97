package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"barterbot/internal/domain"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	r, err := NewRepository(":memory:")
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func seedUser(t *testing.T, r *Repository, id int64, name string) {
	t.Helper()
	err := r.UpsertUser(context.Background(), domain.User{ID: id, Username: name, FirstName: name})
	if err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}
}

func seedPost(t *testing.T, r *Repository, p domain.Post) int64 {
	t.Helper()
	if p.PricingMode == "" {
		p.PricingMode = domain.PricingBarter
	}
	if p.ContactInfo == "" {
		p.ContactInfo = "@someone"
	}
	id, err := r.CreatePost(context.Background(), &p)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	// created_at resolution is sub-millisecond but not guaranteed distinct
	// for back-to-back inserts; keep ordering deterministic.
	time.Sleep(2 * time.Millisecond)
	return id
}

func TestCreateAndGetPost(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")

	post := domain.Post{
		UserID:         1,
		Title:          "עיצוב לוגו",
		Description:    "מעצבת לוגואים לעסקים קטנים",
		PricingMode:    domain.PricingBoth,
		PriceRange:     "100-500 ש״ח",
		PortfolioLinks: "https://example.com",
		ContactInfo:    "@dana_design",
		Tags:           []string{"עיצוב", "לוגו"},
	}
	id, err := r.CreatePost(ctx, &post)
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	got, err := r.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != post.Title || got.Description != post.Description {
		t.Errorf("got title %q description %q", got.Title, got.Description)
	}
	if got.PricingMode != domain.PricingBoth || got.PriceRange != "100-500 ש״ח" {
		t.Errorf("got pricing %s %q", got.PricingMode, got.PriceRange)
	}
	if !got.IsActive || got.Visibility != domain.VisibilityPublic {
		t.Errorf("got active=%v visibility=%s, want active public", got.IsActive, got.Visibility)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "עיצוב" {
		t.Errorf("got tags %v", got.Tags)
	}
	if got.OwnerFirstName != "dana" {
		t.Errorf("got owner %q", got.OwnerFirstName)
	}

	if _, err := r.GetPost(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetPost missing: got %v, want ErrNotFound", err)
	}
}

func TestUpsertUserPreservesCreation(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "old")
	seedUser(t, r, 1, "new")

	var name string
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT username, (SELECT COUNT(*) FROM users) FROM users WHERE user_id = 1`).
		Scan(&name, &count)
	if err != nil {
		t.Fatalf("query user: %v", err)
	}
	if name != "new" || count != 1 {
		t.Errorf("got username=%q count=%d, want new/1", name, count)
	}
}

func TestSearchPostsFullText(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	seedUser(t, r, 2, "yoni")

	seedPost(t, r, domain.Post{UserID: 1, Title: "עיצוב לוגו", Description: "לוגואים מקצועיים"})
	seedPost(t, r, domain.Post{UserID: 2, Title: "שיעורי גיטרה", Description: "מורה לגיטרה עם ניסיון"})
	hidden := seedPost(t, r, domain.Post{UserID: 1, Title: "עיצוב אתרים", Description: "בניית אתרים"})
	if _, err := r.TogglePost(ctx, hidden, 1); err != nil {
		t.Fatalf("TogglePost: %v", err)
	}
	seedPost(t, r, domain.Post{UserID: 1, Title: "עיצוב כרטיסי ביקור", Description: "בדיקה פנימית", Visibility: domain.VisibilityPrivate})

	posts, err := r.SearchPosts(ctx, domain.PostQuery{Text: "עיצוב", Limit: 20})
	if err != nil {
		t.Fatalf("SearchPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("got %d results, want 1 (inactive and private excluded)", len(posts))
	}
	if posts[0].Title != "עיצוב לוגו" {
		t.Errorf("got %q", posts[0].Title)
	}

	// Match syntax in user input must not be interpreted.
	if _, err := r.SearchPosts(ctx, domain.PostQuery{Text: `לוגו OR "x`, Limit: 20}); err != nil {
		t.Errorf("SearchPosts with quote in input: %v", err)
	}
}

func TestSearchPostsByTitle(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	seedPost(t, r, domain.Post{UserID: 1, Title: "עיצוב לוגו", Description: "בתיאור יש גיטרה"})
	seedPost(t, r, domain.Post{UserID: 1, Title: "שיעורי גיטרה", Description: "מורה מנוסה"})

	posts, err := r.SearchPosts(ctx, domain.PostQuery{Text: "גיטרה", TitleOnly: true, Limit: 10})
	if err != nil {
		t.Fatalf("SearchPosts: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "שיעורי גיטרה" {
		t.Errorf("got %d results %v, want only the title match", len(posts), posts)
	}
}

func TestSearchPostsPricingFilter(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	seedPost(t, r, domain.Post{UserID: 1, Title: "אחד", Description: "תיאור כלשהו", PricingMode: domain.PricingBarter})
	seedPost(t, r, domain.Post{UserID: 1, Title: "שניים", Description: "תיאור כלשהו", PricingMode: domain.PricingBoth})
	seedPost(t, r, domain.Post{UserID: 1, Title: "שלושה", Description: "תיאור כלשהו", PricingMode: domain.PricingPayment})
	seedPost(t, r, domain.Post{UserID: 1, Title: "ארבעה", Description: "תיאור כלשהו", PricingMode: domain.PricingFree})

	cases := []struct {
		mode domain.PricingMode
		want int
	}{
		{domain.PricingBarter, 2},
		{domain.PricingPayment, 2},
		{domain.PricingFree, 1},
		{"", 4},
	}
	for _, tc := range cases {
		posts, err := r.SearchPosts(ctx, domain.PostQuery{Pricing: tc.mode, Limit: 20})
		if err != nil {
			t.Fatalf("SearchPosts(%s): %v", tc.mode, err)
		}
		if len(posts) != tc.want {
			t.Errorf("pricing %q: got %d posts, want %d", tc.mode, len(posts), tc.want)
		}
	}
}

func TestPagination(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	for i := 0; i < 10; i++ {
		seedPost(t, r, domain.Post{UserID: 1, Title: "פוסט", Description: "תיאור ארוך מספיק"})
	}

	total, err := r.CountPosts(ctx, domain.PostQuery{})
	if err != nil {
		t.Fatalf("CountPosts: %v", err)
	}
	if total != 10 {
		t.Fatalf("got total %d, want 10", total)
	}

	page1, err := r.SearchPosts(ctx, domain.PostQuery{Limit: 8})
	if err != nil {
		t.Fatalf("SearchPosts page 1: %v", err)
	}
	page2, err := r.SearchPosts(ctx, domain.PostQuery{Limit: 8, Offset: 8})
	if err != nil {
		t.Fatalf("SearchPosts page 2: %v", err)
	}
	if len(page1) != 8 || len(page2) != 2 {
		t.Errorf("got pages of %d and %d, want 8 and 2", len(page1), len(page2))
	}
	if page1[0].ID == page2[0].ID {
		t.Errorf("pages overlap at id %d", page1[0].ID)
	}
}

func TestGetUserPostsIncludesFrozen(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	seedUser(t, r, 2, "yoni")
	id := seedPost(t, r, domain.Post{UserID: 1, Title: "ראשון", Description: "תיאור ארוך מספיק"})
	seedPost(t, r, domain.Post{UserID: 1, Title: "שני", Description: "תיאור ארוך מספיק"})
	seedPost(t, r, domain.Post{UserID: 2, Title: "של מישהו אחר", Description: "תיאור ארוך מספיק"})

	if _, err := r.TogglePost(ctx, id, 1); err != nil {
		t.Fatalf("TogglePost: %v", err)
	}

	posts, err := r.GetUserPosts(ctx, 1)
	if err != nil {
		t.Fatalf("GetUserPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].Title != "שני" {
		t.Errorf("got first post %q, want newest first", posts[0].Title)
	}
}

func TestTogglePostOwnership(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	id := seedPost(t, r, domain.Post{UserID: 1, Title: "פוסט", Description: "תיאור ארוך מספיק"})

	ok, err := r.TogglePost(ctx, id, 2)
	if err != nil {
		t.Fatalf("TogglePost: %v", err)
	}
	if ok {
		t.Error("toggle by non-owner succeeded")
	}

	ok, err = r.TogglePost(ctx, id, 1)
	if err != nil {
		t.Fatalf("TogglePost: %v", err)
	}
	if !ok {
		t.Fatal("toggle by owner failed")
	}
	got, err := r.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.IsActive {
		t.Error("post still active after toggle")
	}
}

func TestDeletePostCascades(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	seedUser(t, r, 2, "yoni")
	id := seedPost(t, r, domain.Post{UserID: 1, Title: "למחיקה", Description: "תיאור ארוך מספיק"})

	if _, err := r.SavePost(ctx, 2, id); err != nil {
		t.Fatalf("SavePost: %v", err)
	}

	ok, err := r.DeletePost(ctx, id, 2)
	if err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if ok {
		t.Fatal("delete by non-owner succeeded")
	}

	ok, err = r.DeletePost(ctx, id, 1)
	if err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if !ok {
		t.Fatal("delete by owner failed")
	}
	if _, err := r.GetPost(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetPost after delete: got %v, want ErrNotFound", err)
	}

	n, err := r.CountSavedPosts(ctx, 2)
	if err != nil {
		t.Fatalf("CountSavedPosts: %v", err)
	}
	if n != 0 {
		t.Errorf("got %d saved posts after cascade, want 0", n)
	}

	posts, err := r.SearchPosts(ctx, domain.PostQuery{Text: "למחיקה", Limit: 20})
	if err != nil {
		t.Fatalf("SearchPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("deleted post still in search index")
	}
}

func TestUpdatePostField(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	id := seedPost(t, r, domain.Post{UserID: 1, Title: "כותרת ישנה", Description: "תיאור ארוך מספיק"})

	if err := r.UpdatePostField(ctx, id, "title", "כותרת חדשה"); err != nil {
		t.Fatalf("UpdatePostField: %v", err)
	}
	got, err := r.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "כותרת חדשה" {
		t.Errorf("got title %q", got.Title)
	}

	// The FTS update trigger must pick up the new text.
	posts, err := r.SearchPosts(ctx, domain.PostQuery{Text: "חדשה", Limit: 20})
	if err != nil {
		t.Fatalf("SearchPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Errorf("got %d results for updated title, want 1", len(posts))
	}

	if err := r.UpdatePostField(ctx, id, "user_id", "2"); err == nil {
		t.Error("update of non-editable field succeeded")
	}
	if err := r.UpdatePostField(ctx, 9999, "title", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("update of missing post: got %v, want ErrNotFound", err)
	}
}

func TestFavorites(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "dana")
	seedUser(t, r, 2, "yoni")
	first := seedPost(t, r, domain.Post{UserID: 1, Title: "ראשון", Description: "תיאור ארוך מספיק"})
	second := seedPost(t, r, domain.Post{UserID: 1, Title: "שני", Description: "תיאור ארוך מספיק"})

	added, err := r.SavePost(ctx, 2, first)
	if err != nil {
		t.Fatalf("SavePost: %v", err)
	}
	if !added {
		t.Error("first save reported not added")
	}
	added, err = r.SavePost(ctx, 2, first)
	if err != nil {
		t.Fatalf("SavePost repeat: %v", err)
	}
	if added {
		t.Error("repeated save reported added")
	}
	if _, err := r.SavePost(ctx, 2, second); err != nil {
		t.Fatalf("SavePost: %v", err)
	}

	saved, err := r.IsPostSaved(ctx, 2, first)
	if err != nil {
		t.Fatalf("IsPostSaved: %v", err)
	}
	if !saved {
		t.Error("IsPostSaved false after save")
	}

	// Frozen posts drop out of the favorites listing.
	if _, err := r.TogglePost(ctx, second, 1); err != nil {
		t.Fatalf("TogglePost: %v", err)
	}
	list, err := r.GetSavedPosts(ctx, 2)
	if err != nil {
		t.Fatalf("GetSavedPosts: %v", err)
	}
	if len(list) != 1 || list[0].ID != first {
		t.Errorf("got %d saved posts, want only the active one", len(list))
	}
	n, err := r.CountSavedPosts(ctx, 2)
	if err != nil {
		t.Fatalf("CountSavedPosts: %v", err)
	}
	if n != 1 {
		t.Errorf("got count %d, want 1", n)
	}

	removed, err := r.UnsavePost(ctx, 2, first)
	if err != nil {
		t.Fatalf("UnsavePost: %v", err)
	}
	if !removed {
		t.Error("unsave reported no row removed")
	}
	removed, err = r.UnsavePost(ctx, 2, first)
	if err != nil {
		t.Fatalf("UnsavePost repeat: %v", err)
	}
	if removed {
		t.Error("repeated unsave reported a removal")
	}
}

func TestKeywordAlerts(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 1, "author")
	seedUser(t, r, 2, "subscriber")
	seedUser(t, r, 3, "other")

	added, err := r.AddKeywordAlert(ctx, 2, "לוגו")
	if err != nil {
		t.Fatalf("AddKeywordAlert: %v", err)
	}
	if !added {
		t.Error("first add reported not added")
	}
	added, err = r.AddKeywordAlert(ctx, 2, "לוגו")
	if err != nil {
		t.Fatalf("AddKeywordAlert repeat: %v", err)
	}
	if added {
		t.Error("duplicate add reported added")
	}
	if _, err := r.AddKeywordAlert(ctx, 1, "לוגו"); err != nil {
		t.Fatalf("AddKeywordAlert: %v", err)
	}
	if _, err := r.AddKeywordAlert(ctx, 3, "גיטרה"); err != nil {
		t.Fatalf("AddKeywordAlert: %v", err)
	}

	id := seedPost(t, r, domain.Post{UserID: 1, Title: "עיצוב לוגו", Description: "לוגואים לעסקים"})
	post, err := r.GetPost(ctx, id)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}

	matches, err := r.CheckPostForKeywords(ctx, post)
	if err != nil {
		t.Fatalf("CheckPostForKeywords: %v", err)
	}
	if len(matches) != 1 || matches[0].UserID != 2 || matches[0].Keyword != "לוגו" {
		t.Fatalf("got matches %v, want only user 2 / לוגו (author excluded)", matches)
	}

	if err := r.RecordSentAlert(ctx, 2, id, "לוגו"); err != nil {
		t.Fatalf("RecordSentAlert: %v", err)
	}
	matches, err = r.CheckPostForKeywords(ctx, post)
	if err != nil {
		t.Fatalf("CheckPostForKeywords after send: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches after alert was sent, want 0", len(matches))
	}
}

func TestSetUserKeywords(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, 2, "subscriber")

	if _, err := r.AddKeywordAlert(ctx, 2, "ישן"); err != nil {
		t.Fatalf("AddKeywordAlert: %v", err)
	}
	if err := r.SetUserKeywords(ctx, 2, []string{"חדש", "  גם חדש  ", "חדש"}); err != nil {
		t.Fatalf("SetUserKeywords: %v", err)
	}

	alerts, err := r.GetUserKeywords(ctx, 2)
	if err != nil {
		t.Fatalf("GetUserKeywords: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d keywords, want 2", len(alerts))
	}
	for _, a := range alerts {
		if a.Keyword == "ישן" {
			t.Error("old keyword survived replacement")
		}
	}

	removed, err := r.RemoveKeywordAlert(ctx, 2, "חדש")
	if err != nil {
		t.Fatalf("RemoveKeywordAlert: %v", err)
	}
	if !removed {
		t.Error("remove reported no row")
	}
}
