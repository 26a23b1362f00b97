package render

import (
	"strings"
	"testing"
	"time"

	"barterbot/internal/domain"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testPost() *domain.Post {
	return &domain.Post{
		ID:             1,
		UserID:         10,
		Title:          "עיצוב לוגו מקצועי",
		Description:    "מעצבת לוגואים לעסקים קטנים עם ניסיון של עשר שנים",
		PricingMode:    domain.PricingBoth,
		PriceRange:     "100-500 ש״ח",
		PortfolioLinks: "https://example.com\nhttps://behance.net/dana",
		ContactInfo:    "@dana_design",
		Tags:           []string{"עיצוב", "לוגו", "מיתוג", "גרפיקה"},
		Visibility:     domain.VisibilityPublic,
		IsActive:       true,
		CreatedAt:      now.Add(-3 * time.Hour),
		OwnerFirstName: "דנה",
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("שלום", 10); got != "שלום" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("אבגדהוזחטי", 5); got != "אבגדה..." {
		t.Errorf("got %q", got)
	}
}

func TestTimeAgo(t *testing.T) {
	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "ממש עכשיו"},
		{5 * time.Minute, "לפני 5 דקות"},
		{3 * time.Hour, "לפני 3 שעות"},
		{2 * 24 * time.Hour, "לפני 2 ימים"},
		{10 * 24 * time.Hour, "לפני 1 שבועות"},
		{90 * 24 * time.Hour, "לפני 3 חודשים"},
	}
	for _, tc := range cases {
		if got := TimeAgo(now.Add(-tc.age), now); got != tc.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestPreview(t *testing.T) {
	p := testPost()
	got := Preview(p, now)

	if !strings.Contains(got, "עיצוב לוגו מקצועי") {
		t.Error("preview missing title")
	}
	if !strings.Contains(got, "🔄💰") {
		t.Error("preview missing pricing badge")
	}
	if !strings.Contains(got, "100-500 ש״ח") {
		t.Error("preview missing price range")
	}
	if !strings.Contains(got, "#עיצוב #לוגו #מיתוג +1") {
		t.Errorf("preview tags wrong:\n%s", got)
	}
	if !strings.Contains(got, "דנה") || !strings.Contains(got, "לפני 3 שעות") {
		t.Error("preview missing owner or age")
	}
	if strings.Contains(got, "@dana_design") {
		t.Error("preview leaked contact info")
	}
	if strings.Contains(got, "❄️") {
		t.Error("active post shows frozen badge")
	}

	p.IsActive = false
	if got := Preview(p, now); !strings.Contains(got, "❄️") {
		t.Error("frozen post missing badge")
	}
}

func TestPreviewTruncatesLongText(t *testing.T) {
	p := testPost()
	p.Description = strings.Repeat("א", 300)
	got := Preview(p, now)
	if strings.Contains(got, strings.Repeat("א", 101)) {
		t.Error("description not truncated")
	}
	if !strings.Contains(got, "...") {
		t.Error("missing ellipsis")
	}
}

func TestFull(t *testing.T) {
	p := testPost()

	got := Full(p, false, now)
	if strings.Contains(got, "@dana_design") {
		t.Error("contact shown without showContact")
	}
	if !strings.Contains(got, "https://behance.net/dana") {
		t.Error("missing portfolio link")
	}

	got = Full(p, true, now)
	if !strings.Contains(got, "@dana_design") {
		t.Error("contact missing with showContact")
	}

	p.Visibility = domain.VisibilityPrivate
	if got := Full(p, true, now); !strings.Contains(got, "🔒") {
		t.Error("private post missing note")
	}
}

func TestOwnerDisplayNameFallback(t *testing.T) {
	p := testPost()
	p.OwnerFirstName = ""
	p.OwnerUsername = "dana99"
	if got := p.OwnerDisplayName(); got != "dana99" {
		t.Errorf("got %q", got)
	}
	p.OwnerUsername = ""
	if got := p.OwnerDisplayName(); got != "אנונימי" {
		t.Errorf("got %q", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := EscapeMarkdown("a_b*c`d[e"); got != "a\\_b\\*c\\`d\\[e" {
		t.Errorf("got %q", got)
	}
}
