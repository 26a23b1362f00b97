package validate

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"trim", "  שלום  ", "שלום"},
		{"collapse", "שלום   \t עולם", "שלום עולם"},
		{"zero width", "של​ום", "שלום"},
		{"cap", strings.Repeat("א", 3000), strings.Repeat("א", 2000)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTitle(t *testing.T) {
	lim := DefaultLimits()
	if _, err := Title("אב", lim); err == nil {
		t.Error("2-char title accepted")
	}
	if _, err := Title(strings.Repeat("א", 101), lim); err == nil {
		t.Error("101-char title accepted")
	}
	got, err := Title("  עיצוב לוגו  ", lim)
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if got != "עיצוב לוגו" {
		t.Errorf("got %q", got)
	}
}

func TestDescription(t *testing.T) {
	lim := DefaultLimits()
	if _, err := Description("קצר", lim); err == nil {
		t.Error("short description accepted")
	}
	if _, err := Description("תיאור ארוך מספיק בהחלט", lim); err != nil {
		t.Errorf("valid description rejected: %v", err)
	}
}

func TestPriceRange(t *testing.T) {
	cases := []struct {
		in, want string
		wantErr  bool
	}{
		{"100-500", "100-500 ש״ח", false},
		{"100-500 שקלים", "100-500 ש״ח", false},
		{"100 - 500 ₪", "100-500 ש״ח", false},
		{"100-500 dollars", "100-500 $", false},
		{"100", "100+ ש״ח", false},
		{"דלג", "", false},
		{"", "", false},
		{"500-100", "", true},
		{"המון כסף", "", true},
	}
	for _, tc := range cases {
		got, err := PriceRange(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("PriceRange(%q): want error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("PriceRange(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("PriceRange(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContactInfo(t *testing.T) {
	phone := []struct {
		in, want string
	}{
		{"0501234567", "050-1234567"},
		{"050-123-4567", "050-1234567"},
		{"+972501234567", "+972-50-1234567"},
		{"+972 (50) 123 4567", "+972-50-1234567"},
		{"035551234", "03-5551234"},
	}
	for _, tc := range phone {
		got, err := ContactInfo(tc.in)
		if err != nil {
			t.Errorf("ContactInfo(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ContactInfo(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	handles := []struct {
		in, want string
	}{
		{"@dana_design", "@dana_design"},
		{"dana_design", "@dana_design"},
		{"t.me/dana_design", "@dana_design"},
		{"https://t.me/dana_design", "@dana_design"},
	}
	for _, tc := range handles {
		got, err := ContactInfo(tc.in)
		if err != nil {
			t.Errorf("ContactInfo(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ContactInfo(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := ContactInfo("xyz"); err == nil {
		t.Error("3-char freeform accepted")
	}
	got, err := ContactInfo("תתקשרו אליי בערב")
	if err != nil {
		t.Fatalf("freeform rejected: %v", err)
	}
	if got != "תתקשרו אליי בערב" {
		t.Errorf("got %q", got)
	}

	if got, err := ContactInfo("Dana@Example.COM"); err != nil || got != "dana@example.com" {
		t.Errorf("email: got %q, %v", got, err)
	}
}

func TestTags(t *testing.T) {
	lim := DefaultLimits()

	got := Tags("עיצוב, לוגו ,  , מיתוג", lim)
	want := []string{"עיצוב", "לוגו", "מיתוג"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d: got %q, want %q", i, got[i], want[i])
		}
	}

	if got := Tags("Design، Logo", lim); len(got) != 2 || got[0] != "design" {
		t.Errorf("arabic comma / lower-case: got %v", got)
	}

	many := strings.Repeat("תג,", 15)
	if got := Tags(many, lim); len(got) != lim.MaxTags {
		t.Errorf("got %d tags, want capped at %d", len(got), lim.MaxTags)
	}

	long := strings.Repeat("א", 51)
	if got := Tags("תקין,"+long, lim); len(got) != 1 {
		t.Errorf("overlong tag kept: %v", got)
	}

	if got := Tags("דלג", lim); got != nil {
		t.Errorf("skip word produced tags: %v", got)
	}
}

func TestLinks(t *testing.T) {
	got := Links("האתר שלי example.com/portfolio וגם https://behance.net/dana")
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 links", got)
	}
	if got[0] != "https://example.com/portfolio" {
		t.Errorf("schemeless link: got %q", got[0])
	}
	if got[1] != "https://behance.net/dana" {
		t.Errorf("got %q", got[1])
	}

	many := "a.com b.com c.com d.com e.com f.com g.com"
	if got := Links(many); len(got) != 5 {
		t.Errorf("got %d links, want capped at 5", len(got))
	}

	if got := Links("אין לי אתר"); got != nil {
		t.Errorf("got %v, want none", got)
	}
}

func TestRegistryCoversEditableFields(t *testing.T) {
	for _, field := range []string{"title", "description", "pricing", "tags", "links", "contact"} {
		if _, ok := Registry[field]; !ok {
			t.Errorf("registry missing %q", field)
		}
	}

	lim := DefaultLimits()
	if got, err := Registry["pricing"]("barter", lim); err != nil || got != "barter" {
		t.Errorf("pricing barter: got %q, %v", got, err)
	}
	if _, err := Registry["pricing"]("whatever", lim); err == nil {
		t.Error("unknown pricing mode accepted")
	}
	if got, err := Registry["tags"]("עיצוב, לוגו", lim); err != nil || got != `["עיצוב","לוגו"]` {
		t.Errorf("tags: got %q, %v", got, err)
	}
	if got, err := Registry["tags"]("דלג", lim); err != nil || got != "[]" {
		t.Errorf("tags skip: got %q, %v", got, err)
	}
}
