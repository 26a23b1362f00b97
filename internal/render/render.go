// Package render produces the Hebrew message text for posts. Output is
// deterministic for a given post and clock.
package render

import (
	"fmt"
	"strings"
	"time"

	"barterbot/internal/domain"
)

const (
	previewTitleLen = 50
	previewDescLen  = 100
	previewTagCount = 3
)

// PricingLabel is the badge shown next to a post's compensation mode.
func PricingLabel(mode domain.PricingMode) string {
	switch mode {
	case domain.PricingBarter:
		return "🔄 ברטר"
	case domain.PricingPayment:
		return "💰 תשלום"
	case domain.PricingBoth:
		return "🔄💰 ברטר או תשלום"
	case domain.PricingFree:
		return "🎁 חינם"
	}
	return string(mode)
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// TimeAgo renders a coarse Hebrew relative age for t against now.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "ממש עכשיו"
	case d < time.Hour:
		return fmt.Sprintf("לפני %d דקות", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("לפני %d שעות", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("לפני %d ימים", int(d.Hours()/24))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("לפני %d שבועות", int(d.Hours()/(24*7)))
	default:
		return fmt.Sprintf("לפני %d חודשים", int(d.Hours()/(24*30)))
	}
}

// FormatTags renders tags as hashtags on one line.
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag
	}
	return strings.Join(parts, " ")
}

// previewTags shows up to previewTagCount tags plus an overflow count.
func previewTags(tags []string) string {
	if len(tags) <= previewTagCount {
		return FormatTags(tags)
	}
	return FormatTags(tags[:previewTagCount]) + fmt.Sprintf(" +%d", len(tags)-previewTagCount)
}

// Preview renders the compact listing form used in search results and browse.
func Preview(p *domain.Post, now time.Time) string {
	var b strings.Builder

	status := ""
	if !p.IsActive {
		status = "❄️ "
	}
	fmt.Fprintf(&b, "%s*%s*\n", status, Truncate(p.Title, previewTitleLen))
	fmt.Fprintf(&b, "%s\n\n", Truncate(p.Description, previewDescLen))
	b.WriteString(PricingLabel(p.PricingMode))
	if p.PriceRange != "" {
		fmt.Fprintf(&b, " · %s", p.PriceRange)
	}
	b.WriteString("\n")
	if tags := previewTags(p.Tags); tags != "" {
		b.WriteString(tags + "\n")
	}
	fmt.Fprintf(&b, "👤 %s · %s", p.OwnerDisplayName(), TimeAgo(p.CreatedAt, now))
	return b.String()
}

// Full renders the complete post form. Contact info is included only when
// showContact is set (the viewer pressed the contact button or owns the post).
func Full(p *domain.Post, showContact bool, now time.Time) string {
	var b strings.Builder

	if !p.IsActive {
		b.WriteString("❄️ הפוסט מוקפא כרגע\n\n")
	}
	if p.Visibility == domain.VisibilityPrivate {
		b.WriteString("🔒 פוסט בדיקה (פרטי)\n\n")
	}

	fmt.Fprintf(&b, "*%s*\n\n", p.Title)
	fmt.Fprintf(&b, "%s\n\n", p.Description)
	fmt.Fprintf(&b, "💵 תמחור: %s", PricingLabel(p.PricingMode))
	if p.PriceRange != "" {
		fmt.Fprintf(&b, " (%s)", p.PriceRange)
	}
	b.WriteString("\n")

	if p.PortfolioLinks != "" {
		b.WriteString("🔗 תיק עבודות:\n")
		for _, link := range strings.Split(p.PortfolioLinks, "\n") {
			if link != "" {
				fmt.Fprintf(&b, "  %s\n", link)
			}
		}
	}
	if tags := FormatTags(p.Tags); tags != "" {
		b.WriteString(tags + "\n")
	}
	if showContact {
		fmt.Fprintf(&b, "📞 יצירת קשר: %s\n", p.ContactInfo)
	}
	fmt.Fprintf(&b, "\n👤 %s · %s", p.OwnerDisplayName(), TimeAgo(p.CreatedAt, now))
	return b.String()
}

// EscapeMarkdown escapes the characters Telegram's legacy Markdown parser
// treats as formatting, for interpolating user text into styled messages.
func EscapeMarkdown(s string) string {
	r := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return r.Replace(s)
}
