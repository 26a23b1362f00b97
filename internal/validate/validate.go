// Package validate normalizes and validates user-supplied post fields. Error
// values carry the Hebrew text shown back to the user as a re-prompt.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"barterbot/internal/domain"
)

// Limits are the configurable field bounds.
type Limits struct {
	MaxTitle       int
	MaxDescription int
	MaxTags        int
}

// DefaultLimits mirrors the production defaults.
func DefaultLimits() Limits {
	return Limits{MaxTitle: 100, MaxDescription: 1000, MaxTags: 10}
}

const (
	maxInputLen  = 2000
	maxTagLen    = 50
	maxLinkCount = 5
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	zeroWidthRe  = regexp.MustCompile(`[\x{200B}-\x{200D}\x{FEFF}]`)

	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^(\+972|0)(5[0-9]|2|3|4|7|8|9)([0-9]{7,8})$`)
	phoneSepRe = regexp.MustCompile(`[\s().-]`)
	handleRe   = regexp.MustCompile(`^(?:@|(?:https?://)?t\.me/)?(\w{5,32})$`)

	priceRe  = regexp.MustCompile(`^(\d+)(?:\s*-\s*(\d+))?\s*(.*)$`)
	tagSplit = regexp.MustCompile(`[,،]`)
	linkRe   = regexp.MustCompile(`(?:https?://)?[\w.-]+\.[a-zA-Z]{2,}(?:/\S*)?`)
	schemeRe = regexp.MustCompile(`^https?://`)
)

// Sanitize trims, collapses internal whitespace, strips zero-width characters
// and hard-caps the length. Applied to every free-text input before
// field-specific checks.
func Sanitize(s string) string {
	s = zeroWidthRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxInputLen {
		s = string(runes[:maxInputLen])
	}
	return s
}

// Title validates a post title.
func Title(input string, lim Limits) (string, error) {
	s := Sanitize(input)
	if len([]rune(s)) < 3 {
		return "", errors.New("הכותרת קצרה מדי. נסו שוב עם לפחות 3 תווים:")
	}
	if len([]rune(s)) > lim.MaxTitle {
		return "", fmt.Errorf("הכותרת ארוכה מדי (מקסימום %d תווים). נסו שוב:", lim.MaxTitle)
	}
	return s, nil
}

// Description validates a post description.
func Description(input string, lim Limits) (string, error) {
	s := Sanitize(input)
	if len([]rune(s)) < 10 {
		return "", errors.New("התיאור קצר מדי. ספרו קצת יותר (לפחות 10 תווים):")
	}
	if len([]rune(s)) > lim.MaxDescription {
		return "", fmt.Errorf("התיאור ארוך מדי (מקסימום %d תווים). נסו שוב:", lim.MaxDescription)
	}
	return s, nil
}

// skip words that mean "no price range".
func isSkip(s string) bool {
	switch strings.ToLower(s) {
	case "", "דלג", "skip", "-":
		return true
	}
	return false
}

func normalizeCurrency(c string) string {
	c = strings.TrimSpace(c)
	switch strings.ToLower(c) {
	case "", "שקל", "שקלים", "₪", "שח", `ש"ח`, "ש״ח":
		return "ש״ח"
	case "dollar", "dollars", "$", "דולר", "דולרים":
		return "$"
	}
	return c
}

// PriceRange parses a price-range input. It returns ("", nil) when the user
// skipped the field.
func PriceRange(input string) (string, error) {
	s := Sanitize(input)
	if isSkip(s) {
		return "", nil
	}

	m := priceRe.FindStringSubmatch(s)
	if m == nil {
		return "", errors.New("לא הצלחתי להבין את טווח המחירים. נסו למשל: 100-500 או 100:")
	}

	min, err := strconv.Atoi(m[1])
	if err != nil {
		return "", errors.New("לא הצלחתי להבין את טווח המחירים. נסו למשל: 100-500 או 100:")
	}
	currency := normalizeCurrency(m[3])

	if m[2] == "" {
		return fmt.Sprintf("%d+ %s", min, currency), nil
	}
	max, err := strconv.Atoi(m[2])
	if err != nil {
		return "", errors.New("לא הצלחתי להבין את טווח המחירים. נסו למשל: 100-500 או 100:")
	}
	if min > max {
		return "", errors.New("המחיר המינימלי גבוה מהמקסימלי. נסו שוב:")
	}
	return fmt.Sprintf("%d-%d %s", min, max, currency), nil
}

// ContactInfo classifies and normalizes contact details: email, Israeli phone
// number, Telegram handle, or free text of at least 5 characters.
func ContactInfo(input string) (string, error) {
	s := Sanitize(input)
	if s == "" {
		return "", errors.New("פרטי הקשר ריקים. נסו שוב:")
	}

	if emailRe.MatchString(s) {
		return strings.ToLower(s), nil
	}

	if digits := phoneSepRe.ReplaceAllString(s, ""); phoneRe.MatchString(digits) {
		m := phoneRe.FindStringSubmatch(digits)
		if m[1] == "+972" {
			return fmt.Sprintf("+972-%s-%s", m[2], m[3]), nil
		}
		return fmt.Sprintf("0%s-%s", m[2], m[3]), nil
	}

	if m := handleRe.FindStringSubmatch(s); m != nil {
		return "@" + m[1], nil
	}

	if len([]rune(s)) < 5 {
		return "", errors.New("פרטי הקשר קצרים מדי. כתבו טלפון, אימייל, יוזר בטלגרם או הסבר קצר:")
	}
	return s, nil
}

// Tags splits tag input on commas (Latin or Arabic), sanitizes each entry,
// drops empties and overlong entries, lower-cases and caps the count. Order
// is preserved. A skip word yields no tags.
func Tags(input string, lim Limits) []string {
	s := Sanitize(input)
	if isSkip(s) {
		return nil
	}

	var tags []string
	for _, part := range tagSplit.Split(s, -1) {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" || len([]rune(tag)) > maxTagLen {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == lim.MaxTags {
			break
		}
	}
	return tags
}

// Links extracts up to 5 portfolio URLs. Schemeless entries get an https://
// prefix; anything that still fails to parse is dropped. A skip word yields
// no links.
func Links(input string) []string {
	s := Sanitize(input)
	if isSkip(s) {
		return nil
	}

	var links []string
	for _, raw := range linkRe.FindAllString(s, -1) {
		link := raw
		if !schemeRe.MatchString(link) {
			link = "https://" + link
		}
		u, err := url.Parse(link)
		if err != nil || u.Host == "" {
			continue
		}
		links = append(links, link)
		if len(links) == maxLinkCount {
			break
		}
	}
	return links
}

// Func validates a raw input and returns the value in its stored form.
type Func func(input string, lim Limits) (string, error)

// Registry maps editable field names to their validators. The creation flow
// and the edit flow share this single copy, so a rule change applies to both.
var Registry = map[string]Func{
	"title":       Title,
	"description": Description,
	"pricing": func(input string, _ Limits) (string, error) {
		if !domain.ValidPricingMode(domain.PricingMode(input)) {
			return "", errors.New("אפשרות תמחור לא מוכרת. בחרו מהכפתורים:")
		}
		return input, nil
	},
	"tags": func(input string, lim Limits) (string, error) {
		tags := Tags(input, lim)
		if tags == nil {
			tags = []string{}
		}
		b, err := json.Marshal(tags)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
	"links": func(input string, _ Limits) (string, error) {
		return strings.Join(Links(input), "\n"), nil
	},
	"contact": func(input string, _ Limits) (string, error) {
		return ContactInfo(input)
	},
}
