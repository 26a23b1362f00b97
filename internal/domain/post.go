package domain

import "time"

// PricingMode is how the author wants to be compensated.
type PricingMode string

const (
	PricingBarter  PricingMode = "barter"
	PricingPayment PricingMode = "payment"
	PricingBoth    PricingMode = "both"
	PricingFree    PricingMode = "free"
)

// ValidPricingMode reports whether m is one of the four known modes.
func ValidPricingMode(m PricingMode) bool {
	switch m {
	case PricingBarter, PricingPayment, PricingBoth, PricingFree:
		return true
	}
	return false
}

// Visibility controls whether a post appears in search and browse.
// Private posts are admin-only test content, reachable by direct id lookup.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Post is a service listing.
type Post struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	PricingMode PricingMode

	// PriceRange is the normalized display form ("100-500 ש״ח"). Empty when
	// the author skipped it.
	PriceRange string

	// PortfolioLinks holds validated URLs, newline separated. Empty when none.
	PortfolioLinks string

	ContactInfo string
	Tags        []string
	Visibility  Visibility

	// IsActive is the owner's on/off switch. Inactive posts are hidden from
	// search and browse but still listed to their owner.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time

	// Owner display fields, joined from the users table on read paths.
	OwnerUsername  string
	OwnerFirstName string
}

// OwnerDisplayName picks the best available name for the post's author.
func (p *Post) OwnerDisplayName() string {
	if p.OwnerFirstName != "" {
		return p.OwnerFirstName
	}
	if p.OwnerUsername != "" {
		return p.OwnerUsername
	}
	return "אנונימי"
}

// User is a chat user. Rows are upserted on every inbound interaction and
// never deleted.
type User struct {
	ID        int64
	Username  string
	FirstName string
	CreatedAt time.Time
}

// SavedPost is a favorites entry joined with its post.
type SavedPost struct {
	Post
	SavedAt time.Time
}

// KeywordAlert is a user's subscription to be notified when a new post
// contains the keyword.
type KeywordAlert struct {
	UserID    int64
	Keyword   string
	CreatedAt time.Time
}

// AlertMatch is a (user, keyword) pair that should be notified about a post.
type AlertMatch struct {
	UserID  int64
	Keyword string
}

// PostQuery is the single paginated query contract shared by keyword search,
// title search, and category browse.
type PostQuery struct {
	// Text is matched against the full-text index (title+description+tags),
	// or against the title only when TitleOnly is set. Empty means a plain
	// listing.
	Text      string
	TitleOnly bool

	// Pricing filters by mode. "barter" and "payment" also match posts with
	// mode "both"; "free" matches only "free". Empty means no filter.
	Pricing PricingMode

	Limit  int
	Offset int
}
