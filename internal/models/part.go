package models

// Price is one vendor's price breakdown. Fields are pointers because
// pages frequently omit individual components; a nil Total means no
// usable price was shown at all.
type Price struct {
	Base      *float64 `json:"base,omitempty"`
	Discounts *float64 `json:"discounts,omitempty"`
	Shipping  *float64 `json:"shipping,omitempty"`
	Tax       *float64 `json:"tax,omitempty"`
	Total     *float64 `json:"total,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

type Vendor struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
	InStock bool   `json:"in_stock"`
	Price   Price  `json:"price"`
	BuyURL  string `json:"buy_url"`
}

// Rating aggregates the star widget and the "(N Ratings, X Average)"
// fragment next to it. Stars is a float because of half-star glyphs.
type Rating struct {
	Stars   float64 `json:"stars"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

type User struct {
	Username   string `json:"username"`
	AvatarURL  string `json:"avatar_url"`
	ProfileURL string `json:"profile_url"`
}

type Review struct {
	Author    User   `json:"author"`
	Points    int    `json:"points"`
	Stars     int    `json:"stars"`
	CreatedAt string `json:"created_at"`
	Content   string `json:"content"`
	BuildName string `json:"build_name,omitempty"`
	BuildURL  string `json:"build_url,omitempty"`
}

// Spec is one entry of a product's specification sidebar. Specs are a
// slice rather than a map so their page order survives JSON encoding.
type Spec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Part struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	ImageURLs     []string `json:"image_urls,omitempty"`
	URL           string   `json:"url,omitempty"`
	CheapestPrice *Price   `json:"cheapest_price,omitempty"`
	InStock       bool     `json:"in_stock"`
	Vendors       []Vendor `json:"vendors,omitempty"`
	Rating        *Rating  `json:"rating,omitempty"`
	Specs         []Spec   `json:"specs,omitempty"`
	Reviews       []Review `json:"reviews,omitempty"`
}

type PartList struct {
	Parts            []Part   `json:"parts"`
	URL              string   `json:"url"`
	EstimatedWattage float64  `json:"estimated_wattage"`
	TotalPrice       float64  `json:"total_price"`
	Currency         string   `json:"currency,omitempty"`
	// CompatibilityNotes are the site's note and warning messages for
	// the build, with their "Note:"/"Warning!" labels stripped.
	CompatibilityNotes []string `json:"compatibility_notes,omitempty"`
}

type PartSearchResult struct {
	Parts      []Part `json:"parts"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

type PartReviewsResult struct {
	Reviews    []Review `json:"reviews"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
}

// Float64 returns a pointer to v, for filling optional price fields.
func Float64(v float64) *float64 {
	return &v
}
