package types

// FilterCriteria selects playgrounds. Every field is independently optional;
// the zero value of each field is its no-op sentinel and all present criteria
// combine with logical AND.
type FilterCriteria struct {
	// Borough filters by the prop-ID-derived borough. "" and "All" are
	// no-ops.
	Borough string

	// Accessible filters by the normalized tri-state value (Yes, No,
	// Limited, Unknown). "" and "All" are no-ops.
	Accessible string

	// Sensory, when non-nil, matches against the sensory-friendly flag.
	Sensory *bool

	// HasBathroom, when non-nil, matches playgrounds with any recorded
	// bathroom ("Any" sub-flag).
	HasBathroom *bool

	// HasAccessibleBathroom, when non-nil, matches playgrounds with a fully
	// accessible bathroom.
	HasAccessibleBathroom *bool

	// HasSprinkler, when non-nil, matches against the sprinkler flag.
	// Records whose flag is unpopulated never match true.
	HasSprinkler *bool
}

// ExtendedCriteria selects playgrounds by generation-2 attributes. Zero
// values are no-ops; a nil age bound is unconstrained.
type ExtendedCriteria struct {
	Shade     string
	Fenced    string
	WaterPlay string

	// MinStars, when non-nil, requires a star rating of at least this value.
	// Unrated playgrounds never match.
	MinStars *float64

	// AgeMin/AgeMax select playgrounds whose age range overlaps
	// [AgeMin, AgeMax]. A record bound of nil is treated as unconstrained
	// on that side.
	AgeMin *int
	AgeMax *int
}

// Stats summarizes the playground collection. Percentages are rounded to the
// nearest integer and are 0 when the collection is empty.
type Stats struct {
	Total             int `json:"total"`
	Accessible        int `json:"accessible"`
	SensoryFriendly   int `json:"sensory_friendly"`
	AccessiblePercent int `json:"accessible_percent"`
	SensoryPercent    int `json:"sensory_percent"`
}

// ReviewStats summarizes the review collection. AverageRating is computed
// over approved reviews only, rounded to one decimal place, and 0 when there
// are no approved reviews.
type ReviewStats struct {
	Total         int     `json:"total"`
	Approved      int     `json:"approved"`
	Featured      int     `json:"featured"`
	Pending       int     `json:"pending"`
	AverageRating float64 `json:"average_rating"`
}

// PlaygroundStats extends Stats with the cross-collection review derivation.
type PlaygroundStats struct {
	Stats
	WithReviews        int `json:"with_reviews"`
	WithReviewsPercent int `json:"with_reviews_percent"`
}
