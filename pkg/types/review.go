package types

// Review defaults applied on creation.
const (
	ReviewAuthorAnonymous = "Anonymous"
)

// Review is a user-submitted review of a playground. PlaygroundPropID is a
// weak back-reference by business key; reviews are cascade-deleted with their
// owning playground (the only cascade rule in the store).
type Review struct {
	ReviewID         string  `json:"review_id"`
	PlaygroundPropID string  `json:"playground_prop_id"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	Rating           float64 `json:"rating"`
	Author           string  `json:"author"`
	Date             string  `json:"date"`
	Featured         bool    `json:"featured"`

	// Approved is tri-state on input: nil takes the creation default
	// (approved). Hydrated records always carry a value.
	Approved *bool `json:"approved"`

	// Photos holds ordered photo references. The per-review cap is enforced
	// by the uploading collaborator, not by the store.
	Photos []string `json:"photos"`
}
