package types

// Favorite marks a playground as a user favorite. PlaygroundRef holds the
// playground's surrogate id and is a weak reference: deleting the playground
// leaves the favorite behind unless Config.CascadeFavorites is set. Nothing
// enforces one favorite per playground; readers must tolerate duplicates.
type Favorite struct {
	FavoriteID    string `json:"favorite_id"`
	PlaygroundRef string `json:"playground_ref"`
	AddedDate     string `json:"added_date"`
}
