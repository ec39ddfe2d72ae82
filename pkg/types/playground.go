package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Normalized accessibility values. Source data carries free-text variants
// ("Wheelchair Accessible", "Not Accessible", ...); NormalizeAccessibility
// folds them into this tri-state plus Unknown.
const (
	AccessibleYes     = "Yes"
	AccessibleNo      = "No"
	AccessibleLimited = "Limited"
	AccessibleUnknown = "Unknown"
)

// LatestSchemaVersion is the current record generation. Every record carries
// the generation of the last defaulting pass applied to it; after a successful
// migration pass all records are at this generation.
const LatestSchemaVersion = 2

// Sentinel criteria value accepted as a no-op for string filters.
const FilterAll = "All"

// boroughByPrefix maps the first character of a prop ID to its borough.
var boroughByPrefix = map[byte]string{
	'B': "Brooklyn",
	'M': "Manhattan",
	'Q': "Queens",
	'R': "Staten Island",
	'X': "Bronx",
}

// BoroughForPropID derives the borough from the prop ID prefix.
// Unmapped or empty prefixes yield "Unknown".
func BoroughForPropID(propID string) string {
	if propID == "" {
		return "Unknown"
	}
	if b, ok := boroughByPrefix[propID[0]]; ok {
		return b
	}
	return "Unknown"
}

// NormalizeAccessibility folds a free-text accessibility value into the
// tri-state. Matching is a case-insensitive substring check; values that
// match nothing pass through unchanged, and empty input yields Unknown.
func NormalizeAccessibility(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return AccessibleUnknown
	}
	switch {
	case strings.Contains(s, "limited"):
		return AccessibleLimited
	case strings.Contains(s, "not"):
		return AccessibleNo
	case strings.Contains(s, "yes"), strings.Contains(s, "accessible"):
		return AccessibleYes
	case strings.Contains(s, "no"):
		return AccessibleNo
	}
	return raw
}

// IsFlagYes reports whether a Y/N-style flag value means yes.
// Comparison is case-insensitive; "Y" and "Yes" both count.
func IsFlagYes(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, "y") || strings.EqualFold(s, "yes")
}

// Coord is a latitude or longitude value. Source datasets sometimes encode
// coordinates as strings; Coord decodes either form, and unparseable values
// decode to NaN so Validate can flag them instead of the decoder failing.
type Coord float64

// UnmarshalJSON implements defensive numeric parsing for Coord.
func (c *Coord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*c = Coord(math.NaN())
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*c = Coord(math.NaN())
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*c = Coord(math.NaN())
			return nil
		}
		*c = Coord(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*c = Coord(math.NaN())
		return nil
	}
	*c = Coord(f)
	return nil
}

// MarshalJSON renders NaN coordinates as null so exports stay valid JSON.
func (c Coord) MarshalJSON() ([]byte, error) {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Valid reports whether the coordinate carries a parseable numeric value.
func (c Coord) Valid() bool {
	f := float64(c)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// AgeRange bounds the intended user age for a playground. Nil bounds are
// unknown, and during searches a nil bound is treated as unconstrained.
type AgeRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Novelty records whether a playground has a stand-out feature.
type Novelty struct {
	HasNovelty *bool   `json:"has_novelty"`
	Notes      *string `json:"notes"`
}

// AccessInfo holds the ADA-related extended attributes.
type AccessInfo struct {
	ADAPaths       *bool   `json:"ada_paths"`
	AdaptiveSwings *bool   `json:"adaptive_swings"`
	Notes          *string `json:"notes"`
}

// Transit describes the nearest transit stop.
type Transit struct {
	NearestStop *string `json:"nearest_stop"`
	WalkMinutes *int    `json:"walk_minutes"`
}

// Safety holds caregiver line-of-sight information.
type Safety struct {
	LineOfSight string `json:"line_of_sight"`
}

// Extended is the generation-2 attribute block. String attributes default to
// "unknown" and pointer attributes to nil; FillDefaults guarantees every field
// is populated on stored records.
type Extended struct {
	AgeRange         AgeRange   `json:"age_range"`
	Novelty          Novelty    `json:"novelty"`
	Shade            string     `json:"shade"`
	Fenced           string     `json:"fenced"`
	Star             *float64   `json:"star"`
	Surface          string     `json:"surface"`
	WaterPlay        string     `json:"water_play"`
	Bathroom         string     `json:"bathroom"`
	DrinkingFountain string     `json:"drinking_fountain"`
	Seating          string     `json:"seating"`
	CrowdLevel       string     `json:"crowd_level"`
	Accessibility    AccessInfo `json:"accessibility"`
	StrollerFriendly string     `json:"stroller_friendly"`
	Transit          Transit    `json:"transit"`
	Safety           Safety     `json:"safety"`
	Maintenance      string     `json:"maintenance"`
	LastVerified     *string    `json:"last_verified"`
	Sources          []string   `json:"sources"`
	EditorNotes      *string    `json:"editor_notes"`

	// Sprinkler enrichment from the dataset merge pipeline. HasSprinkler is
	// the designated verification field for the content-drift detector.
	HasSprinkler      *bool   `json:"has_sprinkler"`
	SprinklerStatus   *string `json:"sprinkler_status"`
	SprinklerSystem   *string `json:"sprinkler_system"`
	SprinklerDistrict *string `json:"sprinkler_district"`
}

// attributeUnknown is the sentinel default for string-valued extended fields.
const attributeUnknown = "unknown"

// NewExtended returns the full generation-2 default set.
func NewExtended() Extended {
	e := Extended{}
	e.FillDefaults()
	return e
}

// FillDefaults backfills every unset string attribute with "unknown" and
// ensures the sources list is present. Fields that already carry a value are
// never overwritten; pointer fields default to nil, which counts as set.
func (e *Extended) FillDefaults() {
	fill := func(s *string) {
		if *s == "" {
			*s = attributeUnknown
		}
	}
	fill(&e.Shade)
	fill(&e.Fenced)
	fill(&e.Surface)
	fill(&e.WaterPlay)
	fill(&e.Bathroom)
	fill(&e.DrinkingFountain)
	fill(&e.Seating)
	fill(&e.CrowdLevel)
	fill(&e.StrollerFriendly)
	fill(&e.Safety.LineOfSight)
	fill(&e.Maintenance)
	if e.Sources == nil {
		e.Sources = []string{}
	}
}

// Playground is the root entity: one record per physical playground.
// Extended is embedded so its attributes marshal at the top level of the
// record, matching the snapshot format.
type Playground struct {
	ID              string `json:"id"`
	PropID          string `json:"prop_id"`
	PlaygroundID    string `json:"playground_id"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	Accessible      string `json:"accessible"`
	SensoryFriendly string `json:"sensory_friendly"`
	Lat             Coord  `json:"lat"`
	Lon             Coord  `json:"lon"`
	Slug            string `json:"slug,omitempty"`

	Extended

	AddedDate     string `json:"added_date"`
	AddedBy       string `json:"added_by"`
	ModifiedDate  string `json:"modified_date,omitempty"`
	ModifiedBy    string `json:"modified_by,omitempty"`
	SchemaVersion int    `json:"schema_version"`
}

// Borough derives the playground's borough from its prop ID prefix.
func (p *Playground) Borough() string {
	return BoroughForPropID(p.PropID)
}

// NormalizedAccessible returns the tri-state accessibility value.
func (p *Playground) NormalizedAccessible() string {
	return NormalizeAccessibility(p.Accessible)
}

// IsSensoryFriendly reports whether the sensory flag means yes.
func (p *Playground) IsSensoryFriendly() bool {
	return IsFlagYes(p.SensoryFriendly)
}

// HasBathroom reports whether any bathroom is recorded.
func (p *Playground) HasBathroom() bool {
	b := strings.ToLower(p.Bathroom)
	return b != "" && b != attributeUnknown && b != "none" && b != "no"
}

// HasAccessibleBathroom reports whether a fully accessible bathroom is
// recorded.
func (p *Playground) HasAccessibleBathroom() bool {
	return strings.Contains(strings.ToLower(p.Bathroom), "accessible")
}

// SourcePlayground is one record of the external input dataset, in the city
// open-data shape. The sprinkler fields are present only after the merge
// pipeline has run.
type SourcePlayground struct {
	PropID          string `json:"Prop_ID"`
	PlaygroundID    string `json:"Playground_ID,omitempty"`
	Name            string `json:"Name"`
	Location        string `json:"Location"`
	Accessible      string `json:"Accessible"`
	SensoryFriendly string `json:"Sensory_Friendly"`
	Lat             Coord  `json:"lat"`
	Lon             Coord  `json:"lon"`

	HasSprinkler      *bool   `json:"has_sprinkler,omitempty"`
	SprinklerStatus   *string `json:"sprinkler_status,omitempty"`
	SprinklerSystem   *string `json:"sprinkler_system,omitempty"`
	SprinklerDistrict *string `json:"sprinkler_district,omitempty"`
}
