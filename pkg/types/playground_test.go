package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAccessibility(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain yes", raw: "Yes", want: AccessibleYes},
		{name: "lowercase yes", raw: "yes", want: AccessibleYes},
		{name: "uppercase yes", raw: "YES", want: AccessibleYes},
		{name: "wheelchair accessible", raw: "Wheelchair Accessible", want: AccessibleYes},
		{name: "plain no", raw: "No", want: AccessibleNo},
		{name: "not accessible wins over accessible substring", raw: "Not Accessible", want: AccessibleNo},
		{name: "limited", raw: "Limited", want: AccessibleLimited},
		{name: "limited accessibility", raw: "Limited Accessibility", want: AccessibleLimited},
		{name: "empty is unknown", raw: "", want: AccessibleUnknown},
		{name: "whitespace is unknown", raw: "   ", want: AccessibleUnknown},
		{name: "unrecognized passes through", raw: "TBD", want: "TBD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAccessibility(tt.raw))
		})
	}
}

func TestBoroughForPropID(t *testing.T) {
	tests := []struct {
		propID string
		want   string
	}{
		{propID: "B001", want: "Brooklyn"},
		{propID: "M123-A", want: "Manhattan"},
		{propID: "Q456", want: "Queens"},
		{propID: "R042", want: "Staten Island"},
		{propID: "X210", want: "Bronx"},
		{propID: "Z999", want: "Unknown"},
		{propID: "", want: "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BoroughForPropID(tt.propID), "propID=%q", tt.propID)
	}
}

func TestIsFlagYes(t *testing.T) {
	assert.True(t, IsFlagYes("Y"))
	assert.True(t, IsFlagYes("y"))
	assert.True(t, IsFlagYes("Yes"))
	assert.True(t, IsFlagYes(" yes "))
	assert.False(t, IsFlagYes("N"))
	assert.False(t, IsFlagYes("No"))
	assert.False(t, IsFlagYes(""))
	assert.False(t, IsFlagYes("yeah"))
}

func TestCoordUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantNaN bool
	}{
		{name: "number", input: `40.7128`, want: 40.7128},
		{name: "negative number", input: `-73.9`, want: -73.9},
		{name: "string number", input: `"40.7128"`, want: 40.7128},
		{name: "string with spaces", input: `" -73.9 "`, want: -73.9},
		{name: "null", input: `null`, wantNaN: true},
		{name: "garbage string", input: `"n/a"`, wantNaN: true},
		{name: "empty string", input: `""`, wantNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Coord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &c))
			if tt.wantNaN {
				assert.True(t, math.IsNaN(float64(c)))
				assert.False(t, c.Valid())
			} else {
				assert.InDelta(t, tt.want, float64(c), 1e-9)
				assert.True(t, c.Valid())
			}
		})
	}
}

func TestCoordMarshalNaN(t *testing.T) {
	data, err := json.Marshal(Coord(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(Coord(40.5))
	require.NoError(t, err)
	assert.Equal(t, "40.5", string(data))
}

func TestExtendedFillDefaults(t *testing.T) {
	e := Extended{Shade: "full"}
	e.FillDefaults()

	assert.Equal(t, "full", e.Shade, "existing values must survive")
	assert.Equal(t, "unknown", e.Fenced)
	assert.Equal(t, "unknown", e.Surface)
	assert.Equal(t, "unknown", e.WaterPlay)
	assert.Equal(t, "unknown", e.Bathroom)
	assert.Equal(t, "unknown", e.DrinkingFountain)
	assert.Equal(t, "unknown", e.Seating)
	assert.Equal(t, "unknown", e.CrowdLevel)
	assert.Equal(t, "unknown", e.StrollerFriendly)
	assert.Equal(t, "unknown", e.Safety.LineOfSight)
	assert.Equal(t, "unknown", e.Maintenance)
	assert.NotNil(t, e.Sources)
	assert.Nil(t, e.Star, "pointer fields stay nil")
	assert.Nil(t, e.HasSprinkler)
}

func TestExtendedMarshalsFlat(t *testing.T) {
	p := Playground{
		PropID: "B001",
		Name:   "Test Playground",
	}
	p.Extended = NewExtended()

	data, err := json.Marshal(&p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	// Generation-2 attributes appear at the top level, not nested.
	assert.Contains(t, raw, "shade")
	assert.Contains(t, raw, "bathroom")
	assert.Contains(t, raw, "age_range")
	assert.NotContains(t, raw, "extended")
}

func TestPlaygroundHelpers(t *testing.T) {
	p := Playground{
		PropID:          "Q123",
		Accessible:      "Wheelchair Accessible",
		SensoryFriendly: "Y",
	}
	p.Bathroom = "accessible bathroom on site"

	assert.Equal(t, "Queens", p.Borough())
	assert.Equal(t, AccessibleYes, p.NormalizedAccessible())
	assert.True(t, p.IsSensoryFriendly())
	assert.True(t, p.HasBathroom())
	assert.True(t, p.HasAccessibleBathroom())

	p.Bathroom = "unknown"
	assert.False(t, p.HasBathroom())
	assert.False(t, p.HasAccessibleBathroom())

	p.Bathroom = "portable"
	assert.True(t, p.HasBathroom())
	assert.False(t, p.HasAccessibleBathroom())
}

func TestSourcePlaygroundDecoding(t *testing.T) {
	data := []byte(`{
		"Prop_ID": "M042",
		"Name": "Heckscher Playground",
		"Location": "Central Park",
		"Accessible": "Yes",
		"Sensory_Friendly": "N",
		"lat": "40.7689",
		"lon": -73.9773
	}`)

	var src SourcePlayground
	require.NoError(t, json.Unmarshal(data, &src))

	assert.Equal(t, "M042", src.PropID)
	assert.Equal(t, "Heckscher Playground", src.Name)
	assert.InDelta(t, 40.7689, float64(src.Lat), 1e-9)
	assert.InDelta(t, -73.9773, float64(src.Lon), 1e-9)
	assert.Nil(t, src.HasSprinkler)
}
