package farm

import "time"

// CowState is where a cow is in its feed/milk cycle.
type CowState string

const (
	CowHungry    CowState = "hungry"
	CowProducing CowState = "producing"
	CowFull      CowState = "full"
)

// Color is a cow's coat. It decides which milk the cow gives.
type Color string

const (
	ColorWhite   Color = "white"
	ColorBrown   Color = "brown"
	ColorBlack   Color = "black"
	ColorSpotted Color = "spotted"
	ColorGolden  Color = "golden"
)

// Colors lists every coat in catalog order.
var Colors = []Color{ColorWhite, ColorBrown, ColorBlack, ColorSpotted, ColorGolden}

// Point is a position on the pasture in screen pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cow is one animal in the herd.
type Cow struct {
	ID          string     `json:"id"`
	Color       Color      `json:"color"`
	State       CowState   `json:"state"`
	Fullness    float64    `json:"fullness"`
	Position    Point      `json:"position"`
	FacingRight bool       `json:"facingRight"`
	LastFedAt   *time.Time `json:"lastFedAt"`
	LastBredAt  time.Time  `json:"lastBredAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewCow returns a hungry cow created at now.
func NewCow(id string, color Color, pos Point, now time.Time) Cow {
	return Cow{
		ID:          id,
		Color:       color,
		State:       CowHungry,
		Position:    pos,
		FacingRight: true,
		CreatedAt:   now,
	}
}

// MilkItem is the inventory item a cow of the given color produces.
func MilkItem(c Color) string { return "milk:" + string(c) }
