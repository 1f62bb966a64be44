package farm

type colorPair struct{ a, b Color }

// offspring holds the coat of a calf for mixed parents. Pairs are stored
// with a <= b.
var offspring = map[colorPair]Color{
	{ColorBrown, ColorWhite}:   ColorSpotted,
	{ColorBlack, ColorWhite}:   ColorSpotted,
	{ColorBlack, ColorBrown}:   ColorBrown,
	{ColorBrown, ColorSpotted}: ColorGolden,
	{ColorSpotted, ColorWhite}: ColorWhite,
	{ColorBlack, ColorSpotted}: ColorBlack,
	{ColorGolden, ColorWhite}:  ColorGolden,
}

// OffspringColor returns the coat of a calf of parents a and b. Parents of
// the same coat pass it on; unlisted mixes take the first coat in
// alphabetical order.
func OffspringColor(a, b Color) Color {
	if a == b {
		return a
	}
	if b < a {
		a, b = b, a
	}
	if c, ok := offspring[colorPair{a, b}]; ok {
		return c
	}
	return a
}
