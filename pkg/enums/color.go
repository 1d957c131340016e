package enums

// Color is a single mana color symbol. ColorColorless ("C") is not a color on
// cards but serves as the bucket for cards with no colors.
type Color string

const (
	ColorWhite     Color = "W"
	ColorBlue      Color = "U"
	ColorBlack     Color = "B"
	ColorRed       Color = "R"
	ColorGreen     Color = "G"
	ColorColorless Color = "C"
)

// ColorBuckets lists the six statistics buckets in canonical WUBRG+C order.
var ColorBuckets = []Color{
	ColorWhite,
	ColorBlue,
	ColorBlack,
	ColorRed,
	ColorGreen,
	ColorColorless,
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return string(c)
}
