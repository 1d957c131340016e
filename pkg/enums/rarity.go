package enums

// Rarity represents the printed rarity of a card.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic"
)

// String implements fmt.Stringer.
func (r Rarity) String() string {
	return string(r)
}

// RarityOrdinal maps a raw rarity string to its sort ordinal. Anything
// outside the four printed rarities ranks below common.
func RarityOrdinal(value string) int {
	switch Rarity(value) {
	case RarityMythic:
		return 4
	case RarityRare:
		return 3
	case RarityUncommon:
		return 2
	case RarityCommon:
		return 1
	default:
		return 0
	}
}
