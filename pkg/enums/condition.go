package enums

import "fmt"

// Condition grades the physical state of an owned card.
type Condition string

const (
	ConditionNearMint         Condition = "NM"
	ConditionLightlyPlayed    Condition = "LP"
	ConditionModeratelyPlayed Condition = "MP"
	ConditionHeavilyPlayed    Condition = "HP"
	ConditionDamaged          Condition = "DMG"
)

var validConditions = []Condition{
	ConditionNearMint,
	ConditionLightlyPlayed,
	ConditionModeratelyPlayed,
	ConditionHeavilyPlayed,
	ConditionDamaged,
}

// String implements fmt.Stringer.
func (c Condition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Condition.
func (c Condition) IsValid() bool {
	for _, candidate := range validConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCondition converts raw input into a Condition.
func ParseCondition(value string) (Condition, error) {
	c := Condition(value)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid condition %q", value)
	}
	return c, nil
}
