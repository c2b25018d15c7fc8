package tiers

// Tier represents a subscription level on the Mingus platform.
type Tier string

const (
	TierFree       Tier = "free"
	TierBasic      Tier = "basic"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

// order lists the tiers from lowest to highest. Gating decisions compare
// positions in this list.
var order = []Tier{TierFree, TierBasic, TierPremium, TierEnterprise}

// Index returns the position of t in the tier order, or -1 for an
// unrecognised tier. An unknown tier therefore ranks below every minimum.
func Index(t Tier) int {
	for i, tier := range order {
		if tier == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the recognised tiers.
func Valid(t Tier) bool {
	return Index(t) >= 0
}

// Meets reports whether the current tier satisfies the given minimum.
// Unrecognised current tiers never pass, regardless of the minimum.
func Meets(current, minimum Tier) bool {
	currentIdx := Index(current)
	if currentIdx < 0 {
		return false
	}
	return currentIdx >= Index(minimum)
}
