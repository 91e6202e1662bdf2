package quotes

import "github.com/shopspring/decimal"

// DefaultMarkupTiers are applied when no tiers are configured.
var DefaultMarkupTiers = []decimal.Decimal{
	decimal.RequireFromString("0.15"),
	decimal.RequireFromString("0.20"),
	decimal.RequireFromString("0.25"),
}

// RecommendationTier is a suggested bid price at one markup over the lowest quote.
type RecommendationTier struct {
	Markup decimal.Decimal `json:"markup"`
	Label  string          `json:"label"`
	Price  decimal.Decimal `json:"price"`
}

// ComputeBidRecommendation returns lowest*(1+tier) for each tier, in the order
// given. No tiers means DefaultMarkupTiers.
func ComputeBidRecommendation(lowest decimal.Decimal, tiers ...decimal.Decimal) []RecommendationTier {
	if len(tiers) == 0 {
		tiers = DefaultMarkupTiers
	}
	out := make([]RecommendationTier, len(tiers))
	for i, tier := range tiers {
		out[i] = RecommendationTier{
			Markup: tier,
			Label:  tier.Mul(hundred).String() + "%",
			Price:  lowest.Mul(decimal.NewFromInt(1).Add(tier)),
		}
	}
	return out
}
