package game

// Tier is the badge earned by a percentile.
type Tier string

const (
	TierDiamond Tier = "diamond"
	TierGold    Tier = "gold"
	TierSilver  Tier = "silver"
	TierBronze  Tier = "bronze"
	TierIron    Tier = "iron"
)

// Percentile thresholds for each tier. Diamond requires a perfect 100.
const (
	thresholdDiamond = 100
	thresholdGold    = 90
	thresholdSilver  = 75
	thresholdBronze  = 50
)

// TierFor maps a percentile in [0,100] to its tier.
func TierFor(percentile float64) Tier {
	switch {
	case percentile >= thresholdDiamond:
		return TierDiamond
	case percentile >= thresholdGold:
		return TierGold
	case percentile >= thresholdSilver:
		return TierSilver
	case percentile >= thresholdBronze:
		return TierBronze
	default:
		return TierIron
	}
}

// tierSymbols are the fixed-width share symbols, one rune per row.
var tierSymbols = map[Tier]string{
	TierDiamond: "🟦",
	TierGold:    "🟨",
	TierSilver:  "⬜",
	TierBronze:  "🟫",
	TierIron:    "⬛",
}

// tierColors are the UI hex colors for each tier badge.
var tierColors = map[Tier]string{
	TierDiamond: "#3B82F6",
	TierGold:    "#F59E0B",
	TierSilver:  "#9CA3AF",
	TierBronze:  "#CD7F32",
	TierIron:    "#374151",
}

// Symbol returns the share-line symbol for the tier.
func (t Tier) Symbol() string {
	if s, ok := tierSymbols[t]; ok {
		return s
	}
	return tierSymbols[TierIron]
}

// Color returns the UI hex color for the tier.
func (t Tier) Color() string {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return tierColors[TierIron]
}
