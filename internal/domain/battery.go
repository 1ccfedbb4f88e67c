package domain

// BatteryTier classifies a charge percentage into the three-level scheme
// used for segment coloring, the live form indicator, and the arrival
// battery readout.
type BatteryTier int

const (
	TierLow    BatteryTier = iota // charge <= 30
	TierMedium                    // 30 < charge <= 60
	TierHigh                      // charge > 60
)

// TierFor maps a charge percentage to its tier. Boundaries are exclusive:
// 60 is medium, 61 is high; 30 is low, 31 is medium.
func TierFor(charge float64) BatteryTier {
	switch {
	case charge > 60:
		return TierHigh
	case charge > 30:
		return TierMedium
	default:
		return TierLow
	}
}

// Color returns the tier's hex color: green, amber, red.
func (t BatteryTier) Color() string {
	switch t {
	case TierHigh:
		return "#059669"
	case TierMedium:
		return "#f59e0b"
	default:
		return "#dc2626"
	}
}

// ClassName returns the tier's presentation class name.
func (t BatteryTier) ClassName() string {
	switch t {
	case TierHigh:
		return "battery-high"
	case TierMedium:
		return "battery-medium"
	default:
		return "battery-low"
	}
}

func (t BatteryTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	default:
		return "low"
	}
}

// BatteryIcon selects the indicator glyph name. The icon scale subdivides
// the low tier at 10% so a nearly dead battery reads as empty; the 60 and
// 30 boundaries line up with TierFor.
func BatteryIcon(charge float64) string {
	switch {
	case charge > 60:
		return "battery-full"
	case charge > 30:
		return "battery-half"
	case charge > 10:
		return "battery-quarter"
	default:
		return "battery-empty"
	}
}
