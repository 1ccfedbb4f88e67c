package domain

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		name   string
		charge float64
		want   BatteryTier
	}{
		{"full charge", 100, TierHigh},
		{"just above high boundary", 61, TierHigh},
		{"high boundary is medium", 60, TierMedium},
		{"mid charge", 45, TierMedium},
		{"medium boundary is low", 30, TierLow},
		{"low charge", 10, TierLow},
		{"empty", 0, TierLow},
		{"negative reads as low", -5, TierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TierFor(tt.charge); got != tt.want {
				t.Errorf("TierFor(%v) = %v, want %v", tt.charge, got, tt.want)
			}
		})
	}
}

func TestTierColor(t *testing.T) {
	tests := []struct {
		tier BatteryTier
		want string
	}{
		{TierHigh, "#059669"},
		{TierMedium, "#f59e0b"},
		{TierLow, "#dc2626"},
	}

	for _, tt := range tests {
		if got := tt.tier.Color(); got != tt.want {
			t.Errorf("%v.Color() = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

func TestBatteryIcon(t *testing.T) {
	tests := []struct {
		charge float64
		want   string
	}{
		{100, "battery-full"},
		{61, "battery-full"},
		{60, "battery-half"},
		{31, "battery-half"},
		{30, "battery-quarter"},
		{11, "battery-quarter"},
		{10, "battery-empty"},
		{0, "battery-empty"},
	}

	for _, tt := range tests {
		if got := BatteryIcon(tt.charge); got != tt.want {
			t.Errorf("BatteryIcon(%v) = %q, want %q", tt.charge, got, tt.want)
		}
	}
}
