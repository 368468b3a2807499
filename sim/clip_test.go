package sim

import (
	"math"
	"testing"
)

func almostEqual(f1 float64, f2 float64) bool {
	return math.Abs(f1-f2) < 1e-9
}

func TestHostingCapacity(t *testing.T) {
	tests := []struct {
		name         string
		netLoadMW    float64
		thermalLimit float64
		expected     float64
	}{
		{"importing feeder", 5, -10, 15},
		{"moderate export", -8, -10, 2},
		{"export beyond the limit", -12, -10, -2},
		{"zero net load", 0, -10, 10},
		{"positive thermal limit", 5, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HostingCapacity(tt.netLoadMW, tt.thermalLimit); !almostEqual(got, tt.expected) {
				t.Errorf("HostingCapacity(%v, %v) = %v, wanted %v", tt.netLoadMW, tt.thermalLimit, got, tt.expected)
			}
		})
	}
}

func TestClipSevenHourScenario(t *testing.T) {
	// Seven hours of net load against a -10 MW limit and a 3 MW plant at
	// full per-unit output. Capacity per hour is [5 2 -2 1 7 12 15].
	netLoad := []float64{-5, -8, -12, -9, -3, 2, 5}
	wantFirm := []float64{3, 2, -2, 1, 3, 3, 3}
	wantCurtailed := []float64{0, 1, 5, 2, 0, 0, 0}

	cfg := PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -10}
	for i, load := range netLoad {
		clip := Clip(1.0, cfg, load)
		if !almostEqual(clip.RawMW, 3) {
			t.Errorf("hour %d: RawMW = %v, wanted 3", i, clip.RawMW)
		}
		if !almostEqual(clip.FirmMW, wantFirm[i]) {
			t.Errorf("hour %d: FirmMW = %v, wanted %v", i, clip.FirmMW, wantFirm[i])
		}
		if !almostEqual(clip.CurtailedMW, wantCurtailed[i]) {
			t.Errorf("hour %d: CurtailedMW = %v, wanted %v", i, clip.CurtailedMW, wantCurtailed[i])
		}
	}
}

func TestClipNegativeFirmOutputIsNotFloored(t *testing.T) {
	// Hosting capacity of -2 MW below a 3 MW raw output yields a negative
	// firm output, never clamped to zero.
	clip := Clip(1.0, PlantConfig{PlantSizeMW: 3, ThermalLimitMW: -10}, -12)
	if !almostEqual(clip.FirmMW, -2) {
		t.Errorf("FirmMW = %v, wanted -2", clip.FirmMW)
	}
	if !almostEqual(clip.CurtailedMW, 5) {
		t.Errorf("CurtailedMW = %v, wanted 5", clip.CurtailedMW)
	}
}

func TestClipZeroPlantSize(t *testing.T) {
	clip := Clip(1.0, PlantConfig{PlantSizeMW: 0, ThermalLimitMW: -10}, 5)
	if clip.RawMW != 0 || clip.FirmMW != 0 || clip.CurtailedMW != 0 {
		t.Errorf("Clip() with zero plant size = %+v, wanted all zeros", clip)
	}
}
