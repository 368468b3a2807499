package sim

import "math"

// PlantConfig parameterizes one simulation run. ThermalLimitMW is signed
// like net load: -10 means the feeder may export up to 10 MW before the
// planning limit is hit.
type PlantConfig struct {
	PlantSizeMW    float64
	ThermalLimitMW float64
}

// HostingCapacity is the additional generation in MW the feeder can accept
// at the given net load without violating the thermal limit.
func HostingCapacity(netLoadMW, thermalLimitMW float64) float64 {
	return netLoadMW - thermalLimitMW
}

type ClipResult struct {
	RawMW       float64
	FirmMW      float64
	CurtailedMW float64
}

// Clip limits a plant's raw output to the hosting capacity at the matched
// load sample. FirmMW is intentionally not floored at zero: when hosting
// capacity is negative and below the raw output, firm output goes negative
// and the aggregates carry that sign. Since samples are hourly, MW values
// double as MWh for the hour.
func Clip(perUnitAC float64, cfg PlantConfig, netLoadMW float64) ClipResult {
	raw := perUnitAC * cfg.PlantSizeMW
	firm := math.Min(raw, HostingCapacity(netLoadMW, cfg.ThermalLimitMW))
	return ClipResult{
		RawMW:       raw,
		FirmMW:      firm,
		CurtailedMW: raw - firm,
	}
}
