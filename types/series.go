package types

import (
	"context"

	"github.com/angas/gridhost-go/hours"
)

// SeriesPoint is one hour of an input series as it is stored and moved
// between the ingestion, database and simulation layers.
type SeriesPoint struct {
	Hour  hours.DateHour
	Value float64
}

// SeriesProvider supplies the two input series of a simulation: substation
// net load in MW (negative = export) and solar AC output per unit of
// installed DC nameplate.
type SeriesProvider interface {
	GetNetLoad(ctx context.Context) ([]SeriesPoint, error)
	GetSolarProfile(ctx context.Context) ([]SeriesPoint, error)
}
