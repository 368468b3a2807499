package ingest

import (
	"strings"
	"testing"

	"github.com/angas/gridhost-go/hours"
)

func TestParseSeries(t *testing.T) {
	input := `timestamp,net_load_mw
2024-06-01T00:00:00Z,-5.25
2024-06-01T01:00:00Z,-8.0
# midday gap in the source data
2024-06-01T03:00:00Z,2.5
`
	points, err := ParseSeries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSeries() error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("ParseSeries() returned %d points, wanted 3", len(points))
	}

	first := points[0]
	if first.Hour != (hours.DateHour{Date: "2024-06-01", Hour: 0}) {
		t.Errorf("first hour = %+v", first.Hour)
	}
	if first.Value != -5.25 {
		t.Errorf("first value = %v, wanted -5.25", first.Value)
	}
	if points[2].Hour.Hour != 3 {
		t.Errorf("gap row landed at hour %d, wanted 3", points[2].Hour.Hour)
	}
}

func TestParseSeriesTimestampLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"rfc3339", "2024-06-01T12:00:00Z,1.0"},
		{"space separated", "2024-06-01 12:00:00,1.0"},
		{"no seconds", "2024-06-01 12:00,1.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := ParseSeries(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseSeries() error: %v", err)
			}
			if len(points) != 1 || points[0].Hour.Hour != 12 {
				t.Errorf("ParseSeries() = %+v", points)
			}
		})
	}
}

func TestParseSeriesNoHeader(t *testing.T) {
	points, err := ParseSeries(strings.NewReader("2024-06-01T00:00:00Z,1.5\n"))
	if err != nil {
		t.Fatalf("ParseSeries() error: %v", err)
	}
	if len(points) != 1 {
		t.Errorf("ParseSeries() returned %d points, wanted 1", len(points))
	}
}

func TestParseSeriesDuplicateHourOverwrites(t *testing.T) {
	input := "2024-06-01T00:00:00Z,1.0\n2024-06-01T00:30:00Z,2.0\n"
	points, err := ParseSeries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseSeries() error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("ParseSeries() returned %d points, wanted 1", len(points))
	}
	if points[0].Value != 2.0 {
		t.Errorf("value = %v, wanted the later row (2.0)", points[0].Value)
	}
}

func TestParseSeriesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage value past header", "ts,v\n2024-06-01T00:00:00Z,abc"},
		{"non-finite value", "2024-06-01T00:00:00Z,NaN"},
		{"bad timestamp", "yesterday,1.0"},
		{"missing value column", "ts,v\n2024-06-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSeries(strings.NewReader(tt.input)); err == nil {
				t.Error("ParseSeries() expected an error")
			}
		})
	}
}

func TestParseSeriesEmpty(t *testing.T) {
	points, err := ParseSeries(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseSeries() error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("ParseSeries() returned %d points, wanted 0", len(points))
	}
}
