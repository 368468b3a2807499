package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/angas/gridhost-go/hours"
	"github.com/angas/gridhost-go/types"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseSeries reads an hourly series from r. Rows are "timestamp,value";
// a header row, blank lines and '#' comments are tolerated. Values must be
// finite, the simulation core does not defend against NaN or Inf. Later
// rows for the same hour overwrite earlier ones.
func ParseSeries(r io.Reader) ([]types.SeriesPoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var points []types.SeriesPoint
	seen := make(map[hours.DateHour]int)
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		line++

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected timestamp and value, got %d fields", line, len(record))
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("line %d: parsing value %q: %w", line, record[1], err)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("line %d: value %q is not finite", line, record[1])
		}

		ts, err := parseTimestamp(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		point := types.SeriesPoint{Hour: hours.FromTime(ts), Value: value}
		if i, ok := seen[point.Hour]; ok {
			points[i] = point
			continue
		}
		seen[point.Hour] = len(points)
		points = append(points, point)
	}

	return points, nil
}

func parseTimestamp(str string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", str)
}
