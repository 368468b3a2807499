// Package chartjs builds Chart.js configuration payloads that the GUI
// renders verbatim.
package chartjs

import (
	"math"
	"time"
)

const (
	ColorBlue   = "#2196f3d4"
	ColorGreen  = "#4caf50d4"
	ColorOrange = "#ff9800d4"
	ColorRed    = "#f44336d4"
	ColorGray   = "#9e9e9ed4"
)

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// NewTimeChart returns a line chart on a time x-axis. Datasets added to
// it must use []Point data.
func NewTimeChart(title string, yAxisText string) Chart {
	return Chart{
		Type: "line",
		Data: ChartData{
			Datasets: []ChartDataset{},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true},
				Title:  ChartTitle{Display: true, Text: title},
			},
			Scales: map[string]ChartScale{
				"x": {
					Type:    "time",
					Display: true,
					Time:    &ChartScaleTime{Unit: "hour"},
				},
				"y": {
					Type:     "linear",
					Display:  true,
					Position: "left",
					Title:    ChartScaleTitle{Display: true, Text: yAxisText},
				},
			},
		},
	}
}

// NewMonthChart returns a bar chart with one label per calendar month.
// Datasets added to it must use []*float64 data of length 12.
func NewMonthChart(title string, yAxisText string) Chart {
	return Chart{
		Type: "bar",
		Data: ChartData{
			Labels:   monthLabels,
			Datasets: []ChartDataset{},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true},
				Title:  ChartTitle{Display: true, Text: title},
			},
			Scales: map[string]ChartScale{
				"y": {
					Type:    "linear",
					Display: true,
					Title:   ChartScaleTitle{Display: true, Text: yAxisText},
				},
			},
		},
	}
}

func (c *Chart) AddDataset(ds ChartDataset) {
	c.Data.Datasets = append(c.Data.Datasets, ds)
}

// NewTimePoint converts one sample to a Point, rounded for payload size.
func NewTimePoint(when time.Time, value *float64, precision int) Point {
	return Point{
		X: when.UTC().Format(time.RFC3339),
		Y: FixedFloat64(value, precision),
	}
}

func FixedFloat64(value *float64, precision int) *float64 {
	if value == nil {
		return nil
	}
	ratio := math.Pow(10, float64(precision))
	rounded := math.Round(*value*ratio) / ratio
	return &rounded
}
