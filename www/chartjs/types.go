package chartjs

type Chart struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels,omitempty"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset data is either []*float64 aligned to the chart labels or
// []Point for time scales. Nil entries mark gaps that Chart.js leaves
// undrawn, which is how sub-zero shading regions are bounded.
type ChartDataset struct {
	Label           string  `json:"label,omitempty"`
	Data            any     `json:"data"`
	BorderWidth     int     `json:"borderWidth"`
	Tension         float64 `json:"tension"`
	Fill            bool    `json:"fill"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	YAxisID         string  `json:"yAxisID,omitempty"`
}

// Point is one {x, y} sample for a time-scale dataset. X is an ISO 8601
// timestamp so points keep their exact position, interpolated zero
// crossings included.
type Point struct {
	X string   `json:"x"`
	Y *float64 `json:"y"`
}

type ChartOptions struct {
	Responsive bool                  `json:"responsive"`
	Plugins    ChartPlugins          `json:"plugins"`
	Scales     map[string]ChartScale `json:"scales"`
}

type ChartPlugins struct {
	Legend ChartLegend `json:"legend"`
	Title  ChartTitle  `json:"title"`
}

type ChartLegend struct {
	Display bool `json:"display"`
}

type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type ChartScale struct {
	Type     string          `json:"type"`
	Display  bool            `json:"display"`
	Position string          `json:"position,omitempty"`
	Min      *float64        `json:"min,omitempty"`
	Max      *float64        `json:"max,omitempty"`
	Time     *ChartScaleTime `json:"time,omitempty"`
	Title    ChartScaleTitle `json:"title,omitempty"`
}

type ChartScaleTime struct {
	Unit string `json:"unit,omitempty"`
}

type ChartScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Color   string `json:"color,omitempty"`
}
