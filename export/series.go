package export

// Series is one exported study output.
type Series struct {
	// Label is written to the line and names the value in the lookup.
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
	// Offset is added to the update index. Prior-session values are read
	// one bar back.
	Offset int `json:"offset,omitempty" yaml:"offset,omitempty"`
}

// DefaultSeries is the standard export set, in file order.
func DefaultSeries() []Series {
	return []Series{
		{Label: "dV", Color: "Cyan"},
		{Label: "dV+", Color: "MediumTurquoise"},
		{Label: "dV-", Color: "MediumTurquoise"},
		{Label: "ovnH", Color: "DarkSeaGreen"},
		{Label: "ovnL", Color: "IndianRed"},
		{Label: "pdVWAP", Color: "ForestGreen"},
		{Label: "pdStdD+", Color: "SeaGreen"},
		{Label: "pdStdD-", Color: "SeaGreen"},
		{Label: "psVWAP", Color: "HotPink", Offset: -1},
		{Label: "psStdD+", Color: "LightPink", Offset: -1},
		{Label: "psStdD-", Color: "LightPink", Offset: -1},
		{Label: "dEQ", Color: "FloralWhite"},
		{Label: "wEQ", Color: "Cornsilk"},
		{Label: "mEQ", Color: "LemonChiffon"},
	}
}
