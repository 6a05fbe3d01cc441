package types

// Precipitation is one measurement's rainfall. The date is not carried.
type Precipitation struct {
	Prcp *float64 `json:"prcp"`
}

// DateRange bounds measurement dates inclusively. Bounds are compared as
// strings; an empty End leaves the range open.
type DateRange struct {
	Start string
	End   string
}

// Observation is one temperature observation.
type Observation struct {
	Date string
	Tobs *float64
}

// TemperatureSummary holds the MIN/AVG/MAX of tobs over a date range. All
// three are nil when no measurement matched.
type TemperatureSummary struct {
	Min *float64
	Avg *float64
	Max *float64
}

// Flatten returns the summary as [min, avg, max].
func (s TemperatureSummary) Flatten() []*float64 {
	return []*float64{s.Min, s.Avg, s.Max}
}
