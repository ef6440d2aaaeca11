package activity

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WeightedPowerWindow is the rolling window size (in samples) used for weighted power.
const WeightedPowerWindow = 30

const (
	MetricAvgPower      = "avgPower"
	MetricWeightedPower = "weightedPower"
	MetricMaxPower      = "maxPower"
	MetricAvgHeartRate  = "avgHeartRate"
	MetricAvgCadence    = "avgCadence"
	MetricAvgSpeed      = "avgSpeed"
)

// StatRow summarizes one series. Averages, max and weighted power are nil
// when the series does not hold enough non-zero samples to compute them;
// InsufficientData names those metrics.
type StatRow struct {
	FileName         string   `json:"fileName"`
	AvgPower         *float64 `json:"avgPower"`
	WeightedPower    *float64 `json:"weightedPower"`
	MaxPower         *float64 `json:"maxPower"`
	AvgHeartRate     *float64 `json:"avgHeartRate"`
	AvgCadence       *float64 `json:"avgCadence"`
	AvgSpeed         *float64 `json:"avgSpeed"`
	Distance         float64  `json:"distance"`
	Ascent           float64  `json:"ascent"`
	InsufficientData []string `json:"insufficientData,omitempty"`
}

// ComputeStats derives the summary row of a series.
//
// Zero readings are treated as missing: every metric array drops its zero
// values before aggregation, so coasting (power 0) or a heart rate dropout
// does not pull averages down. Downstream numbers depend on this, keep it.
func ComputeStats(series Series) StatRow {
	var power, heartRate, cadence, speed, altitude []float64
	for _, s := range series.Samples {
		power = appendNonZero(power, s.Power)
		heartRate = appendNonZero(heartRate, s.HeartRate)
		cadence = appendNonZero(cadence, s.Cadence)
		speed = appendNonZero(speed, s.Speed)
		altitude = appendNonZero(altitude, s.Altitude)
	}

	row := StatRow{
		FileName: series.Name,
		Distance: roundTo(totalDistance(speed), 2),
		Ascent:   roundTo(totalAscent(altitude), 0),
	}

	row.AvgPower = row.metric(MetricAvgPower, mean(power), 0)
	row.WeightedPower = row.metric(MetricWeightedPower, weightedPower(power), 0)
	row.MaxPower = row.metric(MetricMaxPower, maxOf(power), 0)
	row.AvgHeartRate = row.metric(MetricAvgHeartRate, mean(heartRate), 0)
	row.AvgCadence = row.metric(MetricAvgCadence, mean(cadence), 0)
	row.AvgSpeed = row.metric(MetricAvgSpeed, mean(speed), 1)

	return row
}

// ComputeAllStats returns one stat row per series of the set, in set order.
func ComputeAllStats(set ComparisonSet) []StatRow {
	rows := make([]StatRow, 0, len(set.Series))
	for _, s := range set.Series {
		rows = append(rows, ComputeStats(s))
	}
	return rows
}

func (r *StatRow) metric(name string, value float64, decimals int) *float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		r.InsufficientData = append(r.InsufficientData, name)
		return nil
	}
	rounded := roundTo(value, decimals)
	return &rounded
}

func appendNonZero(values []float64, v float64) []float64 {
	if v == 0 || math.IsNaN(v) {
		return values
	}
	return append(values, v)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Max(values)
}

// weightedPower is the 4th-power mean of 30-sample rolling averages.
// Window starts run over 0..n-31, so n <= 30 yields no window at all.
func weightedPower(power []float64) float64 {
	windows := len(power) - WeightedPowerWindow
	if windows <= 0 {
		return math.NaN()
	}

	fourthPowers := make([]float64, windows)
	for i := 0; i < windows; i++ {
		windowAvg := floats.Sum(power[i:i+WeightedPowerWindow]) / WeightedPowerWindow
		fourthPowers[i] = math.Pow(windowAvg, 4)
	}

	return math.Pow(stat.Mean(fourthPowers, nil), 0.25)
}

// totalAscent sums positive elevation deltas only; descents contribute nothing.
func totalAscent(altitude []float64) float64 {
	ascent := 0.0
	for i := 1; i < len(altitude); i++ {
		if delta := altitude[i] - altitude[i-1]; delta > 0 {
			ascent += delta
		}
	}
	return ascent
}

// totalDistance assumes 1 Hz sampling: each km/h sample covers one second.
func totalDistance(speed []float64) float64 {
	if len(speed) == 0 {
		return 0
	}
	return floats.Sum(speed) / 3600
}

// roundTo rounds to the given number of decimals, halves rounding up.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(v*p+0.5) / p
}
