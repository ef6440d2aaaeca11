package activity

const (
	MinSpeed    = 0.0
	MaxSpeed    = 100.0 // km/h
	MinAltitude = -500.0
	MaxAltitude = 9000.0 // meters
)

// Normalize maps one decoded record to a fixed-shape sample.
// Missing readings become 0; speed and altitude are clamped to plausible ranges
// so decoder glitches and GPS spikes do not leak into charts and stats.
func Normalize(record Record, index int) Sample {
	sample := Sample{
		Index:     index,
		Power:     valueOrZero(record.Power),
		Cadence:   valueOrZero(record.Cadence),
		HeartRate: valueOrZero(record.HeartRate),
		Timestamp: record.Timestamp,
	}

	if present(record.Speed) {
		sample.Speed = clamp(*record.Speed, MinSpeed, MaxSpeed)
	}

	switch {
	case present(record.EnhancedAltitude):
		sample.Altitude = clamp(*record.EnhancedAltitude, MinAltitude, MaxAltitude)
	case present(record.Altitude):
		sample.Altitude = clamp(*record.Altitude, MinAltitude, MaxAltitude)
	}

	return sample
}

func valueOrZero(v *float64) float64 {
	if !present(v) {
		return 0
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
