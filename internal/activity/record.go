package activity

import (
	"errors"
	"math"
	"time"
)

// ErrUnreadable is returned when raw file bytes cannot be decoded into activity records.
var ErrUnreadable = errors.New("file unreadable")

// Record is a single decoded activity record. Nil fields mean the decoder had no reading.
type Record struct {
	Power            *float64
	Cadence          *float64
	HeartRate        *float64
	Speed            *float64 // km/h
	Altitude         *float64 // meters
	EnhancedAltitude *float64 // meters, higher precision than Altitude
	Timestamp        time.Time
}

// Sample is one normalized observation. Every field always carries a value.
type Sample struct {
	Index     int       `json:"index"`
	Power     float64   `json:"power"`
	Cadence   float64   `json:"cadence"`
	HeartRate float64   `json:"heartRate"`
	Speed     float64   `json:"speed"`
	Altitude  float64   `json:"altitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Series is the ordered list of samples decoded from one file.
type Series struct {
	Name    string   `json:"name"`
	Samples []Sample `json:"data"`
}

// Float returns a pointer to v, handy when building records by hand.
func Float(v float64) *float64 {
	return &v
}

func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v)
}
