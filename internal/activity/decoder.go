package activity

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tormoder/fit"
)

const metersPerSecondToKmh = 3.6

// Decode parses raw FIT bytes into activity records, in file order.
// Any failure is reported as ErrUnreadable.
func Decode(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrUnreadable)
	}

	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode fit: %s", ErrUnreadable, err)
	}

	activityFile, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("%w: not an activity file: %s", ErrUnreadable, err)
	}

	records := make([]Record, 0, len(activityFile.Records))
	for _, msg := range activityFile.Records {
		if msg == nil {
			continue
		}
		records = append(records, fromRecordMsg(msg))
	}

	return records, nil
}

func fromRecordMsg(msg *fit.RecordMsg) Record {
	r := Record{}
	// base time is the decoder's "no timestamp" value
	if !msg.Timestamp.IsZero() && !fit.IsBaseTime(msg.Timestamp) {
		r.Timestamp = msg.Timestamp
	}

	if msg.Power != math.MaxUint16 {
		r.Power = Float(float64(msg.Power))
	}
	if msg.HeartRate != math.MaxUint8 {
		r.HeartRate = Float(float64(msg.HeartRate))
	}
	if msg.Cadence != math.MaxUint8 {
		r.Cadence = Float(float64(msg.Cadence))
	}

	if speed, ok := speedKmh(msg); ok {
		r.Speed = Float(speed)
	}

	r.Altitude = finiteOrNil(msg.GetAltitudeScaled())
	r.EnhancedAltitude = finiteOrNil(msg.GetEnhancedAltitudeScaled())

	return r
}

// speedKmh prefers the enhanced (32 bit) speed field over the legacy one.
func speedKmh(msg *fit.RecordMsg) (float64, bool) {
	speed := msg.GetEnhancedSpeedScaled()
	if isFinite(speed) {
		return speed * metersPerSecondToKmh, true
	}
	speed = msg.GetSpeedScaled()
	if isFinite(speed) {
		return speed * metersPerSecondToKmh, true
	}
	return 0, false
}

func finiteOrNil(v float64) *float64 {
	if !isFinite(v) {
		return nil
	}
	return Float(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
