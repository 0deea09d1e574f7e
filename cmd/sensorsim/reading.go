package main

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	readingType = "sensor_reading"

	cycle      = 30 * time.Second
	awakeSpan  = 10 * time.Second
	awakeMinCM = 50.0
	awakeMaxCM = 90.0
	idleMinCM  = 140.0
	idleMaxCM  = 200.0
)

type reading struct {
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
}

// distanceAt simulates a customer pulling up for the first awakeSpan of every cycle.
func distanceAt(now time.Time, rnd *rand.Rand) float64 {
	lo, hi := idleMinCM, idleMaxCM
	if time.Duration(now.Unix()%int64(cycle/time.Second))*time.Second < awakeSpan {
		lo, hi = awakeMinCM, awakeMaxCM
	}
	d := lo + rnd.Float64()*(hi-lo)
	return math.Round(d*100) / 100
}

func newReading(now time.Time, rnd *rand.Rand) reading {
	return reading{Type: readingType, Distance: distanceAt(now, rnd)}
}
