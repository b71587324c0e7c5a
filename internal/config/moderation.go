package config

import "time"

const (
	// Reputation
	InitialReputation = 1000
	MinReputation     = 0

	// Ban policy: a reputation below the threshold or too many reports
	// inside the window puts a ban key in Redis.
	BanThresholdReputation = 500
	BanThresholdFrequency  = 5
	BanFrequencyWindow     = 24 * time.Hour
	BanReputationDuration  = 7 * 24 * time.Hour
	BanFrequencyDuration   = 24 * time.Hour
)

// ReportWeights maps report severity to the reputation penalty it costs.
var ReportWeights = map[string]int{
	"Low":      5,
	"Medium":   50,
	"Critical": 250,
}
