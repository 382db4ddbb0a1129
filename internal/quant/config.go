package quant

// ScoringConfig holds the tunable caps, weights, and thresholds used
// by the metrics engine. Callers normally start from DefaultScoring
// and adjust individual fields in tests.
type ScoringConfig struct {
	SharpeCap  float64
	SortinoCap float64
	CalmarCap  float64

	BaseSharpeWeight  float64
	BaseSortinoWeight float64
	BaseCalmarWeight  float64

	// Volatility regime thresholds shifting composite weights.
	HighVolThreshold float64
	LowVolThreshold  float64
	LongHorizonDays  float64

	CompositeCap float64

	RiskFreeBase float64
	RiskFreeMin  float64
	RiskFreeMax  float64

	KellyFloor float64
	KellyCeil  float64
}

// DefaultScoring returns the production scoring parameters.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		SharpeCap:         3.0,
		SortinoCap:        4.0,
		CalmarCap:         10.0,
		BaseSharpeWeight:  0.4,
		BaseSortinoWeight: 0.4,
		BaseCalmarWeight:  0.2,
		HighVolThreshold:  0.4,
		LowVolThreshold:   0.2,
		LongHorizonDays:   90.0,
		CompositeCap:      5.0,
		RiskFreeBase:      0.045,
		RiskFreeMin:       0.01,
		RiskFreeMax:       0.08,
		KellyFloor:        0.02,
		KellyCeil:         0.25,
	}
}
