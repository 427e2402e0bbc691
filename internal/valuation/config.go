package valuation

import "github.com/derekschultz/lol-dfs-optimizer/internal/types"

// FactorWeights are the strength-aggregator weights. Historical is only
// applied when a historical sidecar is present.
type FactorWeights struct {
	Base        float64 `json:"base"`
	Projection  float64 `json:"projection"`
	Leverage    float64 `json:"leverage"`
	Correlation float64 `json:"correlation"`
	Historical  float64 `json:"historical"`
	Ceiling     float64 `json:"ceiling"`
}

// ProjectionAnchors are the total-projection breakpoints of the projection
// scorer's piecewise-linear map.
type ProjectionAnchors struct {
	Poor    float64 `json:"poor"`
	Average float64 `json:"average"`
	Good    float64 `json:"good"`
	Elite   float64 `json:"elite"`
}

// CurveSegment maps a strength interval onto an expected-percentile
// interval. Segments are evaluated top-down; the first whose StrengthLo is
// met wins.
type CurveSegment struct {
	StrengthLo float64 `json:"strength_lo"`
	StrengthHi float64 `json:"strength_hi"`
	PctAtLo    float64 `json:"pct_at_lo"`
	PctAtHi    float64 `json:"pct_at_hi"`
}

// BucketCaps are the per-bucket probability ceilings before the quality
// adjustment is applied.
type BucketCaps struct {
	Top1  float64 `json:"top_1"`
	Top5  float64 `json:"top_5"`
	Top10 float64 `json:"top_10"`
	Top20 float64 `json:"top_20"`
}

// PayoutTiers describe a GPP payout structure as fractions of the prize
// pool reaching first place, the top three, and the top 10%.
type PayoutTiers struct {
	First    float64 `json:"first"`
	Top3     float64 `json:"top_3"`
	Top10Pct float64 `json:"top_10_pct"`
}

// Config carries every constant the valuation engine consults. Tests vary
// it; production uses DefaultConfig.
type Config struct {
	Weights           FactorWeights
	Anchors           ProjectionAnchors
	PercentileCurve   []CurveSegment
	LargeFieldCaps    BucketCaps // field size > LargeFieldMin
	MediumFieldCaps   BucketCaps // MediumFieldMin < field size <= LargeFieldMin
	SmallFieldCap     float64    // flat cap when field size <= MediumFieldMin
	LargeFieldMin     int
	MediumFieldMin    int
	LogisticSlope     float64
	LogisticScale     float64
	SmallPayout       PayoutTiers // field size < MediumPayoutMin
	MediumPayout      PayoutTiers // field size < LargePayoutMin
	LargePayout       PayoutTiers
	MediumPayoutMin   int
	LargePayoutMin    int
	VolatilityByPos   map[string]float64
	VolatilityDefault float64
	NexusFloor        float64
	NexusCeiling      float64
	DefaultEntryFee   float64
	DefaultFieldSize  int
	DefaultRake       float64
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		Weights: FactorWeights{
			Base:        30,
			Projection:  40,
			Leverage:    15,
			Correlation: 10,
			Historical:  5,
			Ceiling:     5,
		},
		Anchors: ProjectionAnchors{
			Poor:    320,
			Average: 380,
			Good:    420,
			Elite:   450,
		},
		// Lower percentile = better finish.
		PercentileCurve: []CurveSegment{
			{StrengthLo: 75, StrengthHi: 100, PctAtLo: 20, PctAtHi: 5},
			{StrengthLo: 50, StrengthHi: 75, PctAtLo: 40, PctAtHi: 20},
			{StrengthLo: 25, StrengthHi: 50, PctAtLo: 65, PctAtHi: 40},
			{StrengthLo: 0, StrengthHi: 25, PctAtLo: 90, PctAtHi: 65},
		},
		LargeFieldCaps:  BucketCaps{Top1: 0.010, Top5: 0.035, Top10: 0.070, Top20: 0.150},
		MediumFieldCaps: BucketCaps{Top1: 0.020, Top5: 0.050, Top10: 0.100, Top20: 0.180},
		SmallFieldCap:   0.5,
		LargeFieldMin:   1000,
		MediumFieldMin:  100,
		LogisticSlope:   1.7,
		LogisticScale:   25,
		SmallPayout:     PayoutTiers{First: 0.25, Top3: 0.45, Top10Pct: 0.70},
		MediumPayout:    PayoutTiers{First: 0.20, Top3: 0.35, Top10Pct: 0.65},
		LargePayout:     PayoutTiers{First: 0.15, Top3: 0.25, Top10Pct: 0.55},
		MediumPayoutMin: 100,
		LargePayoutMin:  1000,
		VolatilityByPos: map[string]float64{
			types.PositionMid:     0.7,
			types.PositionADC:     0.7,
			types.PositionJungle:  0.6,
			types.PositionTop:     0.4,
			types.PositionSupport: 0.4,
			types.PositionTeam:    0.3,
		},
		VolatilityDefault: 0.5,
		NexusFloor:        25,
		NexusCeiling:      65,
		DefaultEntryFee:   5,
		DefaultFieldSize:  1000,
		DefaultRake:       0.15,
	}
}
