package types

// Sex is the policyholder's recorded sex.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is one of the accepted values.
func (s Sex) Valid() bool { return s == SexMale || s == SexFemale }

// Smoker is the policyholder's smoking status.
type Smoker string

const (
	SmokerYes Smoker = "yes"
	SmokerNo  Smoker = "no"
)

// Valid reports whether s is one of the accepted values.
func (s Smoker) Valid() bool { return s == SmokerYes || s == SmokerNo }

// Accepted ranges for the numeric fields of a PolicyholderRecord (inclusive).
const (
	MinAge      = 18
	MaxAge      = 65
	MinBMI      = 15.0
	MaxBMI      = 50.0
	MinChildren = 0
	MaxChildren = 5
)

// PolicyholderRecord is the validated input to a prediction. It is passed by
// value and never mutated after construction; it has no identity beyond its
// field values.
type PolicyholderRecord struct {
	// Age in years.
	// example: 30
	Age int `json:"age" example:"30"`
	// example: male
	Sex Sex `json:"sex" example:"male" enums:"male,female"`
	// Body mass index.
	// example: 25.0
	BMI float64 `json:"bmi" example:"25.0"`
	// Number of dependents covered.
	// example: 1
	Children int `json:"children" example:"1"`
	// example: no
	Smoker Smoker `json:"smoker" example:"no" enums:"yes,no"`
}

// RiskTier is one of the three fixed classification labels.
type RiskTier string

const (
	TierStandard RiskTier = "Standard (Tier 1)"
	TierElevated RiskTier = "Elevated Risk (Tier 2)"
	TierHigh     RiskTier = "High-Risk/Complex Case (Tier 3)"
)

// Tiers lists every risk tier in ascending order.
var Tiers = []RiskTier{TierStandard, TierElevated, TierHigh}

// Valid reports whether t is one of Tiers.
func (t RiskTier) Valid() bool {
	for _, k := range Tiers {
		if t == k {
			return true
		}
	}
	return false
}

// PredictionResult is the classified estimate for one record.
type PredictionResult struct {
	// Estimated annual medical charge, rounded to 2 decimal places.
	// example: 14345.00
	PredictedCharge float64 `json:"predicted_charge" example:"14345.00"`
	// example: Elevated Risk (Tier 2)
	RiskCategory RiskTier `json:"risk_category" example:"Elevated Risk (Tier 2)"`
}
