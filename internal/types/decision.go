package types

// Decision is the categorical hiring outcome attached to an application.
type Decision string

// Decision labels
const (
	DecisionFastTrack      Decision = "Fast-Track Selected"
	DecisionSelected       Decision = "Selected"
	DecisionHirePooled     Decision = "Hire-Pooled"
	DecisionRejected       Decision = "Rejected"
	DecisionReviewRequired Decision = "Review Required"
)

// AllDecisions lists every decision label in cascade order of preference.
var AllDecisions = []Decision{
	DecisionFastTrack,
	DecisionSelected,
	DecisionHirePooled,
	DecisionRejected,
	DecisionReviewRequired,
}

// IsValid reports whether d is one of the known labels.
func (d Decision) IsValid() bool {
	for _, known := range AllDecisions {
		if d == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (d Decision) String() string {
	return string(d)
}
