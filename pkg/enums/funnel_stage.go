package enums

import "fmt"

// FunnelStage describes the allowed values for the `stage` column in
// customer_sales_funnel.
type FunnelStage string

const (
	FunnelStageNew        FunnelStage = "new"
	FunnelStageInProgress FunnelStage = "in_progress"
	FunnelStageCompleted  FunnelStage = "completed"
)

var validFunnelStages = []FunnelStage{
	FunnelStageNew,
	FunnelStageInProgress,
	FunnelStageCompleted,
}

// IsValid reports whether the value matches the canonical funnel stage enum.
func (s FunnelStage) IsValid() bool {
	for _, candidate := range validFunnelStages {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseFunnelStage converts the raw string to FunnelStage.
func ParseFunnelStage(value string) (FunnelStage, error) {
	for _, candidate := range validFunnelStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid funnel stage %q", value)
}
