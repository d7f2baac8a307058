package operations

import (
	"fmt"

	"github.com/madhavthaker/pdp-comp-analysis/internal/analysis"
	"github.com/madhavthaker/pdp-comp-analysis/internal/competitor"
)

// SingleResult is the output of the combined discover-then-compare flow.
type SingleResult struct {
	Discovery  *competitor.Result       `json:"competitor_discovery"`
	Comparison *analysis.AnalysisReport `json:"comparison"`
}

// OperationError wraps a pipeline failure with the operation name and the
// URL it was invoked for.
type OperationError struct {
	Op    string
	URL   string
	Cause error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Op, e.URL, e.Cause)
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}
