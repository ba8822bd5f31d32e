package interfaces

import (
	"context"

	"equity-intel/internal/intelligence"
)

// IntelligenceRunner produces an intelligence report for a prediction
type IntelligenceRunner interface {
	// RunIntelligence runs news, earnings and sentiment for one request and
	// always returns a complete report
	RunIntelligence(ctx context.Context, req intelligence.Request) *intelligence.Report
}
