package service

import (
	"context"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
)

// Summarizer writes a one-sentence description of a company. It must not
// touch the company's data.
type Summarizer interface {
	Summarize(ctx context.Context, c domain.Company) (string, error)
}

// RuleSummarizer describes a company from its network profile
type RuleSummarizer struct{}

func (RuleSummarizer) Summarize(_ context.Context, c domain.Company) (string, error) {
	return analytics.Summarize(c), nil
}
