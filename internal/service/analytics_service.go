package service

import (
	"context"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/scenario"
	"github.com/rs/zerolog/log"
)

// Forecast projects inventory for a company, served from cache when possible
func (s *NetworkService) Forecast(ctx context.Context, companyID string, days int) ([]analytics.WarehouseForecast, error) {
	c, revision, err := s.snapshot(companyID)
	if err != nil {
		return nil, err
	}
	return s.forecastFor(ctx, c, revision, days), nil
}

// forecastFor looks up or computes the forecast of c as of revision. Entries
// are keyed by revision, so a forecast computed from a superseded snapshot
// is never served for newer state.
func (s *NetworkService) forecastFor(ctx context.Context, c domain.Company, revision uint64, days int) []analytics.WarehouseForecast {
	if days <= 0 {
		days = analytics.DefaultForecastDays
	}

	if forecast, ok, err := s.cache.Get(ctx, c.ID, revision, days); err == nil && ok {
		return forecast
	} else if err != nil {
		log.Warn().Err(err).Str("company_id", c.ID).Msg("network service: cache get forecast failed")
	}

	forecast := analytics.ForecastNetwork(c.Data, days)
	if err := s.cache.Set(ctx, c.ID, revision, days, forecast); err != nil {
		log.Warn().Err(err).Str("company_id", c.ID).Msg("network service: cache set forecast failed")
	}
	return forecast
}

// Warnings evaluates early-warning signals on the default forecast horizon.
// The forecast and the supplier checks read the same snapshot.
func (s *NetworkService) Warnings(ctx context.Context, companyID string, thresholds analytics.WarningThresholds) ([]analytics.Warning, error) {
	c, revision, err := s.snapshot(companyID)
	if err != nil {
		return nil, err
	}
	forecast := s.forecastFor(ctx, c, revision, analytics.DefaultForecastDays)
	return analytics.EarlyWarnings(c.Data, forecast, thresholds), nil
}

// Outlook reports days until stockout per warehouse
func (s *NetworkService) Outlook(companyID string) ([]analytics.Outlook, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return nil, err
	}
	return analytics.StockoutOutlook(c.Data), nil
}

// ScenarioStatus describes a company's pending scenario
type ScenarioStatus struct {
	Active            bool   `json:"active"`
	OutageTarget      string `json:"outageTarget,omitempty"`
	DemandSpikeTarget string `json:"demandSpikeTarget,omitempty"`
}

// ScenarioStatus reports whether a scenario is pending reset and which nodes
// each stress test would hit
func (s *NetworkService) ScenarioStatus(companyID string) (ScenarioStatus, error) {
	c, err := s.Company(companyID)
	if err != nil {
		return ScenarioStatus{}, err
	}
	status := ScenarioStatus{Active: scenario.HasActiveScenario(c)}
	status.OutageTarget, _ = scenario.StressTarget(c.BaseData, scenario.StressSupplierOutage)
	status.DemandSpikeTarget, _ = scenario.StressTarget(c.BaseData, scenario.StressDemandSpike)
	return status, nil
}
