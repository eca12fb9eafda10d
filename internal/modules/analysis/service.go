// Package analysis composes the four engine components into one portfolio
// analysis pass and stamps the outcome into a Report. It also derives
// allocation breakdowns (asset class, geography, currency) from raw fund
// holdings so callers do not have to pre-aggregate.
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fondsblick/riskengine/internal/config"
	"github.com/fondsblick/riskengine/internal/domain"
	"github.com/fondsblick/riskengine/internal/modules/calculations"
	"github.com/fondsblick/riskengine/internal/modules/compliance"
	"github.com/fondsblick/riskengine/internal/modules/lookthrough"
	"github.com/fondsblick/riskengine/internal/modules/riskmetrics"
)

// Request carries everything one analysis pass needs. Correlations,
// LookThrough and Holdings are optional; absent inputs skip the checks that
// need them.
type Request struct {
	Positions    []domain.Position
	Correlations [][]float64
	Original     []domain.Allocation
	LookThrough  []domain.Allocation
	Holdings     []domain.FundHolding
}

// Report is the stamped outcome of one analysis pass.
type Report struct {
	ID          uuid.UUID                `json:"id"`
	CreatedAt   time.Time                `json:"created_at"`
	Metrics     domain.RiskMetrics       `json:"metrics"`
	LookThrough domain.LookThroughResult `json:"look_through"`
	Compliance  domain.ComplianceResult  `json:"compliance"`
}

// Service runs a full analysis pass over one portfolio snapshot. Safe for
// concurrent use.
type Service struct {
	calculator *riskmetrics.Calculator
	validator  *lookthrough.Validator
	regulatory *compliance.Validator
	cache      *calculations.Cache
	log        zerolog.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

// NewService creates an analysis service wired to the given configuration.
func NewService(cfg *config.Config, log zerolog.Logger) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{
		calculator: riskmetrics.NewCalculator(cfg, log),
		validator:  lookthrough.NewValidator(cfg, log),
		regulatory: compliance.NewValidator(cfg, log),
		log:        log.With().Str("component", "analysis").Logger(),
		now:        time.Now,
		newID:      uuid.New,
	}
}

// WithCache enables memoization of full analysis passes. Identical requests
// return the stored report, original id and timestamp included. The cache is
// never authoritative: concurrent identical calls may race to populate it and
// any writer wins, which is safe because the pass is deterministic.
func (s *Service) WithCache(cache *calculations.Cache) *Service {
	s.cache = cache
	return s
}

// Analyze runs risk metrics, look-through validation and German compliance
// over one snapshot. The validators never fail; only the risk metrics
// calculation can return a hard error (empty portfolio, non-finite fields),
// which aborts the pass.
func (s *Service) Analyze(req Request) (Report, error) {
	var cacheKey string
	if s.cache != nil {
		key, err := calculations.Key("analysis",
			req.Positions, req.Correlations, req.Original, req.LookThrough, req.Holdings)
		if err != nil {
			return Report{}, fmt.Errorf("deriving analysis cache key: %w", err)
		}
		cacheKey = key
		if cached, ok := s.cache.Get(cacheKey); ok {
			if report, ok := cached.(Report); ok {
				return report, nil
			}
		}
	}

	metrics, err := s.calculator.Calculate(req.Positions, req.Correlations)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		ID:          s.newID(),
		CreatedAt:   s.now().UTC(),
		Metrics:     metrics,
		LookThrough: s.validator.Validate(req.Original, req.LookThrough, req.Holdings),
		Compliance:  s.regulatory.ValidateGermanStandards(req.Positions, req.Original),
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, report)
	}

	s.log.Info().
		Str("report_id", report.ID.String()).
		Bool("look_through_valid", report.LookThrough.IsValid).
		Bool("compliant", report.Compliance.IsCompliant).
		Msg("Analysis complete")

	return report, nil
}
