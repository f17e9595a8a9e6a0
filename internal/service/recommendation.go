package service

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/circuitbreaker"
	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/metrics"
	"github.com/guttosm/budget-service/internal/optimizer"
	"github.com/guttosm/budget-service/internal/service/cache"
)

const recommendationCacheName = "recommendations"

// RecommendationService suggests menu combinations that use up a budget.
type RecommendationService interface {
	// Calculate searches an explicit target and catalog.
	Calculate(ctx context.Context, req dto.CalculateRequest, locale string) (*dto.CalculateResponse, error)
	// Recommend searches the caller's remaining budget for this month against
	// the shared catalog.
	Recommend(ctx context.Context, userID primitive.ObjectID, locale string) (*dto.RecommendationResponse, error)
}

// RecommendationConfig tunes the search.
type RecommendationConfig struct {
	MaxResults int
	Tolerance  int
	// StepBudget caps visited nodes per engine call; 0 means unlimited.
	StepBudget int
	CacheSize  int
	CacheTTL   time.Duration
}

// DefaultRecommendationConfig returns the engine defaults with a small cache.
func DefaultRecommendationConfig() RecommendationConfig {
	return RecommendationConfig{
		MaxResults: optimizer.DefaultMaxResults,
		Tolerance:  optimizer.DefaultTolerance,
		CacheSize:  1000,
		CacheTTL:   5 * time.Minute,
	}
}

type recommendationKey struct {
	target     int
	maxResults int
	tolerance  int
	catalog    uint64
	locale     string
}

type recommendation struct {
	exact        bool
	combinations []model.Combination
}

// RecommendationServiceImpl implements RecommendationService.
type RecommendationServiceImpl struct {
	cfg     RecommendationConfig
	menus   MenuService
	budget  BudgetService
	engines map[string]*optimizer.Engine
	cache   cache.Cache[recommendationKey, recommendation]
}

// NewRecommendationService creates a recommendation service. menus and
// budget may be nil when only Calculate is needed.
func NewRecommendationService(cfg RecommendationConfig, menus MenuService, budget BudgetService) *RecommendationServiceImpl {
	def := DefaultRecommendationConfig()
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.Tolerance < 0 {
		cfg.Tolerance = def.Tolerance
	}

	translator := i18n.GetTranslator()
	engines := make(map[string]*optimizer.Engine)
	for _, locale := range []string{"en", "ko"} {
		engines[locale] = optimizer.New(
			optimizer.WithStepBudget(cfg.StepBudget),
			optimizer.WithLabeler(translator.ItemLabeler(locale)),
		)
	}

	s := &RecommendationServiceImpl{cfg: cfg, menus: menus, budget: budget, engines: engines}
	if cfg.CacheSize > 0 {
		s.cache = cache.NewLRU[recommendationKey, recommendation](recommendationCacheName, cfg.CacheSize, cfg.CacheTTL)
	}
	return s
}

func (s *RecommendationServiceImpl) engine(locale string) *optimizer.Engine {
	if e, ok := s.engines[locale]; ok {
		return e
	}
	return s.engines[i18n.DefaultLocale]
}

func (s *RecommendationServiceImpl) Calculate(ctx context.Context, req dto.CalculateRequest, locale string) (*dto.CalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	maxResults := s.cfg.MaxResults
	if req.MaxResults > 0 {
		maxResults = req.MaxResults
	}
	tolerance := s.cfg.Tolerance
	if req.Tolerance != nil {
		tolerance = *req.Tolerance
	}

	rec := s.search(ctx, req.Target, req.MenuItems(), maxResults, tolerance, locale)
	return &dto.CalculateResponse{Target: req.Target, Exact: rec.exact, Combinations: rec.combinations}, nil
}

func (s *RecommendationServiceImpl) Recommend(ctx context.Context, userID primitive.ObjectID, locale string) (*dto.RecommendationResponse, error) {
	if s.menus == nil || s.budget == nil {
		return nil, ErrRepositoryNotConfigured
	}
	status, err := s.budget.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.RecommendationResponse{Budget: status, Combinations: []model.Combination{}}
	if status.Remaining <= 0 {
		metrics.RecordRecommendation(metrics.OutcomeEmpty)
		return resp, nil
	}

	catalog, err := s.menus.List(ctx)
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		log.Ctx(ctx).Warn().Err(err).Msg("menu catalog unavailable, returning no recommendations")
		catalog, err = nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec := s.search(ctx, status.Remaining, catalog, s.cfg.MaxResults, s.cfg.Tolerance, locale)
	resp.Exact = rec.exact
	resp.Combinations = rec.combinations
	return resp, nil
}

// search runs the exact search and falls back to the approximate one when
// nothing matches. Interrupted searches are returned but not cached.
func (s *RecommendationServiceImpl) search(ctx context.Context, target int, catalog []model.MenuItem, maxResults, tolerance int, locale string) recommendation {
	if target <= 0 || len(catalog) == 0 {
		metrics.RecordRecommendation(metrics.OutcomeEmpty)
		return recommendation{combinations: []model.Combination{}}
	}

	key := recommendationKey{
		target:     target,
		maxResults: maxResults,
		tolerance:  tolerance,
		catalog:    CatalogFingerprint(catalog),
		locale:     locale,
	}
	if s.cache != nil {
		if rec, ok := s.cache.Get(key); ok {
			metrics.RecordRecommendation(metrics.OutcomeCached)
			return rec
		}
	}

	engine := s.engine(locale)
	logger := log.Ctx(ctx).With().Int("target", target).Int("catalog_size", len(catalog)).Logger()

	start := time.Now()
	combos, stats := engine.Exact(ctx, target, catalog, maxResults)
	metrics.RecordSearch("exact", time.Since(start), stats.Steps, stats.Interrupted)
	rec := recommendation{exact: len(combos) > 0, combinations: combos}
	outcome := metrics.OutcomeExact
	interrupted := stats.Interrupted

	if !rec.exact && !interrupted {
		start = time.Now()
		combos, stats = engine.Approximate(ctx, target, catalog, tolerance)
		metrics.RecordSearch("approximate", time.Since(start), stats.Steps, stats.Interrupted)
		rec.combinations = combos
		outcome = metrics.OutcomeApproximate
		interrupted = stats.Interrupted
	}
	if len(rec.combinations) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordRecommendation(outcome)

	logger.Debug().
		Str("outcome", outcome).
		Int("results", len(rec.combinations)).
		Int("steps", stats.Steps).
		Bool("interrupted", interrupted).
		Msg("combination search finished")

	if s.cache != nil && !interrupted {
		s.cache.Set(key, rec)
	}
	return rec
}

// CatalogFingerprint hashes the ID, name, category and price of every item in order,
// so any catalog edit produces a different cache key.
func CatalogFingerprint(catalog []model.MenuItem) uint64 {
	h := fnv.New64a()
	var buf []byte
	for _, item := range catalog {
		buf = buf[:0]
		buf = append(buf, item.ID...)
		buf = append(buf, 0x1f)
		buf = append(buf, item.Name...)
		buf = append(buf, 0x1f)
		buf = append(buf, item.Category...)
		buf = append(buf, 0x1f)
		buf = strconv.AppendInt(buf, int64(item.Price), 10)
		buf = append(buf, 0x1e)
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}
