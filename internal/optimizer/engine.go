// Package optimizer finds multisets of menu items whose prices add up to a
// target amount.
//
// The exact search is a bounded depth-first search with repetition: every
// level iterates the whole catalog, an item may be picked at most
// MaxSameItem times, and the search stops once maxResults*3 raw hits have
// been collected. Hits are ranked by a diversity score, deduplicated by
// multiset and formatted with per-item counts. The approximate search walks
// the target down one unit at a time until a handful of results is found.
//
// An Engine holds only configuration; every call keeps its own state so one
// Engine may be shared between goroutines.
package optimizer

import (
	"context"

	"github.com/guttosm/budget-service/internal/domain/model"
)

const (
	// MaxSameItem is how many times a single item may appear in a combination.
	MaxSameItem = 5
	// DefaultMaxResults is the number of exact results callers usually ask for.
	DefaultMaxResults = 5
	// DefaultTolerance is how far below the target the approximate search goes.
	DefaultTolerance = 100

	hitCapFactor         = 3
	approximatePerTarget = 2
	approximateEnough    = 3
	pollInterval         = 1024
)

// Stats describes the work done by one search.
type Stats struct {
	// Hits counts raw matches, permutations included.
	Hits int
	// Steps counts visited search nodes.
	Steps int
	// CapReached is set when the hit cap cut the search short.
	CapReached bool
	// Interrupted is set when the context or the step budget stopped the search.
	Interrupted bool
	// Targets is the number of targets tried by an approximate search.
	Targets int
}

func (s *Stats) add(o Stats) {
	s.Hits += o.Hits
	s.Steps += o.Steps
	s.CapReached = s.CapReached || o.CapReached
	s.Interrupted = s.Interrupted || o.Interrupted
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxSameItem overrides the per-item repeat limit.
func WithMaxSameItem(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSameItem = n
		}
	}
}

// WithStepBudget bounds the number of visited nodes per call. Zero means
// unlimited.
func WithStepBudget(steps int) Option {
	return func(e *Engine) {
		if steps >= 0 {
			e.stepBudget = steps
		}
	}
}

// WithLabeler sets the function used to build combination descriptions.
func WithLabeler(l Labeler) Option {
	return func(e *Engine) {
		if l != nil {
			e.labeler = l
		}
	}
}

// WithCombinationEnumeration makes each level start at the current item
// instead of the first one, so every multiset is visited once rather than
// once per ordering.
func WithCombinationEnumeration() Option {
	return func(e *Engine) {
		e.forwardOnly = true
	}
}

// WithApproximateLimits overrides how many results the approximate search
// takes per target and how many it needs before stopping.
func WithApproximateLimits(perTarget, enough int) Option {
	return func(e *Engine) {
		if perTarget > 0 {
			e.perTarget = perTarget
		}
		if enough > 0 {
			e.enough = enough
		}
	}
}

// Engine runs combination searches.
type Engine struct {
	maxSameItem int
	stepBudget  int
	perTarget   int
	enough      int
	forwardOnly bool
	labeler     Labeler
}

// New creates an Engine with the given options applied over the defaults.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxSameItem: MaxSameItem,
		perTarget:   approximatePerTarget,
		enough:      approximateEnough,
		labeler:     DefaultLabeler,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// FindExact returns up to maxResults combinations totalling exactly target,
// using the default engine.
func FindExact(ctx context.Context, target int, catalog []model.MenuItem, maxResults int) []model.Combination {
	res, _ := defaultEngine.Exact(ctx, target, catalog, maxResults)
	return res
}

// FindApproximate returns combinations totalling between target-tolerance and
// target, using the default engine.
func FindApproximate(ctx context.Context, target int, catalog []model.MenuItem, tolerance int) []model.Combination {
	res, _ := defaultEngine.Approximate(ctx, target, catalog, tolerance)
	return res
}

// Exact returns up to maxResults combinations whose total is exactly target,
// ranked by diversity. A non-positive target, an empty catalog or a
// non-positive maxResults yields an empty result.
func (e *Engine) Exact(ctx context.Context, target int, catalog []model.MenuItem, maxResults int) ([]model.Combination, Stats) {
	return e.exact(ctx, target, catalog, maxResults, e.stepBudget)
}

// Approximate tries targets from target down to target-tolerance, taking a
// couple of exact results for each, and stops once enough have accumulated.
// Results are not deduplicated across targets; higher totals come first.
func (e *Engine) Approximate(ctx context.Context, target int, catalog []model.MenuItem, tolerance int) ([]model.Combination, Stats) {
	var (
		results []model.Combination
		total   Stats
	)
	if target <= 0 || len(catalog) == 0 {
		return []model.Combination{}, total
	}
	if tolerance < 0 {
		tolerance = 0
	}
	budget := e.stepBudget
	for t := target; t >= target-tolerance && t > 0; t-- {
		res, st := e.exact(ctx, t, catalog, e.perTarget, budget)
		total.add(st)
		total.Targets++
		results = append(results, res...)
		if len(results) >= e.enough || st.Interrupted {
			break
		}
		if e.stepBudget > 0 {
			budget -= st.Steps
			if budget <= 0 {
				total.Interrupted = true
				break
			}
		}
	}
	if results == nil {
		results = []model.Combination{}
	}
	return results, total
}

func (e *Engine) exact(ctx context.Context, target int, catalog []model.MenuItem, maxResults, budget int) ([]model.Combination, Stats) {
	if target <= 0 || len(catalog) == 0 || maxResults <= 0 {
		return []model.Combination{}, Stats{}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return []model.Combination{}, Stats{Interrupted: true}
	}

	s := &search{
		ctx:         ctx,
		catalog:     catalog,
		counts:      make(map[string]int, len(catalog)),
		hitCap:      maxResults * hitCapFactor,
		maxSameItem: e.maxSameItem,
		budget:      budget,
		forwardOnly: e.forwardOnly,
	}
	s.visit(0, target)

	stats := Stats{
		Hits:        len(s.hits),
		Steps:       s.steps,
		CapReached:  len(s.hits) >= s.hitCap,
		Interrupted: s.stopped,
	}
	return rank(s.hits, maxResults, e.labeler), stats
}

// search is the per-call state of one exact search.
type search struct {
	ctx         context.Context
	catalog     []model.MenuItem
	path        []int
	counts      map[string]int
	hits        [][]model.MenuItem
	hitCap      int
	maxSameItem int
	budget      int
	forwardOnly bool
	steps       int
	stopped     bool
}

func (s *search) visit(from, remaining int) {
	s.steps++
	if s.budget > 0 && s.steps > s.budget {
		s.stopped = true
		return
	}
	if s.steps%pollInterval == 0 && s.ctx.Err() != nil {
		s.stopped = true
		return
	}

	// A hit is recorded before the cap check, so siblings that land
	// exactly on zero can push the count slightly past the cap.
	if remaining == 0 {
		s.record()
		return
	}
	if remaining < 0 || len(s.hits) >= s.hitCap {
		return
	}

	for i := from; i < len(s.catalog); i++ {
		item := &s.catalog[i]
		if s.counts[item.ID] >= s.maxSameItem {
			continue
		}
		next := 0
		if s.forwardOnly {
			next = i
		}

		s.counts[item.ID]++
		s.path = append(s.path, i)
		s.visit(next, remaining-item.Price)
		s.path = s.path[:len(s.path)-1]
		s.counts[item.ID]--

		if s.stopped {
			return
		}
	}
}

func (s *search) record() {
	picks := make([]model.MenuItem, len(s.path))
	for i, idx := range s.path {
		picks[i] = s.catalog[idx]
	}
	s.hits = append(s.hits, picks)
}
