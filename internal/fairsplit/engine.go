package fairsplit

import (
	"time"

	"go.uber.org/zap"
)

// Observer receives engine events. The metrics collector implements it.
type Observer interface {
	ObserveFeasibilityCheck(feasible bool)
	ObserveSplit(method Method, elapsed time.Duration)
	ObserveError(code ErrorCode)
}

type nopObserver struct{}

func (nopObserver) ObserveFeasibilityCheck(bool)       {}
func (nopObserver) ObserveSplit(Method, time.Duration) {}
func (nopObserver) ObserveError(ErrorCode)             {}

// Engine runs the exact search followed by the configured fallback policy.
// An Engine holds no per-call state and may be shared between goroutines.
type Engine struct {
	policy   FallbackPolicy
	logger   *zap.Logger
	observer Observer
	feasible feasibilityFunc
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the fallback policy.
func WithPolicy(p FallbackPolicy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// New creates an Engine. Defaults: sequential fallback, no-op logger and
// observer.
func New(opts ...Option) *Engine {
	e := &Engine{
		policy:   SequentialPolicy{},
		logger:   zap.NewNop(),
		observer: nopObserver{},
		feasible: solveEnvyFreeLP,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the configured fallback policy.
func (e *Engine) Policy() FallbackPolicy {
	return e.policy
}

// Compute validates the input, runs the exact search and, if it finds
// nothing, the fallback policy. The returned solution is tagged with the
// method that produced it.
func (e *Engine) Compute(v Valuations, totalRent float64) (Solution, error) {
	start := e.now()

	if err := Validate(v, totalRent); err != nil {
		e.fail(err)
		return Solution{}, err
	}

	sol, ok := exactSearch(v, totalRent, e.feasible, func(a Assignment, feasible bool) {
		e.observer.ObserveFeasibilityCheck(feasible)
		e.logger.Debug("feasibility check",
			zap.Stringer("assignment", a),
			zap.Bool("feasible", feasible),
		)
	})
	if !ok {
		e.logger.Info("no envy-free assignment found, falling back",
			zap.String("policy", e.policy.Name()),
		)
		var err error
		sol, err = e.policy.Fallback(v, totalRent)
		if err != nil {
			e.fail(err)
			return Solution{}, err
		}
	}

	elapsed := e.now().Sub(start)
	e.observer.ObserveSplit(sol.Method, elapsed)
	e.logger.Info("split computed",
		zap.String("method", string(sol.Method)),
		zap.Stringer("assignment", sol.Assignment),
		zap.Float64s("prices", sol.Prices[:]),
		zap.Duration("elapsed", elapsed),
	)
	return sol, nil
}

func (e *Engine) fail(err error) {
	code := CodeOf(err)
	e.observer.ObserveError(code)
	e.logger.Warn("split failed", zap.String("code", string(code)), zap.Error(err))
}

// Compute runs a one-off engine with the given fallback policy.
func Compute(v Valuations, totalRent float64, policy FallbackPolicy) (Solution, error) {
	return New(WithPolicy(policy)).Compute(v, totalRent)
}
