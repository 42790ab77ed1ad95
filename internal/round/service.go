package round

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/Zedonkay/rent/internal/canonical"
	"github.com/Zedonkay/rent/internal/fairsplit"
	"github.com/Zedonkay/rent/internal/metrics"
	"github.com/Zedonkay/rent/internal/store"
)

// SubmissionRecorder counts submission outcomes. *metrics.Collector
// implements it.
type SubmissionRecorder interface {
	RecordSubmission(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordSubmission(string) {}

// Service coordinates submissions and split computation for one household.
type Service struct {
	store     *store.Store
	engine    *fairsplit.Engine
	rooms     [fairsplit.N]string
	totalRent float64
	logger    *zap.Logger
	recorder  SubmissionRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the submission metrics recorder.
func WithRecorder(r SubmissionRecorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewService creates a round service. A nil engine gets fairsplit.New().
func NewService(st *store.Store, engine *fairsplit.Engine, rooms [fairsplit.N]string, totalRent float64, opts ...Option) *Service {
	if engine == nil {
		engine = fairsplit.New()
	}
	s := &Service{
		store:     st,
		engine:    engine,
		rooms:     rooms,
		totalRent: totalRent,
		logger:    zap.NewNop(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TotalRent returns the rent every submission must sum to.
func (s *Service) TotalRent() float64 {
	return s.totalRent
}

// Rooms returns the room labels.
func (s *Service) Rooms() [fairsplit.N]string {
	return s.rooms
}

// Submit validates and stores one person's valuations.
//
// Rejections, in order of precedence: missing name or values, not exactly
// three values, a negative or non-finite value, a total off by more than
// fairsplit.Tolerance, a name already used this round (case-insensitive),
// and a round that already has three submissions.
func (s *Service) Submit(ctx context.Context, name string, values []float64) (store.Submission, error) {
	sub, err := s.submit(ctx, name, values)
	outcome := metrics.OutcomeAccepted
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidSubmission):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, ErrDuplicateSubmitter):
		outcome = metrics.OutcomeDuplicate
	case errors.Is(err, ErrRoundFull):
		outcome = metrics.OutcomeFull
	default:
		outcome = metrics.OutcomeError
	}
	s.recorder.RecordSubmission(outcome)

	if err != nil {
		s.logger.Info("submission rejected",
			zap.String("name", name),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return store.Submission{}, err
	}
	s.logger.Info("submission accepted",
		zap.String("name", sub.Name),
		zap.String("id", sub.ID),
		zap.Int64("seq", sub.Seq),
	)
	return sub, nil
}

func (s *Service) submit(ctx context.Context, name string, values []float64) (store.Submission, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(values) == 0 {
		return store.Submission{}, invalid("Missing name or values")
	}
	if len(values) != fairsplit.N {
		return store.Submission{}, invalid(fmt.Sprintf("Must provide exactly %d values", fairsplit.N))
	}

	var vec fairsplit.Vector3
	for r, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return store.Submission{}, invalid("Values must be non-negative numbers")
		}
		vec[r] = x
	}
	if !fairsplit.SumMatches(vec.Sum(), s.totalRent) {
		return store.Submission{}, invalid(fmt.Sprintf("Total must equal %s", formatAmount(s.totalRent)))
	}

	sub, err := s.store.AppendSubmission(ctx, store.Submission{Name: name, Values: vec}, fairsplit.N)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateSubmitter) || errors.Is(err, store.ErrRoundFull) {
			return store.Submission{}, err
		}
		return store.Submission{}, fmt.Errorf("store submission: %w", err)
	}
	return sub, nil
}

// Submissions returns the round's submissions in the order they arrived.
func (s *Service) Submissions(ctx context.Context) ([]store.Submission, error) {
	return s.store.ListSubmissions(ctx)
}

// Calculate runs the engine over the round's three submissions and records
// the split. Person i is the i-th submission in arrival order.
func (s *Service) Calculate(ctx context.Context) (Result, error) {
	subs, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(subs) != fairsplit.N {
		return Result{}, fmt.Errorf("%w: have %d", ErrRoundIncomplete, len(subs))
	}

	var names [fairsplit.N]string
	var v fairsplit.Valuations
	for i, sub := range subs {
		names[i] = sub.Name
		v[i] = sub.Values
	}

	sol, err := s.engine.Compute(v, s.totalRent)
	if err != nil {
		return Result{}, fmt.Errorf("compute split: %w", err)
	}

	inputID, err := canonical.InputID(v, s.totalRent)
	if err != nil {
		return Result{}, fmt.Errorf("fingerprint input: %w", err)
	}
	splitID, err := canonical.SplitID(v, s.totalRent, sol)
	if err != nil {
		return Result{}, fmt.Errorf("fingerprint split: %w", err)
	}

	inserted, err := s.store.RecordSplit(ctx, store.SplitRecord{
		ID:         splitID,
		InputID:    inputID,
		Names:      names,
		Valuations: v,
		TotalRent:  s.totalRent,
		Solution:   sol,
	})
	if err != nil {
		return Result{}, fmt.Errorf("record split: %w", err)
	}
	s.logger.Info("split recorded",
		zap.String("split_id", splitID),
		zap.String("method", string(sol.Method)),
		zap.Bool("new", inserted),
	)

	return NewResult(splitID, names, s.rooms, v, s.totalRent, sol), nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Reset clears the round's submissions. Split history is kept.
func (s *Service) Reset(ctx context.Context) (int64, error) {
	n, err := s.store.ResetSubmissions(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("round reset", zap.Int64("removed", n))
	return n, nil
}

// History returns every split computed so far, oldest first.
func (s *Service) History(ctx context.Context) ([]store.SplitRecord, error) {
	return s.store.ListSplits(ctx)
}

// formatAmount prints whole amounts without a fractional part.
func formatAmount(x float64) string {
	if x == math.Trunc(x) {
		return fmt.Sprintf("%.0f", x)
	}
	return fmt.Sprintf("%.2f", x)
}
