package fairsplit

import (
	"math/rand"
	"sync"
	"time"
)

// rotation is a perfect rotation: each person favours a different room.
var rotation = Valuations{
	{800, 700, 880},
	{700, 880, 800},
	{880, 800, 700},
}

// contested has everyone wanting room 0 and nothing else.
var contested = Valuations{
	{2380, 0, 0},
	{2380, 0, 0},
	{2380, 0, 0},
}

const testRent = 2380.0

// randomValuations draws n well-formed inputs from a fixed seed.
func randomValuations(seed int64, n int, totalRent float64) []Valuations {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Valuations, n)
	for k := range out {
		for i := 0; i < N; i++ {
			var raw Vector3
			for r := range raw {
				raw[r] = rng.Float64()
			}
			sum := raw.Sum()
			for r := range raw {
				out[k][i][r] = totalRent * raw[r] / sum
			}
			// absorb rounding in the last entry
			out[k][i][N-1] = totalRent - out[k][i][0] - out[k][i][1]
		}
	}
	return out
}

func neverFeasible(Valuations, Assignment, float64) (Prices, bool) {
	return Prices{}, false
}

type recordingObserver struct {
	mu     sync.Mutex
	checks []bool
	splits []Method
	errors []ErrorCode
}

func (o *recordingObserver) ObserveFeasibilityCheck(feasible bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.checks = append(o.checks, feasible)
}

func (o *recordingObserver) ObserveSplit(method Method, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.splits = append(o.splits, method)
}

func (o *recordingObserver) ObserveError(code ErrorCode) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.errors = append(o.errors, code)
}
