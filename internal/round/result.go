package round

import (
	"github.com/Zedonkay/rent/internal/fairsplit"
)

// PersonAssignment is one person's room and rent.
type PersonAssignment struct {
	Person    string  `json:"person"`
	Room      string  `json:"room"`
	RoomIndex int     `json:"room_index"`
	Valuation float64 `json:"valuation"`
	Rent      float64 `json:"rent"`
	// Surplus is valuation minus rent.
	Surplus float64 `json:"surplus"`
}

// Result is a computed split in the shape the API and CLI present it.
type Result struct {
	SplitID     string               `json:"split_id"`
	Method      fairsplit.Method     `json:"method"`
	Explanation string               `json:"explanation"`
	EnvyFree    bool                 `json:"envy_free"`
	TotalRent   float64              `json:"total_rent"`
	Assignments []PersonAssignment   `json:"assignments"`
	Prices      fairsplit.Prices     `json:"prices"`
	Names       [fairsplit.N]string  `json:"names"`
	Valuations  fairsplit.Valuations `json:"valuations"`
	Rooms       [fairsplit.N]string  `json:"rooms"`
}

// NewResult assembles a Result from a solution.
func NewResult(splitID string, names, rooms [fairsplit.N]string, v fairsplit.Valuations, totalRent float64, sol fairsplit.Solution) Result {
	assignments := make([]PersonAssignment, fairsplit.N)
	for i := range fairsplit.N {
		r := sol.Assignment[i]
		assignments[i] = PersonAssignment{
			Person:    names[i],
			Room:      rooms[r],
			RoomIndex: r,
			Valuation: v[i][r],
			Rent:      sol.Prices[r],
			Surplus:   sol.Utility(v, i, r),
		}
	}
	return Result{
		SplitID:     splitID,
		Method:      sol.Method,
		Explanation: Explanation(sol.Method),
		EnvyFree:    fairsplit.EnvyFree(v, sol, fairsplit.Tolerance),
		TotalRent:   totalRent,
		Assignments: assignments,
		Prices:      sol.Prices,
		Names:       names,
		Valuations:  v,
		Rooms:       rooms,
	}
}

// Explanation describes how a method arrived at its split.
func Explanation(m fairsplit.Method) string {
	switch m {
	case fairsplit.MethodExact:
		return "An envy-free split was found. At these rents nobody would rather have " +
			"someone else's room at someone else's rent."
	case fairsplit.MethodSequential:
		return "No envy-free split exists for these valuations. Rooms were picked in " +
			"submission order: the first two people each took their favourite remaining " +
			"room at their own valuation, and the last person pays what is left."
	case fairsplit.MethodMinimumEnvy:
		return "No envy-free split exists for these valuations. The assignment with the " +
			"least total envy was chosen and rent is shared in proportion to how much " +
			"each person values their room."
	default:
		return ""
	}
}
