// Package fairsplit computes envy-free rent divisions for three people and
// three rooms.
//
// The engine tries three procedures in strict priority order:
//
//  1. Exact search: every assignment of rooms to people is tried in
//     lexicographic order and a linear feasibility problem decides whether a
//     price vector exists that makes that assignment envy-free. The first
//     feasible assignment wins.
//  2. Sequential heuristic: a fixed three-step "last diminisher" style
//     procedure over people 0, 1, 2. Always succeeds, envy-freeness is not
//     guaranteed.
//  3. Minimum-envy heuristic: picks the assignment with the smallest total
//     envy score and prices rooms proportionally to the assignees' own
//     valuations.
//
// Procedures 2 and 3 are alternative fallbacks, never chained. A FallbackPolicy
// selects which one runs when the exact search finds nothing.
//
// # Enumeration Order
//
// Assignments are enumerated as (0,1,2), (0,2,1), (1,0,2), (1,2,0), (2,0,1),
// (2,1,0). The order is the tie-break for "first feasible" and "first
// minimal"; changing it changes results.
//
// # Determinism
//
// Compute is a pure function of its inputs. Valuations are passed by value
// and never mutated. There is no randomness and no shared state, so the engine
// is safe for concurrent use.
package fairsplit
