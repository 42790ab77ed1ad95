// Package harness runs rent scenarios as executable conformance tests.
//
// A scenario names three valuation vectors, a total rent and the outcome the
// engine must produce. Scenarios live in YAML files so new cases can be
// added without touching Go code.
//
// # Scenario Format
//
//	name: rotation
//	description: "Each person favours a different room"
//	total_rent: 2380
//	procedure: engine          # engine | exact | sequential | minimum-envy
//	fallback_policy: sequential
//	people:
//	  - name: Alice
//	    values: [800, 700, 880]
//	  - name: Bob
//	    values: [700, 880, 800]
//	  - name: Carol
//	    values: [880, 800, 700]
//	expect:
//	  method: exact
//	  envy_free: true
//	  assignment: [2, 1, 0]
//
// # Procedures
//
//   - engine: the full pipeline with the scenario's fallback policy
//   - exact: the exact search alone; method "none" when nothing is feasible
//   - sequential, minimum-envy: a single heuristic, after input validation
//
// # Expectations
//
// Every expect field is optional, but at least one must be set.
//
//   - method: the solution's method tag, or "none"
//   - error: an engine error code such as INVALID_INPUT
//   - envy_free: whether the solution passes the envy-free check
//   - assignment: room per person
//   - prices: rent per room, compared within one cent
//
// # Golden Files
//
// RunWithGolden snapshots the canonical JSON of an outcome under
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
