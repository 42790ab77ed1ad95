// Package server exposes a rent round over HTTP.
//
// Routes:
//
//	POST /api/submit       {"name": "...", "values": [v0, v1, v2]}
//	GET  /api/submissions  submissions in arrival order
//	GET  /api/calculate    compute (and record) the split
//	POST /api/reset        clear submissions
//	GET  /api/history      every recorded split
//	GET  /health           store reachability
//	GET  /metrics          prometheus exposition, when metrics are enabled
//
// Every /api response is a JSON object with a boolean "success" field.
// Failures carry a human-readable "error" message.
package server
