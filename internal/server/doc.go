// Package server provides the HTTP server for the PWSBoard dashboard.
//
// This package is internal to PWSBoard and handles all HTTP concerns:
//
//   - Dashboard: the page at "/" with the year and state dropdowns
//   - Reactive updates: datastar SSE endpoints "/sse/map" and "/sse/line",
//     invoked by the page whenever a dropdown changes
//   - JSON API: "/api/meta", "/api/figures/map" and "/api/figures/line"
//   - Exports: "/export/data.csv", "/export/data.xlsx", "/export/line.png"
//
// All handlers read the same immutable dataset, so requests are served
// concurrently without locking. The server supports graceful shutdown via
// context cancellation with a 5-second timeout for in-flight requests.
package server
