// Package pwsboard provides an embeddable dashboard of U.S. state populations
// served by public water systems.
//
// At startup PWSBoard downloads a wide CSV (one row per state, one column per
// year), reshapes it into one record per state and year, and serves a single
// page with two linked views: a choropleth map for a selected year and a
// multi-state line chart of population over time. Dropdown changes are pushed
// to the server over datastar SSE requests and the redrawn figure comes back
// on the same stream.
//
// # Quick Start
//
//	pb, _ := pwsboard.New()
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	pb.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// PWSBoard uses the functional options pattern for configuration:
//
//	pb, err := pwsboard.New(
//	    pwsboard.WithSource("https://example.com/pws.csv"),
//	    pwsboard.WithPort(9090),
//	    pwsboard.WithFetchTimeout(10 * time.Second),
//	    pwsboard.WithTitle("Water Systems"),
//	)
//
// The source may also be a local path or file:// URL, and [WithData] supplies
// the CSV directly.
//
// # Data lifecycle
//
// The dataset is loaded exactly once, before the HTTP listener opens. A fetch
// or parse failure aborts [PWSBoard.Start]; there is no retry and no refresh.
// After loading, the data is read-only and shared by all requests.
//
// # Architecture
//
// PWSBoard consists of several internal packages (under internal/):
//
//   - internal/source: Dataset download and loading
//   - internal/dataset: Wide-to-long reshaping and percentile statistics
//   - internal/figure: Choropleth and line chart figures
//   - internal/export: CSV, Excel and PNG exports
//   - internal/server: HTTP routes, datastar SSE handlers and JSON API
//   - dashboard: Embedded page template
//
// The internal packages are not part of the public API and may change
// without notice.
package pwsboard
