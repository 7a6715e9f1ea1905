// Standalone mock data server for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/pwsboard serve -c example/config.yaml
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

// mockCSV lists a handful of states. Alaska has no 2018 figure and the
// header is deliberately out of year order.
const mockCSV = `State,Two Letter State,2016,2017,2019,2018,2020,2021,2022,2023
Alabama,AL,"4,512,300","4,530,120","4,561,870","4,548,900","4,580,210","4,601,330","4,623,010","4,650,700"
Alaska,AK,512000,515400,521800,,524300,526900,530100,533000
Arizona,AZ,6210000,6302000,6475000,6390500,6560200,6651000,6744800,6832100
Georgia,GA,9120000,9205000,9380000,9290100,9471000,9560300,9650700,9742000
Iowa,IA,2650000,2655100,2668000,2661000,2672400,2679000,2684200,2690100
`

func main() {
	fmt.Println("Mock data server starting on :9999")
	fmt.Println("Dataset: http://localhost:9999/pws.csv")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	http.HandleFunc("/pws.csv", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("dataset requested", "remote", r.RemoteAddr)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = strings.NewReader(mockCSV).WriteTo(w)
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
