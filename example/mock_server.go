package main

import (
	"encoding/csv"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
)

// mockStates is a sample of states with a rough 2016 base population.
var mockStates = []struct {
	name, code string
	base       int
}{
	{"California", "CA", 38000000},
	{"Texas", "TX", 26500000},
	{"Florida", "FL", 18500000},
	{"New York", "NY", 18000000},
	{"Ohio", "OH", 10500000},
	{"Colorado", "CO", 5300000},
	{"Oregon", "OR", 3400000},
	{"Maine", "ME", 850000},
	{"Vermont", "VT", 360000},
	{"Wyoming", "WY", 480000},
}

// StartMockDataServer serves a synthetic wide CSV at /pws.csv.
//
// One state is left without a 2019 figure so the dashboard shows a gap.
func StartMockDataServer(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pws.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		writeMockCSV(w)
	})

	slog.Info("mock data server starting", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("mock data server stopped", "error", err)
	}
}

func writeMockCSV(w http.ResponseWriter) {
	rng := rand.New(rand.NewSource(2016))

	cw := csv.NewWriter(w)
	header := []string{"State", "Two Letter State"}
	for year := 2016; year <= 2023; year++ {
		header = append(header, strconv.Itoa(year))
	}
	_ = cw.Write(header)

	for _, s := range mockStates {
		row := []string{s.name, s.code}
		pop := float64(s.base)
		for year := 2016; year <= 2023; year++ {
			if s.code == "VT" && year == 2019 {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatInt(int64(pop), 10))
			pop *= 1 + (rng.Float64()-0.4)*0.03
		}
		_ = cw.Write(row)
	}
	cw.Flush()
}
