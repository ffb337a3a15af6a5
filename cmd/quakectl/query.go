package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
	"github.com/couchcryptid/quake-analysis-service/internal/query"
)

var (
	queryStart  string
	queryEnd    string
	queryLat    float64
	queryLon    float64
	queryRadius float64
	querySort   bool
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter earthquake events",
	Long:  "Filters the feed's earthquake events by inclusive date range and/or distance from a point, optionally sorted by magnitude descending.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filters, err := buildFilters(cmd)
		if err != nil {
			return err
		}

		events, err := loadEarthquakes()
		if err != nil {
			return err
		}

		results, err := query.Run(events, filters, querySort)
		if err != nil {
			return err
		}

		if queryJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		for _, e := range results {
			fmt.Printf("%s  %s  M%.2f %s  depth %.1fkm  (%.4f, %.4f)  %s\n",
				e.Time, e.ID, e.Magnitude.Value, e.Magnitude.Units, e.Magnitude.DepthKm,
				e.Location.Latitude, e.Location.Longitude, e.Location.Label)
		}
		fmt.Printf("%d events\n", len(results))
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&queryStart, "start", "", "range start, inclusive (2020-01-02T03:04:05.678Z)")
	queryCmd.Flags().StringVar(&queryEnd, "end", "", "range end, inclusive")
	queryCmd.Flags().Float64Var(&queryLat, "lat", 0, "center latitude")
	queryCmd.Flags().Float64Var(&queryLon, "lon", 0, "center longitude")
	queryCmd.Flags().Float64Var(&queryRadius, "radius", 0, "radius in km, inclusive")
	queryCmd.Flags().BoolVar(&querySort, "sort", false, "sort by magnitude descending")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "emit JSON instead of text")
}

// buildFilters converts the flag groups into engine filters. The date range
// and the geographic circle must each be supplied whole or not at all.
func buildFilters(cmd *cobra.Command) (query.Filters, error) {
	var filters query.Filters

	if (queryStart == "") != (queryEnd == "") {
		return filters, errors.New("--start and --end must be provided together")
	}
	if queryStart != "" {
		start, err := domain.ParseEventTime(queryStart)
		if err != nil {
			return filters, fmt.Errorf("invalid --start: %w", err)
		}
		end, err := domain.ParseEventTime(queryEnd)
		if err != nil {
			return filters, fmt.Errorf("invalid --end: %w", err)
		}
		if start.Compare(end) > 0 {
			return filters, errors.New("--start must not be after --end")
		}
		filters.DateRange = &query.DateRange{Start: start, End: end}
	}

	circleFlags := cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") || cmd.Flags().Changed("radius")
	if circleFlags {
		if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") || !cmd.Flags().Changed("radius") {
			return filters, errors.New("--lat, --lon, and --radius must be provided together")
		}
		if queryRadius <= 0 {
			return filters, errors.New("--radius must be positive")
		}
		center, err := domain.NewGeoPoint(queryLat, queryLon, "")
		if err != nil {
			return filters, fmt.Errorf("invalid center: %w", err)
		}
		filters.Radius = &query.RadiusFilter{Center: center, RadiusKm: queryRadius}
	}

	return filters, nil
}
