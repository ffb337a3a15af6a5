package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-analysis-service/internal/query"
)

var (
	hotspotRadius float64
	hotspotJSON   bool
)

var hotspotCmd = &cobra.Command{
	Use:   "hotspot",
	Short: "Find the densest earthquake neighborhood",
	Long:  "Ranks every earthquake by how many events fall within the radius of its location and reports the selected center with its neighborhood.",
	RunE: func(_ *cobra.Command, _ []string) error {
		if hotspotRadius <= 0 {
			return errors.New("--radius must be positive")
		}

		events, err := loadEarthquakes()
		if err != nil {
			return err
		}

		center, neighborhood, err := query.Hotspot(events, hotspotRadius)
		if err != nil {
			return err
		}

		if hotspotJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Center       any `json:"center"`
				Neighborhood any `json:"neighborhood"`
			}{center, neighborhood})
		}

		fmt.Printf("center: %s  M%.2f  (%.4f, %.4f)  %s\n",
			center.ID, center.Magnitude.Value,
			center.Location.Latitude, center.Location.Longitude, center.Location.Label)
		fmt.Printf("neighborhood: %d events within %.1fkm\n", len(neighborhood), hotspotRadius)
		for _, e := range neighborhood {
			fmt.Printf("  %s  %s  M%.2f  (%.4f, %.4f)\n",
				e.Time, e.ID, e.Magnitude.Value, e.Location.Latitude, e.Location.Longitude)
		}
		return nil
	},
}

func init() {
	hotspotCmd.Flags().Float64Var(&hotspotRadius, "radius", 10, "neighborhood radius in km, inclusive")
	hotspotCmd.Flags().BoolVar(&hotspotJSON, "json", false, "emit JSON instead of text")
}
