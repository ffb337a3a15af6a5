// quakectl runs analytical queries over a local USGS-format feed file
// without standing up the service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
	"github.com/couchcryptid/quake-analysis-service/internal/feed"
	"github.com/couchcryptid/quake-analysis-service/internal/query"
)

var (
	feedPath string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "quakectl",
	Short: "Query earthquake feed files",
	Long:  "Parses a USGS-format CSV feed file and runs date-range, radius, and hotspot queries over the earthquake events it contains.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&feedPath, "feed", "f", "", "path to the feed file (required)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report skipped malformed records on stderr")
	rootCmd.MarkPersistentFlagRequired("feed") //nolint:errcheck // flag is registered above

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(hotspotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadEarthquakes parses the feed file and returns the earthquake subset.
// Malformed records are dropped; with --verbose each one is reported.
func loadEarthquakes() ([]domain.SeismicEvent, error) {
	lines, err := feed.ReadLines(feedPath)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	results := feed.ParseFeed(lines)
	if verbose {
		for _, perr := range feed.Errors(results) {
			fmt.Fprintf(os.Stderr, "skipped: %v\n", perr)
		}
	}

	return query.FilterEarthquakes(results)
}
