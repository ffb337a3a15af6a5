// Package feed turns already-decoded raw feed lines into per-record parse
// results. Acquiring the raw bytes (file, topic, HTTP download) is the
// caller's responsibility; this package never owns an external resource.
package feed

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
)

// ParseFeed parses each raw line into a tagged outcome. Malformed lines
// become ParseError values in place, never faults, so one bad record cannot
// corrupt the batch.
func ParseFeed(lines []string) []domain.ParseResult {
	results := make([]domain.ParseResult, 0, len(lines))
	for _, line := range lines {
		event, err := domain.ParseRecord(line)
		results = append(results, domain.ParseResult{Event: event, Err: err})
	}
	return results
}

// Errors collects the parse failures from a batch, for diagnostics.
func Errors(results []domain.ParseResult) []error {
	var errs []error
	for _, r := range results {
		if !r.Ok() {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// ReadLines loads a feed file into raw record lines. Blank lines and the
// standard USGS header line ("time,latitude,...") are skipped; everything
// else passes through untouched for ParseFeed to judge.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "time,") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	return lines, nil
}
