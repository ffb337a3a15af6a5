// Command genfeed generates a deterministic USGS-format feed fixture for
// test suites and local runs. Events cluster around a handful of fault
// regions with a few far-flung outliers, plus a configurable number of
// malformed lines to exercise the skip path.
//
// Usage:
//
//	go run ./cmd/genfeed -out data/mock/feed_2020.csv -events 200 -malformed 5
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

// region is a cluster seed: events scatter around its center within the
// given spread in degrees.
type region struct {
	name     string
	lat, lon float64
	spread   float64
	weight   int
}

var regions = []region{
	{name: "The Geysers CA", lat: 38.82, lon: -122.80, spread: 0.05, weight: 5},
	{name: "Ridgecrest CA", lat: 35.70, lon: -117.55, spread: 0.10, weight: 3},
	{name: "Anchorage AK", lat: 61.35, lon: -150.05, spread: 0.30, weight: 2},
	{name: "Yellowstone WY", lat: 44.43, lon: -110.67, spread: 0.15, weight: 1},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the feed fixture")
	events := flag.Int("events", 200, "number of well-formed event records")
	malformed := flag.Int("malformed", 5, "number of malformed lines to interleave")
	seed := flag.Int64("seed", 20200102, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "time,latitude,longitude,depth,mag,magType,nst,gap,dmin,rms,net,id,updated,place,status,type")

	var weighted []region
	for _, r := range regions {
		for i := 0; i < r.weight; i++ {
			weighted = append(weighted, r)
		}
	}

	interval := 0
	if *malformed > 0 && *events >= *malformed {
		interval = *events / *malformed
	}

	written := 0
	for i := 0; i < *events; i++ {
		r := weighted[rng.Intn(len(weighted))]
		fmt.Fprintln(w, makeRecord(rng, r, i))
		written++

		if interval > 0 && i%interval == interval/2 {
			fmt.Fprintln(w, makeMalformed(rng, i))
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	log.Printf("wrote %d records to %s", written, *out)
	return nil
}

func makeRecord(rng *rand.Rand, r region, i int) string {
	lat := r.lat + (rng.Float64()*2-1)*r.spread
	lon := r.lon + (rng.Float64()*2-1)*r.spread
	depth := 0.5 + rng.Float64()*15
	mag := 0.5 + rng.Float64()*4.5

	// Roughly one non-earthquake record in twenty.
	eventType := "earthquake"
	if rng.Intn(20) == 0 {
		eventType = "quarry blast"
	}

	return fmt.Sprintf(
		"2020-%02d-%02dT%02d:%02d:%02d.%03dZ,%.4f,%.4f,%.2f,%.2f,md,%d,%d,%.4f,%.2f,nc,nc%08d,2020-01-02T00:00:00.000Z,%s,automatic,%s",
		1+rng.Intn(12), 1+rng.Intn(28), rng.Intn(24), rng.Intn(60), rng.Intn(60), rng.Intn(1000),
		lat, lon, depth, mag,
		5+rng.Intn(40), rng.Intn(180), rng.Float64(), rng.Float64(),
		72000000+i, r.name, eventType,
	)
}

// makeMalformed produces lines the parser must drop: truncated records,
// non-numeric coordinates, and garbled timestamps.
func makeMalformed(rng *rand.Rand, i int) string {
	switch rng.Intn(3) {
	case 0:
		return fmt.Sprintf("2020-01-02T03:04:05.678Z,38.8,-122.8,2.9,1.3,md,nc%08d", 90000000+i)
	case 1:
		return fmt.Sprintf("2020-01-02T03:04:05.678Z,not-a-latitude,-122.8,2.9,1.3,md,15,73,0.01,0.03,nc,nc%08d,2020-01-02T00:00:00.000Z,Nowhere,automatic,earthquake", 90000000+i)
	default:
		return fmt.Sprintf("Jan 2 2020 3:04am,38.8,-122.8,2.9,1.3,md,15,73,0.01,0.03,nc,nc%08d,2020-01-02T00:00:00.000Z,Nowhere,automatic,earthquake", 90000000+i)
	}
}
