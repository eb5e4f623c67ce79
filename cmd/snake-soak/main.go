package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/serpent/records"
)

func main() {
	games := flag.Int("games", 100, "The number of games to simulate.")
	maxTicks := flag.Int("max-ticks", 10000, "Tick limit per game before it is cut off.")
	seed := flag.Int64("seed", 1, "Base seed; game n plays with seed+n.")
	halfWidth := flag.Int("half-width", 10, "Grid half width in cells.")
	halfHeight := flag.Int("half-height", 10, "Grid half height in cells.")
	dbPath := flag.String("db", "", "Optional SQLite path for persisting finished runs.")
	quiet := flag.Bool("quiet", false, "Suppress progress logging; the report still prints.")
	flag.Parse()

	if *quiet {
		log.SetOutput(io.Discard)
	}

	log.Println("Starting snake soak test...")

	// 1. Open the optional run record store
	var store records.Store
	if *dbPath != "" {
		sqlStore, err := records.NewSQLiteStore(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open record store: %v", err)
		}
		defer sqlStore.Close()

		if err := sqlStore.Migrate(); err != nil {
			log.Fatalf("Failed to migrate record store: %v", err)
		}

		store = sqlStore
		log.Printf("Recording runs to %s\n", *dbPath)
	}

	// 2. Play the games under the safe-random walker
	report := &Report{
		Games:      *games,
		MaxTicks:   *maxTicks,
		Seed:       *seed,
		HalfWidth:  *halfWidth,
		HalfHeight: *halfHeight,
		GameTime: Stats{
			Samples: make([]time.Duration, 0),
		},
		Scores: IntStats{
			Samples: make([]int, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d games...\n", *games)
	startTime := time.Now()

	for i := 0; i < *games; i++ {
		result, err := playGame(*seed+int64(i), *halfWidth, *halfHeight, *maxTicks)
		if err != nil {
			log.Fatalf("Game %d failed: %v", i, err)
		}

		report.Observe(result)

		if store != nil {
			if err := store.SaveRun(result.record()); err != nil {
				log.Fatalf("Failed to record game %d: %v", i, err)
			}
		}

		if (i+1)%25 == 0 {
			log.Printf("Completed %d/%d games\n", i+1, *games)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TicksPerSecond = float64(report.TotalTicks) / report.TotalTime.Seconds()
	report.GameTime.Finalize()
	report.Scores.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	// 3. Generate report to console
	fmt.Println("\n\n--- Snake Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	// 4. Show the all-time leaderboard when recording
	if store != nil {
		top, err := store.TopRuns(3)
		if err != nil {
			log.Fatalf("Failed to query top runs: %v", err)
		}
		for i, run := range top {
			log.Printf("All-time #%d: score %d in %d ticks (seed %d, %s)\n",
				i+1, run.Score, run.Ticks, run.Seed, run.Cause)
		}
	}

	log.Println("Soak test complete.")
}
