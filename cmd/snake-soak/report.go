package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/serpent/snake"
)

type Report struct {
	// Configuration
	Games      int
	MaxTicks   int
	Seed       int64
	HalfWidth  int
	HalfHeight int

	// Results
	TotalTicks     int64
	TotalTime      time.Duration
	TicksPerSecond float64
	GameTime       Stats
	Scores         IntStats
	WallDeaths     int
	SelfDeaths     int
	AgedOut        int
	BestScore      int
	BestScoreSeed  int64
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

type IntStats struct {
	Min     int
	Max     int
	Avg     float64
	Samples []int
}

func (s *IntStats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total int
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = float64(total) / float64(len(s.Samples))
}

// Observe folds one finished game into the report totals.
func (r *Report) Observe(g *gameResult) {
	r.TotalTicks += int64(g.Ticks)
	r.GameTime.Samples = append(r.GameTime.Samples, g.Elapsed)
	r.Scores.Samples = append(r.Scores.Samples, g.Score)

	switch {
	case !g.GameOver:
		r.AgedOut++
	case g.Cause == snake.CauseSelfCollision:
		r.SelfDeaths++
	default:
		r.WallDeaths++
	}

	if len(r.Scores.Samples) == 1 || g.Score > r.BestScore {
		r.BestScore = g.Score
		r.BestScoreSeed = g.Seed
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Snake Soak Report

## Test Configuration
- **Games:** {{.Games}}
- **Max Ticks Per Game:** {{.MaxTicks}}
- **Base Seed:** {{.Seed}}
- **Grid Half Extents:** {{.HalfWidth}} x {{.HalfHeight}} cells

## Simulation Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Test Time:** {{.TotalTime}}
- **Throughput:** {{printf "%.0f" .TicksPerSecond}} ticks/sec
- **Best Score:** {{.BestScore}} (seed {{.BestScoreSeed}})
- **Game Duration:**
  - **Avg:** {{.GameTime.Avg}}
  - **Min:** {{.GameTime.Min}}
  - **Max:** {{.GameTime.Max}}
- **Score Distribution:**
  - **Avg:** {{printf "%.2f" .Scores.Avg}}
  - **Min:** {{.Scores.Min}}
  - **Max:** {{.Scores.Max}}

## Death Causes
- **Wall Collisions:** {{.WallDeaths}}
- **Self Collisions:** {{.SelfDeaths}}
- **Reached Tick Limit:** {{.AgedOut}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
