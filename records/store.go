package records

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("run not found")

// Store persists finished simulation runs.
type Store interface {
	Close() error
	Migrate() error
	SaveRun(run *Run) error
	GetRun(id string) (*Run, error)
	ListRuns(query RunsQuery) (*RunsList, error)
	TopRuns(limit int) ([]Run, error)
}

// RunsQuery represents query parameters for listing runs
type RunsQuery struct {
	Cause   string
	Page    int
	PerPage int
}

// RunsList represents a paginated runs response
type RunsList struct {
	Runs       []Run
	TotalCount int
	Page       int
	PerPage    int
	TotalPages int
}

// Run is one finished game: the configuration that produced it and how
// it ended.
type Run struct {
	ID         string
	Seed       int64
	HalfWidth  int
	HalfHeight int
	CellSize   int
	TickRate   int
	Ticks      uint64
	Score      int
	Cause      string
	Policy     string
	StartedAt  time.Time
	FinishedAt time.Time
	CreatedAt  time.Time
}
