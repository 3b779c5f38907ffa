package model

import "time"

// RunStatus represents the terminal state of a conversion run.
type RunStatus string

const (
	RunStatusComplete    RunStatus = "complete"
	RunStatusFailed      RunStatus = "failed"
	RunStatusNoValidRows RunStatus = "no_valid_rows"
)

// Run records one conversion pass for the history store.
type Run struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Status        RunStatus `json:"status"`
	People        int       `json:"people"`
	Organizations int       `json:"organizations"`
	RowsRead      int       `json:"rows_read"`
	RowsSkipped   int       `json:"rows_skipped"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
