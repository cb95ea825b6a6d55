package quiz

import (
	"time"

	"github.com/abhisek/questioner/internal/pipeline"
)

// stateMsg carries a pipeline state entered by the in-flight run.
type stateMsg pipeline.State

// runDoneMsg is sent when the run finishes, successfully or not.
type runDoneMsg struct {
	Result *pipeline.Result
	Err    error
}

// spinnerTickMsg animates the stage spinner while the run is in flight.
type spinnerTickMsg time.Time
