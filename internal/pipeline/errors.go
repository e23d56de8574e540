package pipeline

import "fmt"

// Stage names the pipeline step where a structural failure occurred.
type Stage string

const (
	StageRead       Stage = "read"
	StageTranscribe Stage = "transcribe"
	StageParse      Stage = "parse"
	StageBind       Stage = "bind"
	StageReport     Stage = "report"
)

// ProcessError is a structural failure: something that prevents any
// further useful computation on the document. Row-level anomalies are
// never ProcessErrors; they stay in the table as annotations. The
// worker inspects the stage to decide whether to requeue or reject the
// source file.
type ProcessError struct {
	Stage  Stage
	Reason string
	Err    error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pipeline: %s: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("pipeline: %s: %s", e.Stage, e.Reason)
}

func (e *ProcessError) Unwrap() error { return e.Err }
