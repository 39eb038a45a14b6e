package pipeline

import "fmt"

// Stage names a step of the ingest or export pipeline.
type Stage string

const (
	StageRead    Stage = "read"
	StageParse   Stage = "parse"
	StageSelect  Stage = "select"
	StageColumns Stage = "columns"
	StageExport  Stage = "export"
)

// StageError reports which pipeline stage failed and for which source.
type StageError struct {
	Stage  Stage
	Source string
	Err    error
}

func (e *StageError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Source, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
