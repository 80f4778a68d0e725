package main

import "fmt"

// stage is where a run failed. Its value is the exit code.
type stage int

const (
	configStage stage = iota + 2
	inputStage
	parseStage
	filesystemStage
)

func (s stage) String() string {
	switch s {
	case configStage:
		return "configuration"
	case inputStage:
		return "input"
	case parseStage:
		return "parse"
	case filesystemStage:
		return "filesystem"
	default:
		return "0"
	}
}

type stageError struct {
	stage stage
	err   error
}

func (e *stageError) Error() string {
	return fmt.Sprintf("%s error: %s", e.stage, e.err)
}

func (e *stageError) Unwrap() error {
	return e.err
}

func fail(s stage, err error) error {
	return &stageError{stage: s, err: err}
}
