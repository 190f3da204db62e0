// Package rag holds the shared vocabulary of the question-answering pipeline.
package rag

import "fmt"

type FailureKind string

const (
	FailureNoResults     FailureKind = "no_results"
	FailureProvider      FailureKind = "provider_error"
	FailureConfiguration FailureKind = "configuration_error"
)

// Stage names the pipeline step that failed.
type Stage string

const (
	StageInit     Stage = "init"
	StageEmbed    Stage = "embed"
	StageSearch   Stage = "search"
	StagePrompt   Stage = "prompt"
	StageGenerate Stage = "generate"
)

type PipelineError struct {
	Kind  FailureKind
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s at %s", e.Kind, e.Stage)
	}
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func NewPipelineError(kind FailureKind, stage Stage, err error) *PipelineError {
	return &PipelineError{Kind: kind, Stage: stage, Err: err}
}
