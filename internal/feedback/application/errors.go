package application

import (
	"errors"
	"fmt"
)

var (
	ErrUploadFailed       = errors.New("UploadFailed")
	ErrPersistFailed      = errors.New("PersistFailed")
	ErrDeleteFailed       = errors.New("DeleteFailed")
	ErrDeleteInFlight     = errors.New("delete already in progress")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	ErrNotFound           = errors.New("feedback not found")
)

// UploadStage names which attachment an upload belongs to.
type UploadStage string

const (
	StageBefore UploadStage = "before"
	StageAfter  UploadStage = "after"
)

// UploadError reports the stage whose upload aborted the submission.
type UploadError struct {
	Stage UploadStage
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("UploadFailed{stage: %s}: %v", e.Stage, e.Err)
}

func (e *UploadError) Unwrap() []error {
	return []error{ErrUploadFailed, e.Err}
}
