package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so callers can branch on
// the failure kind without string matching.
const (
	codeMessageRejected = "MESSAGE_REJECTED"
	codeRunCanceled     = "RUN_CANCELED"
	codeRunTimedOut     = "RUN_TIMED_OUT"
	codeRunContextError = "RUN_CONTEXT_FAILED"
	codeRunFailed       = "RUN_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "message failed validation").
		WithTextCode(codeMessageRejected)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command run canceled").
			WithTextCode(codeRunCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command run timed out").
			WithTextCode(codeRunTimedOut)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command run context failed").
			WithTextCode(codeRunContextError)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command run failed").
		WithTextCode(codeRunFailed)
}
