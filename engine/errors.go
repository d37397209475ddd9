// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"strings"
)

// Machine-readable error codes, stable across the API boundary.
const (
	CodeNotFound            = "not_found"
	CodeTaskClosed          = "task_closed"
	CodeDuplicateSubmission = "duplicate_submission"
	CodeInvalidLabel        = "invalid_label"
	CodeInvalidAmount       = "invalid_amount"
	CodeStorageConflict     = "storage_conflict"
)

// Error is an expected business-rule outcome. These are returned to
// the caller, never treated as fatal, and carry no internal detail.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrTaskNotFound    = &Error{Code: CodeNotFound, Message: "task not found"}
	ErrAccountNotFound = &Error{Code: CodeNotFound, Message: "account not found"}
	ErrTaskClosed      = &Error{Code: CodeTaskClosed, Message: "task is no longer open"}
	ErrDuplicate       = &Error{Code: CodeDuplicateSubmission, Message: "already submitted a label for this task"}
	ErrStorageConflict = &Error{Code: CodeStorageConflict, Message: "storage conflict, retry the request"}
)

// InvalidLabelError reports a label outside the task's permitted options
func InvalidLabelError(valid []string) *Error {
	return &Error{
		Code:    CodeInvalidLabel,
		Message: "label must be one of: " + strings.Join(valid, ", "),
	}
}

// InvalidAmountError reports a malformed or out-of-range bounty
func InvalidAmountError(message string) *Error {
	return &Error{Code: CodeInvalidAmount, Message: message}
}

// CodeOf extracts the machine-readable code from an error, or "" if the
// error is not an engine outcome.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
