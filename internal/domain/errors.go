package domain

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error so callers can map it without string matching.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindForbidden        Kind = "forbidden"
	KindValidation       Kind = "validation"
	KindLedgerCorruption Kind = "ledger_corruption"
	KindInternal         Kind = "internal"
)

// Error is the engine's typed error. Conflict messages are shown to end users
// verbatim, so they must name the offending state ("cancelled", "checked out",
// "no-show") where the lifecycle rules require it.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a missing service, slot, unit, extra or reservation.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// LedgerCorruptionf reports a release that would have pushed a slot above its
// declared capacity. The release itself still commits clamped; the error is
// surfaced so operators see the inconsistency instead of it being swallowed.
func LedgerCorruptionf(format string, args ...any) *Error {
	return &Error{Kind: KindLedgerCorruption, Message: fmt.Sprintf(format, args...)}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsForbidden(err error) bool  { return KindOf(err) == KindForbidden }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsLedgerCorruption(err error) bool { return KindOf(err) == KindLedgerCorruption }
