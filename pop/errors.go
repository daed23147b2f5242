package pop

import "strings"

// ErrorList aggregates the non-fatal faults a single tick can raise —
// currently only RunawayFaults, one per character that tripped the
// opcode budget this tick (spec §7 category 2) — so a caller that
// wants every fault from a tick rather than just the first doesn't
// have to thread its own slice through Scheduler.Tick. Adapted from
// cmd/internal/errors' List, trimmed to what the scheduler actually
// needs: faults are collected, never formatted with extra args.
type ErrorList []error

// NewErrorList builds a list from zero or more errors, dropping nils.
func NewErrorList(errs ...error) ErrorList {
	var l ErrorList
	return l.Add(errs...)
}

// Add appends non-nil errors and returns the (possibly new) slice.
func (l ErrorList) Add(errs ...error) ErrorList {
	for _, err := range errs {
		if err != nil {
			l = append(l, err)
		}
	}
	return l
}

// Error joins every fault's message with "; ". An empty ErrorList's
// Error is never called in practice (see Err below); it is defined for
// completeness since ErrorList implements error.
func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Err returns nil for an empty list, or the list itself otherwise —
// the usual idiom for treating a nil-or-empty slice-of-errors as "no
// error" at a call site that wants a plain error.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
