// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Conditions reported by components and the simulator.
//
var (
	// ErrNotData is the cause of errors returned when a non-data signal is
	// used where a concrete value is required.
	ErrNotData = errors.New("signal is not data")
	// ErrNotImplemented is returned by components for recognized but
	// unsupported operations.
	ErrNotImplemented = errors.New("not implemented")
	// ErrInvalidControl is returned by components when a control input
	// carries a value outside of the accepted range.
	ErrInvalidControl = errors.New("invalid control value")
	// ErrNoHistory is returned by UnClock when there is nothing to undo.
	ErrNoHistory = errors.New("no history")
)

// A ComponentError is a condition returned by a single component during a
// clock sweep.
//
type ComponentError struct {
	ID  string
	Err error
}

func (e *ComponentError) Error() string {
	return e.ID + ": " + e.Err.Error()
}

// Cause returns the cause of the component condition.
func (e *ComponentError) Cause() error { return errors.Cause(e.Err) }

// Unwrap returns the condition returned by the component.
func (e *ComponentError) Unwrap() error { return e.Err }

// A SweepError collects all conditions reported by components during a
// single clock sweep.
//
type SweepError struct {
	Cycle      uint64
	Conditions []*ComponentError
}

func (e *SweepError) Error() string {
	var b strings.Builder
	b.WriteString("cycle ")
	b.WriteString(strconv.FormatUint(e.Cycle, 10))
	b.WriteString(": ")
	for i, c := range e.Conditions {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(c.Error())
	}
	return b.String()
}

// Cause returns the cause of the first condition, or nil if there is none.
func (e *SweepError) Cause() error {
	if len(e.Conditions) == 0 {
		return nil
	}
	return e.Conditions[0].Cause()
}

// Unwrap returns the first condition, or nil if there is none.
func (e *SweepError) Unwrap() error {
	if len(e.Conditions) == 0 {
		return nil
	}
	return e.Conditions[0]
}

// Is reports whether any of the conditions has target as its cause.
//
func (e *SweepError) Is(target error) bool {
	for _, c := range e.Conditions {
		if c.Cause() == target {
			return true
		}
	}
	return false
}

// Condition returns the condition reported by the component with the given id,
// or nil.
//
func (e *SweepError) Condition(id string) error {
	for _, c := range e.Conditions {
		if c.ID == id {
			return c
		}
	}
	return nil
}
