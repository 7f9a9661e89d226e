// Package aierr defines the error taxonomy of the AI runtime core. Of the
// core's APIs only group coordination (Manager.AddMember) returns these
// errors; the blackboard reports a full store with a false return, and the
// agent pool and trace ring have no failing operation.
//
// Tree and node code never returns these: per spec, a node's failure is
// expressed as Status Failure, never a Go error. These sentinels exist only
// for APIs that have a genuine constructive failure mode outside tick().
package aierr

import "errors"

var (
	// ErrInvalidArgument covers nil roots, negative dt where positive is
	// required, and zero capacities.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapacityExhausted covers blackboard, group roster, and trace
	// capacity limits. Each caller documents whether it returns this error
	// or silently no-ops (see the component's doc comment).
	ErrCapacityExhausted = errors.New("capacity exhausted")

	// ErrTypeMismatch covers a blackboard read that finds a different
	// variant than requested. Readers normally surface this as "not
	// present" rather than returning it; it exists for callers that want
	// to distinguish "absent" from "wrong type".
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotFound covers a key lookup miss.
	ErrNotFound = errors.New("not found")
)
