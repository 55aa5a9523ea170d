package instrumented

import "github.com/deferredkit/promise"

// Alias exported promise package types so instrumented can be used as a
// drop-in replacement for the promise package.
type (
	State          = promise.State
	Resolver       = promise.Resolver
	Rejector       = promise.Rejector
	FulfillHandler = promise.FulfillHandler
	RejectHandler  = promise.RejectHandler
	FinallyHandler = promise.FinallyHandler
	Canceler       = promise.Canceler
)

const (
	StatePending   = promise.StatePending
	StateFulfilled = promise.StateFulfilled
	StateRejected  = promise.StateRejected
)

var ErrAlreadyResolved = promise.ErrAlreadyResolved
