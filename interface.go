package promise

type State string

const (
	StatePending   = State("pending")
	StateFulfilled = State("fulfilled")
	StateRejected  = State("rejected")
)

type Resolver func(value interface{})
type Rejector func(reason error)
type FulfillHandler func(value interface{}) (result interface{}, err error)
type RejectHandler func(reason error)
type FinallyHandler func()

// Canceler is the capability required of a cancellation target. Anything
// implementing it can be installed with SetCancelHandler and will be
// notified when a chain rooted at the promise is cancelled.
type Canceler interface {
	Cancel()
}

type Promiser interface {
	Canceler

	Then(handler FulfillHandler) *Promise
	Catch(handler RejectHandler) *Promise
	Finally(handler FinallyHandler) *Promise
	Resolve(value interface{}) error
	Reject(reason error) error
	State() State
	Result() (value interface{}, err error)
}
