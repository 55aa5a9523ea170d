package promise

// Promise is a single-assignment deferred value. It owns no goroutines and
// takes no locks: every handler runs synchronously on whichever call stack
// settles the promise (or attaches a handler to an already-settled one).
// Callers sharing a promise between goroutines must synchronize externally.
type Promise struct {
	state State
	value interface{}
	err   error

	onFulfilled []func(value interface{})
	onRejected  []func(reason error)

	// cancelHandler points at the promise this one was derived from, or at
	// whatever Canceler the caller installed. It is non-owning: cancelling
	// never settles or frees the target.
	cancelHandler Canceler
	onCancel      func()
}

func Pending() *Promise {
	return &Promise{
		state: StatePending,
	}
}

func Resolve(value interface{}) *Promise {
	return &Promise{
		state: StateFulfilled,
		value: value,
	}
}

func Reject(reason error) *Promise {
	return &Promise{
		state: StateRejected,
		err:   reason,
	}
}

// New runs resolver synchronously with resolve/reject bound to the new
// promise. A panic inside resolver is recovered and rejects the promise, so
// a failing resolver can never leave it pending.
func New(resolver func(resolve Resolver, reject Rejector)) (p *Promise) {
	p = Pending()

	defer func() {
		if r := recover(); nil != r {
			_ = p.Reject(recoveredError(r))
		}
	}()

	resolver(
		func(value interface{}) { _ = p.Resolve(value) },
		func(reason error) { _ = p.Reject(reason) },
	)

	return p
}

func (p *Promise) State() State {
	return p.state
}

func (p *Promise) Result() (value interface{}, err error) {
	return p.value, p.err
}

// Resolve settles the promise as fulfilled and drains its fulfillment
// handlers in attachment order. Settling an already-settled promise reports
// ErrAlreadyResolved and leaves the published outcome untouched.
func (p *Promise) Resolve(value interface{}) error {
	if StatePending != p.state {
		return errAlreadyResolved(p.state)
	}

	p.state = StateFulfilled
	p.value = value

	callbacks := p.onFulfilled
	p.onFulfilled, p.onRejected = nil, nil

	for _, callback := range callbacks {
		callback(value)
	}

	return nil
}

// Reject settles the promise as rejected and drains its rejection handlers
// in attachment order. Same exactly-once contract as Resolve.
func (p *Promise) Reject(reason error) error {
	if StatePending != p.state {
		return errAlreadyResolved(p.state)
	}

	p.state = StateRejected
	p.err = reason

	callbacks := p.onRejected
	p.onFulfilled, p.onRejected = nil, nil

	for _, callback := range callbacks {
		callback(reason)
	}

	return nil
}

// Then derives a new promise from the receiver's eventual value. The new
// promise settles when handler returns: with its result on success, with its
// error (or recovered panic) on failure. A *Promise returned by handler is
// adopted instead, so the derived promise follows the inner one. Receiver
// rejection skips handler and rejects the derived promise with the same
// reason. Cancelling the derived promise propagates to the receiver.
func (p *Promise) Then(handler FulfillHandler) *Promise {
	next := Pending()
	next.cancelHandler = p

	p.addFulfilledCallback(func(value interface{}) {
		next.settle(handler, value)
	})
	p.addRejectedCallback(func(reason error) {
		_ = next.Reject(reason)
	})

	return next
}

// Catch attaches a rejection observer to the promise itself and returns the
// same promise. It does not derive a new value; it only witnesses failure.
func (p *Promise) Catch(handler RejectHandler) *Promise {
	p.addRejectedCallback(handler)

	return p
}

// Finally attaches an observer invoked on either outcome, ignoring the
// payload, and returns the same promise.
func (p *Promise) Finally(handler FinallyHandler) *Promise {
	p.addFulfilledCallback(func(interface{}) { handler() })
	p.addRejectedCallback(func(error) { handler() })

	return p
}

func (p *Promise) addFulfilledCallback(callback func(value interface{})) {
	switch p.state {
	case StatePending:
		p.onFulfilled = append(p.onFulfilled, callback)

	case StateFulfilled:
		callback(p.value)
	}
}

func (p *Promise) addRejectedCallback(callback func(reason error)) {
	switch p.state {
	case StatePending:
		p.onRejected = append(p.onRejected, callback)

	case StateRejected:
		callback(p.err)
	}
}

func (p *Promise) settle(handler FulfillHandler, value interface{}) {
	result, err := runFulfillHandler(handler, value)
	if nil != err {
		_ = p.Reject(err)

		return
	}

	if inner, ok := result.(*Promise); ok {
		inner.addFulfilledCallback(func(value interface{}) { _ = p.Resolve(value) })
		inner.addRejectedCallback(func(reason error) { _ = p.Reject(reason) })

		return
	}

	_ = p.Resolve(result)
}

func runFulfillHandler(handler FulfillHandler, value interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); nil != r {
			result, err = nil, recoveredError(r)
		}
	}()

	return handler(value)
}
