// Package instrumented wraps the promise package with lifecycle logging.
// Every promise carries a correlation id, and construction, settlement,
// handler dispatch, and cancellation are logged through hclog. The wrapped
// API mirrors the promise package so it can replace it in imports.
package instrumented

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/deferredkit/promise"
)

// Options configures a promise factory. The zero value logs nowhere and ids
// promises with random UUIDs.
type Options struct {
	// Logger receives lifecycle events at Debug level and contract
	// violations (double settlement) at Warn level.
	Logger hclog.Logger

	// NewID generates correlation ids. Defaults to uuid.NewString.
	NewID func() string
}

// Factory builds instrumented promises sharing one logger and id generator.
type Factory struct {
	logger hclog.Logger
	newID  func() string
}

func NewFactory(opts Options) *Factory {
	logger := opts.Logger
	if nil == logger {
		logger = hclog.NewNullLogger()
	}

	newID := opts.NewID
	if nil == newID {
		newID = uuid.NewString
	}

	return &Factory{
		logger: logger,
		newID:  newID,
	}
}

// Promise decorates promise.Promise with a correlation id and logging. The
// embedded promise is exposed so instrumented and plain promises compose.
type Promise struct {
	*promise.Promise

	id      string
	factory *Factory
}

func (f *Factory) wrap(p *promise.Promise) *Promise {
	wrapped := &Promise{
		Promise: p,
		id:      f.newID(),
		factory: f,
	}

	f.logger.Debug("promise created", "promise_id", wrapped.id, "state", p.State())

	return wrapped
}

func (f *Factory) Pending() *Promise {
	return f.wrap(promise.Pending())
}

func (f *Factory) Resolve(value interface{}) *Promise {
	return f.wrap(promise.Resolve(value))
}

func (f *Factory) Reject(reason error) *Promise {
	return f.wrap(promise.Reject(reason))
}

func (f *Factory) New(resolver func(resolve Resolver, reject Rejector)) *Promise {
	return f.wrap(promise.New(resolver))
}

func (p *Promise) ID() string {
	return p.id
}

func (p *Promise) Resolve(value interface{}) error {
	if err := p.Promise.Resolve(value); nil != err {
		p.factory.logger.Warn("resolve on settled promise", "promise_id", p.id, "error", err)

		return err
	}

	p.factory.logger.Debug("promise fulfilled", "promise_id", p.id)

	return nil
}

func (p *Promise) Reject(reason error) error {
	if err := p.Promise.Reject(reason); nil != err {
		p.factory.logger.Warn("reject on settled promise", "promise_id", p.id, "error", err)

		return err
	}

	p.factory.logger.Debug("promise rejected", "promise_id", p.id, "reason", reason)

	return nil
}

// Then derives an instrumented promise. The new promise gets its own id; the
// handler dispatch is logged against the receiver's id.
func (p *Promise) Then(handler FulfillHandler) *Promise {
	next := p.factory.wrap(p.Promise.Then(func(value interface{}) (interface{}, error) {
		p.factory.logger.Debug("fulfill handler dispatched", "promise_id", p.id)

		result, err := handler(value)
		if inner, ok := result.(*Promise); ok {
			// unwrap so the core adopts the inner promise
			return inner.Promise, err
		}

		return result, err
	}))

	// wrap allocated next around an already-derived promise, whose cancel
	// handler is the plain receiver; re-point it so Cancel logs too.
	next.SetCancelHandler(p)

	return next
}

func (p *Promise) Catch(handler RejectHandler) *Promise {
	p.Promise.Catch(func(reason error) {
		p.factory.logger.Debug("reject handler dispatched", "promise_id", p.id, "reason", reason)

		handler(reason)
	})

	return p
}

func (p *Promise) Finally(handler FinallyHandler) *Promise {
	p.Promise.Finally(func() {
		p.factory.logger.Debug("finally handler dispatched", "promise_id", p.id)

		handler()
	})

	return p
}

func (p *Promise) Cancel() {
	p.factory.logger.Debug("promise cancelled", "promise_id", p.id)

	p.Promise.Cancel()
}

// All mirrors promise.All over instrumented promises.
func (f *Factory) All(promises ...*Promise) *Promise {
	plain := make([]*promise.Promise, len(promises))
	for i, p := range promises {
		plain[i] = p.Promise
	}

	return f.wrap(promise.All(plain...))
}
