package promise

// Cancel drops the promise's queued handlers and notifies upstream. It does
// not settle the promise: a cancelled pending promise may still be resolved
// or rejected later, it just fires none of the dropped handlers. Cancelling
// an already-settled promise is a no-op beyond the (empty) queue clear.
func (p *Promise) Cancel() {
	if nil != p.cancelHandler {
		p.cancelHandler.Cancel()
	}

	if nil != p.onCancel {
		p.onCancel()
	}

	p.onFulfilled, p.onRejected = nil, nil
}

// SetCancelHandler installs the upstream target notified by Cancel. Then
// sets it to the receiving promise; callers may point it at any Canceler
// instead. The reference is non-owning.
func (p *Promise) SetCancelHandler(handler Canceler) {
	p.cancelHandler = handler
}

// OnCancel installs a local callback run on every Cancel call, independent
// of the upstream handler.
func (p *Promise) OnCancel(callback func()) {
	p.onCancel = callback
}
