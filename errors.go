package promise

import "github.com/pkg/errors"

// ErrAlreadyResolved is reported when Resolve or Reject is called on a
// promise that has already settled. The settled outcome is never changed by
// such a call.
var ErrAlreadyResolved = errors.New("promise is already resolved")

func errAlreadyResolved(state State) error {
	return errors.Wrapf(ErrAlreadyResolved, "promise is %s", state)
}

func recoveredError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}

	return errors.Errorf("%+v", r)
}
