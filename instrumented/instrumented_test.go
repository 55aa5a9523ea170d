package instrumented

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func newTestFactory(t *testing.T) (*Factory, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer

	n := 0
	factory := NewFactory(Options{
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "promise",
			Level:  hclog.Debug,
			Output: &buf,
		}),
		NewID: func() string {
			n++

			return fmt.Sprintf("p-%d", n)
		},
	})

	return factory, &buf
}

func TestFactory_Pending(t *testing.T) {
	t.Run("Wrapped promise behaves like a plain one", func(t *testing.T) {
		factory, _ := newTestFactory(t)

		promise := factory.Pending()

		require.Equal(t, StatePending, promise.State())
		require.NoError(t, promise.Resolve(123))
		require.Equal(t, StateFulfilled, promise.State())

		value, err := promise.Result()
		require.Equal(t, 123, value)
		require.NoError(t, err)
	})

	t.Run("Settlement is logged with the promise id", func(t *testing.T) {
		factory, buf := newTestFactory(t)

		promise := factory.Pending()
		require.NoError(t, promise.Resolve(123))

		require.Contains(t, buf.String(), "promise created")
		require.Contains(t, buf.String(), "promise fulfilled")
		require.Contains(t, buf.String(), "p-1")
	})

	t.Run("Double settlement is logged as a warning and reported", func(t *testing.T) {
		factory, buf := newTestFactory(t)

		promise := factory.Resolve(123)

		require.ErrorIs(t, promise.Resolve(456), ErrAlreadyResolved)
		require.Contains(t, buf.String(), "resolve on settled promise")
	})
}

func TestPromise_Then(t *testing.T) {
	t.Run("Chaining transforms values and logs dispatch", func(t *testing.T) {
		factory, buf := newTestFactory(t)

		derived := factory.Resolve(2).Then(func(value interface{}) (interface{}, error) {
			return value.(int) * 10, nil
		})

		value, err := derived.Result()
		require.Equal(t, 20, value)
		require.NoError(t, err)
		require.Contains(t, buf.String(), "fulfill handler dispatched")
	})

	t.Run("Handler returning a wrapped promise is adopted", func(t *testing.T) {
		factory, _ := newTestFactory(t)

		inner := factory.Pending()
		derived := factory.Resolve(123).Then(func(value interface{}) (interface{}, error) {
			return inner, nil
		})

		require.Equal(t, StatePending, derived.State())
		require.NoError(t, inner.Resolve("inner value"))

		value, err := derived.Result()
		require.Equal(t, "inner value", value)
		require.NoError(t, err)
	})

	t.Run("Cancelling a derived promise propagates upstream and logs both", func(t *testing.T) {
		factory, buf := newTestFactory(t)

		parent := factory.Pending()
		fired := false
		derived := parent.Then(func(value interface{}) (interface{}, error) {
			fired = true

			return nil, nil
		})

		derived.Cancel()

		require.NoError(t, parent.Resolve(123))
		require.False(t, fired)
		require.Contains(t, buf.String(), "promise cancelled")
		require.Contains(t, buf.String(), "p-1")
		require.Contains(t, buf.String(), "p-2")
	})
}

func TestPromise_Catch(t *testing.T) {
	t.Run("Rejection dispatch is logged", func(t *testing.T) {
		factory, buf := newTestFactory(t)
		reason := errors.New("error reason")

		var seen error
		factory.Reject(reason).Catch(func(err error) {
			seen = err
		})

		require.Same(t, reason, seen)
		require.Contains(t, buf.String(), "reject handler dispatched")
	})
}

func TestFactory_All(t *testing.T) {
	t.Run("All combines wrapped promises in input order", func(t *testing.T) {
		factory, _ := newTestFactory(t)

		pending := factory.Pending()
		combined := factory.All(factory.Resolve("a"), factory.Resolve("b"), pending)

		require.Equal(t, StatePending, combined.State())
		require.NoError(t, pending.Resolve("c"))

		value, err := combined.Result()
		require.NoError(t, err)
		require.Equal(t, []interface{}{"a", "b", "c"}, value)
	})
}
