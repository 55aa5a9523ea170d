package promise

// All combines an ordered list of promises into one promise for the ordered
// list of their values. Inputs are visited strictly in argument order, one
// at a time: an already-settled promise is inspected in place, a pending one
// suspends the walk until it settles. The first in-order rejection rejects
// the combined promise and abandons the rest of the walk; outcomes of
// promises past that point are never observed. Values accumulate in argument
// order no matter when each input settles. An empty input resolves
// immediately to an empty list.
//
// All is built purely on the exported Promise API.
func All(promises ...*Promise) *Promise {
	combined := Pending()

	values := make([]interface{}, 0, len(promises))

	// Walks the inputs from index from, looping over settled promises and
	// parking on the first pending one. Parking attaches handlers that
	// re-enter the walk on the resolver's stack, so the walk itself never
	// recurses over the input.
	var walk func(from int)
	walk = func(from int) {
		for i := from; i < len(promises); i++ {
			current := promises[i]

			if StatePending == current.State() {
				resume := i + 1

				current.Then(func(value interface{}) (interface{}, error) {
					values = append(values, value)
					walk(resume)

					return nil, nil
				})
				current.Catch(func(reason error) {
					_ = combined.Reject(reason)
				})

				return
			}

			value, reason := current.Result()
			if StateRejected == current.State() {
				_ = combined.Reject(reason)

				return
			}

			values = append(values, value)
		}

		_ = combined.Resolve(values)
	}

	walk(0)

	return combined
}
