package discovery

import (
	"errors"
	"iter"
)

// Yields the factory's adapters in index order. DXGI_ERROR_NOT_FOUND ends the sequence normally,
// while any other failure is yielded once as an *EnumerationError and ends the sequence.
// The consumer owns each yielded adapter and must release it. The sequence cannot be restarted.
func adapterSequence(factory Factory) iter.Seq2[Adapter, error] {
	return indexedSequence(
		func(index uint32) (Adapter, error) {
			return factory.EnumAdapters(index)
		},
		func(index uint32, err error) error {
			return newEnumerationError(ErrAdapterEnumeration, opEnumAdapters1, int(index), -1, err)
		},
	)
}

// Yields an adapter's outputs in index order, with the same exhaustion semantics as adapterSequence
func outputSequence(adapter Adapter, adapterIndex int) iter.Seq2[OutputHandle, error] {
	return indexedSequence(
		func(index uint32) (OutputHandle, error) {
			return adapter.EnumOutputs(index)
		},
		func(index uint32, err error) error {
			return newEnumerationError(ErrOutputEnumeration, opEnumOutputs, adapterIndex, int(index), err)
		},
	)
}

// Walks an index-based enumeration function until it reports exhaustion or failure
func indexedSequence[T any](next func(index uint32) (T, error), fail func(index uint32, err error) error) iter.Seq2[T, error] {
	consumed := false
	return func(yield func(T, error) bool) {

		// A second range over the same sequence yields nothing
		if consumed {
			return
		}
		consumed = true

		for index := uint32(0); ; index += 1 {
			item, err := next(index)

			// Running past the last index is the normal termination signal
			if errors.Is(err, DXGI_ERROR_NOT_FOUND) {
				return
			}

			if err != nil {
				var zero T
				yield(zero, fail(index, err))
				return
			}

			if !yield(item, nil) {
				return
			}
		}
	}
}
