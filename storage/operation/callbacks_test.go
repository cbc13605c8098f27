package operation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onflow/flow-qrinfo/storage/operation"
)

func TestCallbacks_NotifyOnceInOrder(t *testing.T) {
	var callbacks operation.Callbacks
	var order []int
	for i := 0; i < 3; i++ {
		callbacks.AddCallback(func(error) {
			order = append(order, i)
		})
	}

	failure := errors.New("failure")
	var received []error
	callbacks.AddCallback(func(err error) {
		received = append(received, err)
	})

	callbacks.NotifyCallbacks(failure)
	callbacks.NotifyCallbacks(nil)

	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, []error{failure}, received)
}
