package state

import (
	"errors"
	"fmt"

	"github.com/onflow/flow-qrinfo/model/flow"
)

// InvalidExtensionError is returned when a header cannot be attached to the
// block tree: its height does not follow its parent's or it belongs to another
// chain.
type InvalidExtensionError struct {
	BlockID flow.Identifier
	Height  uint64
	err     error
}

func NewInvalidExtensionErrorf(header *flow.Header, msg string, args ...interface{}) error {
	return InvalidExtensionError{
		BlockID: header.ID(),
		Height:  header.Height,
		err:     fmt.Errorf(msg, args...),
	}
}

func (e InvalidExtensionError) Error() string {
	return fmt.Sprintf("invalid extension with block %v at height %d: %v", e.BlockID, e.Height, e.err)
}

func (e InvalidExtensionError) Unwrap() error {
	return e.err
}

func IsInvalidExtensionError(err error) bool {
	var e InvalidExtensionError
	return errors.As(err, &e)
}

// OutdatedExtensionError is returned when a block that is already part of the
// block tree is added again.
type OutdatedExtensionError struct {
	BlockID flow.Identifier
	err     error
}

func NewOutdatedExtensionError(blockID flow.Identifier, err error) error {
	return OutdatedExtensionError{BlockID: blockID, err: err}
}

func (e OutdatedExtensionError) Error() string {
	return fmt.Sprintf("block %v is already stored: %v", e.BlockID, e.err)
}

func (e OutdatedExtensionError) Unwrap() error {
	return e.err
}

func IsOutdatedExtensionError(err error) bool {
	var e OutdatedExtensionError
	return errors.As(err, &e)
}

// UnknownBlockError indicates that a referenced block is not in the block tree.
// It usually wraps storage.ErrNotFound.
type UnknownBlockError struct {
	BlockID flow.Identifier
	err     error
}

func WrapAsUnknownBlockError(blockID flow.Identifier, err error) error {
	return UnknownBlockError{BlockID: blockID, err: err}
}

func (e UnknownBlockError) Error() string {
	return fmt.Sprintf("unknown block %v: %v", e.BlockID, e.err)
}

func (e UnknownBlockError) Unwrap() error { return e.err }

func IsUnknownBlockError(err error) bool {
	var e UnknownBlockError
	return errors.As(err, &e)
}
