package rotation

import (
	"errors"
	"fmt"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/storage"
)

var (
	// ErrInvalidRequest is returned when a request names more base blocks than allowed.
	ErrInvalidRequest = errors.New("invalid rotation info request")
	// ErrRequestMismatch is returned when the base block count of a request
	// differs from the number of supplied base block hashes.
	ErrRequestMismatch = errors.New("base block count does not match supplied hashes")
	// ErrGenesisNotFound is returned when the chain has no genesis block.
	ErrGenesisNotFound = errors.New("genesis block not found")
	// ErrBlockNotFound is returned when a base block or the requested block is unknown.
	ErrBlockNotFound = errors.New("block not found")
	// ErrBlockNotInActiveChain is returned when a base block is known but not
	// part of the active chain.
	ErrBlockNotInActiveChain = errors.New("block not in active chain")
	// ErrTipNotFound is returned when the chain has no tip.
	ErrTipNotFound = errors.New("chain tip not found")
)

// Position names one of the cycle-aligned blocks of a rotation info response.
type Position int

const (
	PositionH Position = iota
	PositionHMinusC
	PositionHMinus2C
	PositionHMinus3C
)

func (p Position) String() string {
	switch p {
	case PositionH:
		return "H"
	case PositionHMinusC:
		return "H-C"
	case PositionHMinus2C:
		return "H-2C"
	case PositionHMinus3C:
		return "H-3C"
	default:
		return fmt.Sprintf("position(%d)", int(p))
	}
}

// AncestorNotFoundError indicates that the block at a cycle-aligned position
// could not be resolved, e.g. because its height would lie before genesis.
type AncestorNotFoundError struct {
	Position Position
	Height   uint64
	err      error
}

func NewAncestorNotFoundError(position Position, height uint64, err error) AncestorNotFoundError {
	return AncestorNotFoundError{Position: position, Height: height, err: err}
}

func (e AncestorNotFoundError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("ancestor at %v (height %d) not found", e.Position, e.Height)
	}
	return fmt.Sprintf("ancestor at %v (height %d) not found: %v", e.Position, e.Height, e.err)
}

func (e AncestorNotFoundError) Unwrap() error {
	return e.err
}

// IsAncestorNotFoundError returns whether the given error is an AncestorNotFoundError error
func IsAncestorNotFoundError(err error) bool {
	var e AncestorNotFoundError
	return errors.As(err, &e)
}

// SnapshotNotFoundError indicates that no quorum snapshot is stored for the
// block at the given position.
type SnapshotNotFoundError struct {
	Position Position
	Height   uint64
	BlockID  flow.Identifier
}

func NewSnapshotNotFoundError(position Position, height uint64, blockID flow.Identifier) SnapshotNotFoundError {
	return SnapshotNotFoundError{Position: position, Height: height, BlockID: blockID}
}

func (e SnapshotNotFoundError) Error() string {
	return fmt.Sprintf("quorum snapshot at %v (height %d, block %v) not found", e.Position, e.Height, e.BlockID)
}

func (e SnapshotNotFoundError) Unwrap() error {
	return storage.ErrNotFound
}

// IsSnapshotNotFoundError returns whether the given error is a SnapshotNotFoundError error
func IsSnapshotNotFoundError(err error) bool {
	var e SnapshotNotFoundError
	return errors.As(err, &e)
}

// DiffBuildError wraps a failure of the masternode list diff builder.
type DiffBuildError struct {
	BaseBlockID flow.Identifier
	BlockID     flow.Identifier
	err         error
}

func NewDiffBuildError(baseBlockID, blockID flow.Identifier, err error) DiffBuildError {
	return DiffBuildError{BaseBlockID: baseBlockID, BlockID: blockID, err: err}
}

func (e DiffBuildError) Error() string {
	return fmt.Sprintf("could not build diff from %v to %v: %v", e.BaseBlockID, e.BlockID, e.err)
}

func (e DiffBuildError) Unwrap() error {
	return e.err
}

// IsDiffBuildError returns whether the given error is a DiffBuildError error
func IsDiffBuildError(err error) bool {
	var e DiffBuildError
	return errors.As(err, &e)
}
