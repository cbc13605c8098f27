package state

import (
	"errors"
	"fmt"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/storage"
)

// HeaderLookup retrieves block headers by ID, returning an error wrapping
// storage.ErrNotFound for unknown blocks.
type HeaderLookup interface {
	ByBlockID(blockID flow.Identifier) (*flow.Header, error)
}

// Visitor is called on each block of a traversal.
type Visitor = func(header *flow.Header) error

// Condition decides whether a traversal includes a block and moves on to its parent.
type Condition = func(header *flow.Header) (bool, error)

// TraverseBackward visits the blocks from start towards genesis, following
// parent links. The traversal ends at the first block for which include
// returns false (that block is not visited) or after visiting genesis.
// Expected errors during normal operations:
//   - UnknownBlockError if a block on the way is not stored
func TraverseBackward(headers HeaderLookup, start flow.Identifier, include Condition, visit Visitor) error {
	blockID := start
	for {
		header, err := headers.ByBlockID(blockID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return WrapAsUnknownBlockError(blockID, err)
			}
			return fmt.Errorf("could not retrieve block %v: %w", blockID, err)
		}

		ok, err := include(header)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		err = visit(header)
		if err != nil {
			return err
		}
		if header.Height == 0 {
			return nil
		}
		blockID = header.ParentID
	}
}

// TraverseForward visits the same blocks as TraverseBackward, in ascending
// height order. The last visited block is start, unless no block is included.
func TraverseForward(headers HeaderLookup, start flow.Identifier, include Condition, visit Visitor) error {
	var branch []*flow.Header
	err := TraverseBackward(headers, start, include, func(header *flow.Header) error {
		branch = append(branch, header)
		return nil
	})
	if err != nil {
		return err
	}

	for i := len(branch) - 1; i >= 0; i-- {
		err = visit(branch[i])
		if err != nil {
			return err
		}
	}
	return nil
}
