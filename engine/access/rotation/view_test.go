package rotation_test

import (
	"fmt"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/state/chain"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/utils/unittest"
)

// linearView is an in-memory chain.View over a single chain without forks.
type linearView struct {
	blocks []*flow.Header
	byID   map[flow.Identifier]*flow.Header
}

var _ chain.View = (*linearView)(nil)

func newLinearView(tipHeight int) *linearView {
	genesis := unittest.GenesisFixture()
	v := &linearView{
		blocks: append([]*flow.Header{genesis}, unittest.HeaderChainFixture(genesis, tipHeight)...),
		byID:   make(map[flow.Identifier]*flow.Header),
	}
	for _, block := range v.blocks {
		v.byID[block.ID()] = block
	}
	return v
}

func (v *linearView) Genesis() (*flow.Header, error) {
	return v.blocks[0], nil
}

func (v *linearView) Tip() (*flow.Header, error) {
	return v.blocks[len(v.blocks)-1], nil
}

func (v *linearView) ByBlockID(blockID flow.Identifier) (*flow.Header, error) {
	header, ok := v.byID[blockID]
	if !ok {
		return nil, fmt.Errorf("unknown block %v: %w", blockID, storage.ErrNotFound)
	}
	return header, nil
}

func (v *linearView) Contains(header *flow.Header) (bool, error) {
	_, ok := v.byID[header.ID()]
	return ok, nil
}

func (v *linearView) AncestorAtHeight(header *flow.Header, height uint64) (*flow.Header, error) {
	if height > header.Height {
		return nil, fmt.Errorf("height %d above block height %d: %w", height, header.Height, storage.ErrNotFound)
	}
	return v.blocks[height], nil
}
