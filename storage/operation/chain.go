package operation

import (
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/storage"
)

// InsertGenesisBlockID stores the ID of the genesis block. It can only be set once.
func InsertGenesisBlockID(rw storage.ReaderBatchWriter, blockID flow.Identifier) error {
	return InsertByKey(rw, MakePrefix(codeGenesisBlock), blockID)
}

func RetrieveGenesisBlockID(r storage.Reader, blockID *flow.Identifier) error {
	return RetrieveByKey(r, MakePrefix(codeGenesisBlock), blockID)
}

// UpdateChainTip sets the ID of the tip of the active chain.
func UpdateChainTip(w storage.Writer, blockID flow.Identifier) error {
	return UpsertByKey(w, MakePrefix(codeChainTip), blockID)
}

func RetrieveChainTip(r storage.Reader, blockID *flow.Identifier) error {
	return RetrieveByKey(r, MakePrefix(codeChainTip), blockID)
}
