package operation

import (
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/storage"
)

// UpsertQuorumSnapshot stores the snapshot under the given snapshot key
// (see llmq.SnapshotKey).
// No errors are expected during normal operation.
func UpsertQuorumSnapshot(w storage.Writer, snapshotKey flow.Identifier, snapshot *llmq.Snapshot) error {
	return UpsertByKey(w, MakePrefix(codeQuorumSnapshot, snapshotKey), snapshot)
}

// RetrieveQuorumSnapshot retrieves the snapshot stored under the given snapshot key.
// Error returns:
//   - [storage.ErrNotFound] if no snapshot is stored under the key
func RetrieveQuorumSnapshot(r storage.Reader, snapshotKey flow.Identifier, snapshot *llmq.Snapshot) error {
	return RetrieveByKey(r, MakePrefix(codeQuorumSnapshot, snapshotKey), snapshot)
}
