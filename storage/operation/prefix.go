package operation

import (
	"encoding/binary"
	"fmt"

	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
)

const (

	// codes for special chain markers
	codeGenesisBlock = 10
	codeChainTip     = 11

	// codes for indexing single identifier by integer
	codeHeightToBlock = 20 // index mapping height to block ID on the active chain

	// codes for entities
	codeHeader = 30

	// codes for quorum data
	codeQuorumSnapshot = 60 // snapshot per (quorum type, block), keyed by llmq.SnapshotKey
)

// MakePrefix builds a database key from a one-byte code and the encoded key parts.
func MakePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, EncodeKeyPart(key)...)
	}
	return prefix
}

// EncodeKeyPart encodes a value to be used as a part of a key to be stored in storage.
// Integers are big-endian encoded, so keys of numerically smaller values sort first.
func EncodeKeyPart(v interface{}) []byte {
	switch i := v.(type) {
	case uint8:
		return []byte{i}
	case uint32:
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, i)
		return b
	case uint64:
		b := make([]byte, 8)
		binary.BigEndian.PutUint64(b, i)
		return b
	case string:
		return []byte(i)
	case flow.Identifier:
		return i[:]
	case flow.ChainID:
		return []byte(i)
	case llmq.QuorumType:
		return []byte{byte(i)}
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}
