package flow

import (
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
	"golang.org/x/crypto/sha3"
)

// Identifier represents a 32-byte unique identifier for an entity.
type Identifier [32]byte

// ZeroID is the lowest value in the 32-byte ID space. It is used as the
// baseline of diffs that start from an empty state.
var ZeroID = Identifier{}

// HexStringToIdentifier converts a hex string to an identifier. The input
// must be 64 characters long and contain only valid hex characters.
func HexStringToIdentifier(hexString string) (Identifier, error) {
	var identifier Identifier
	i, err := hex.Decode(identifier[:], []byte(hexString))
	if err != nil {
		return identifier, err
	}
	if i != 32 {
		return identifier, fmt.Errorf("malformed input, expected 32 bytes (64 characters), decoded %d", i)
	}
	return identifier, nil
}

// MustHexStringToIdentifier converts a hex string to an identifier and panics
// on malformed input.
func MustHexStringToIdentifier(hexString string) Identifier {
	id, err := HexStringToIdentifier(hexString)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the hex string representation of the identifier.
func (id Identifier) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText encodes the identifier as hex, so JSON output carries hashes
// rather than byte arrays.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identifier) UnmarshalText(text []byte) error {
	var err error
	*id, err = HexStringToIdentifier(string(text))
	return err
}

// IsZero returns true if the identifier equals ZeroID.
func (id Identifier) IsZero() bool {
	return id == ZeroID
}

// HashToID converts a 32-byte hash into an identifier.
func HashToID(hash []byte) Identifier {
	var id Identifier
	copy(id[:], hash)
	return id
}

// MakeID creates an ID from the hash of the msgpack encoding of an entity.
// The encoding is deterministic for the fixed-layout structs used in this
// module.
func MakeID(entity interface{}) Identifier {
	data, err := msgpack.Marshal(entity)
	if err != nil {
		panic(fmt.Errorf("could not encode entity for hashing: %w", err))
	}
	return HashToID(hashData(data))
}

func hashData(data ...[]byte) []byte {
	hasher := sha3.New256()
	for _, d := range data {
		_, _ = hasher.Write(d)
	}
	return hasher.Sum(nil)
}
