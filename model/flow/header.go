package flow

// ChainID defines the chain a block belongs to.
type ChainID string

const (
	Mainnet ChainID = "mainnet"
	Testnet ChainID = "testnet"
	Devnet  ChainID = "devnet"
	Regtest ChainID = "regtest"
)

// Chains returns all known chain IDs.
func Chains() []ChainID {
	return []ChainID{Mainnet, Testnet, Devnet, Regtest}
}

func (c ChainID) String() string {
	return string(c)
}

// Header contains all meta-data of a block that is needed to place it in the
// chain: its parent and its height.
type Header struct {
	// ChainID is the chain the block was produced on.
	ChainID ChainID
	// ParentID is the ID of this block's parent.
	ParentID Identifier
	// Height is the height of the block in the chain, the genesis block has
	// height zero.
	Height uint64
	// Timestamp is the proposal time in Unix milliseconds.
	Timestamp uint64
}

// ID returns a unique ID to singularly identify the header.
func (h Header) ID() Identifier {
	return MakeID(h)
}

// GenesisTime is the timestamp used for all genesis headers (Unix ms).
const GenesisTime uint64 = 1390095618000

// Genesis returns the header of the genesis block for the given chain.
func Genesis(chainID ChainID) *Header {
	return &Header{
		ChainID:   chainID,
		ParentID:  ZeroID,
		Height:    0,
		Timestamp: GenesisTime,
	}
}
