package llmq

import (
	"fmt"

	"github.com/onflow/flow-qrinfo/model/flow"
)

// QuorumType identifies a long-living masternode quorum configuration.
type QuorumType uint8

const (
	TypeNone        QuorumType = 0
	Type50_60       QuorumType = 1   // 50 members, 30 (60%) threshold, one per hour
	Type400_60      QuorumType = 2   // 400 members, 240 (60%) threshold, one every 12 hours
	Type400_85      QuorumType = 3   // 400 members, 340 (85%) threshold, one every 24 hours
	Type100_67      QuorumType = 4   // 100 members, 67 (67%) threshold, one per hour
	Type60_75       QuorumType = 5   // 60 members, 45 (75%) threshold, rotating, one every 12 hours
	TypeTest        QuorumType = 100 // 3 members, 2 (66%) threshold, one per hour
	TypeDevnet      QuorumType = 101 // 12 members, 6 (50%) threshold, one per hour
	TypeTestV17     QuorumType = 102 // 3 members, 2 (66%) threshold, one per hour
	TypeTestDIP0024 QuorumType = 103 // 4 members, 2 (66%) threshold, rotating, one per hour
)

// Params are the constant parameters of one quorum type.
type Params struct {
	Type QuorumType
	Name string
	// Size is the number of members of a quorum.
	Size uint
	// Threshold is the minimum number of valid members for a recovered signature.
	Threshold uint
	// DKGInterval is the number of blocks between two DKG sessions. It is the
	// cycle length of rotating quorums.
	DKGInterval uint64
	// Rotation is set for quorum types using the rotation scheme.
	Rotation bool
}

var knownParams = map[QuorumType]Params{
	Type50_60:       {Type: Type50_60, Name: "llmq_50_60", Size: 50, Threshold: 30, DKGInterval: 24},
	Type400_60:      {Type: Type400_60, Name: "llmq_400_60", Size: 400, Threshold: 240, DKGInterval: 24 * 12},
	Type400_85:      {Type: Type400_85, Name: "llmq_400_85", Size: 400, Threshold: 340, DKGInterval: 24 * 24},
	Type100_67:      {Type: Type100_67, Name: "llmq_100_67", Size: 100, Threshold: 67, DKGInterval: 24},
	Type60_75:       {Type: Type60_75, Name: "llmq_60_75", Size: 60, Threshold: 45, DKGInterval: 24 * 12, Rotation: true},
	TypeTest:        {Type: TypeTest, Name: "llmq_test", Size: 3, Threshold: 2, DKGInterval: 24},
	TypeDevnet:      {Type: TypeDevnet, Name: "llmq_devnet", Size: 12, Threshold: 6, DKGInterval: 24},
	TypeTestV17:     {Type: TypeTestV17, Name: "llmq_test_v17", Size: 3, Threshold: 2, DKGInterval: 24},
	TypeTestDIP0024: {Type: TypeTestDIP0024, Name: "llmq_test_dip0024", Size: 4, Threshold: 2, DKGInterval: 24, Rotation: true},
}

// ParamsByType returns the parameters of a known quorum type.
func ParamsByType(quorumType QuorumType) (Params, bool) {
	params, ok := knownParams[quorumType]
	return params, ok
}

// ParseQuorumType looks up a quorum type by its name (e.g. "llmq_50_60").
func ParseQuorumType(name string) (QuorumType, error) {
	for t, params := range knownParams {
		if params.Name == name {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("unknown quorum type %q", name)
}

func (t QuorumType) String() string {
	params, ok := knownParams[t]
	if !ok {
		return fmt.Sprintf("llmq_unknown_%d", uint8(t))
	}
	return params.Name
}

// Consensus holds the quorum configuration of one chain.
type Consensus struct {
	ChainID flow.ChainID
	// InstantSendQuorumType is the quorum type used for instant transaction
	// finality. Rotation info is only served for this type.
	InstantSendQuorumType QuorumType
	Quorums               map[QuorumType]Params
}

// CycleLength returns the DKG interval of the given quorum type on this chain.
// It errors if the type is not enabled on the chain.
func (c *Consensus) CycleLength(quorumType QuorumType) (uint64, error) {
	params, ok := c.Quorums[quorumType]
	if !ok {
		return 0, fmt.Errorf("quorum type %v is not enabled on chain %v", quorumType, c.ChainID)
	}
	if params.DKGInterval == 0 {
		return 0, fmt.Errorf("quorum type %v has zero dkg interval", quorumType)
	}
	return params.DKGInterval, nil
}

func newConsensus(chainID flow.ChainID, instantSend QuorumType, types ...QuorumType) *Consensus {
	quorums := make(map[QuorumType]Params, len(types))
	for _, t := range types {
		quorums[t] = knownParams[t]
	}
	return &Consensus{
		ChainID:               chainID,
		InstantSendQuorumType: instantSend,
		Quorums:               quorums,
	}
}

// ConsensusForChain returns the quorum configuration of the given chain.
func ConsensusForChain(chainID flow.ChainID) (*Consensus, error) {
	switch chainID {
	case flow.Mainnet:
		return newConsensus(chainID, Type50_60, Type50_60, Type400_60, Type400_85, Type100_67), nil
	case flow.Testnet:
		return newConsensus(chainID, Type50_60, Type50_60, Type400_60, Type400_85, Type100_67), nil
	case flow.Devnet:
		return newConsensus(chainID, TypeDevnet, TypeDevnet, Type50_60, Type400_60, Type400_85), nil
	case flow.Regtest:
		return newConsensus(chainID, TypeTest, TypeTest, TypeTestV17, TypeTestDIP0024), nil
	default:
		return nil, fmt.Errorf("unknown chain id %q", chainID)
	}
}
