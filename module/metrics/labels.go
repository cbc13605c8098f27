package metrics

const (
	LabelChain    = "chain"
	LabelResource = "resource"
	LabelReason   = "reason"
)

const (
	ResourceUndefined      = "undefined"
	ResourceHeader         = "header"
	ResourceBlockHeight    = "block_height"
	ResourceQuorumSnapshot = "quorum_snapshot"
)
