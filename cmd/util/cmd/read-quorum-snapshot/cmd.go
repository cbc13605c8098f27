package readquorumsnapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jordanschalm/lockctx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-qrinfo/cmd/util/cmd/common"
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/storage/store"
	"github.com/onflow/flow-qrinfo/utils/merr"
)

var (
	flagBlockID    string
	flagQuorumType string
	flagCandidates uint
)

var Cmd = &cobra.Command{
	Use:   "read-quorum-snapshot",
	Short: "print the quorum snapshot stored for a block",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVar(&flagBlockID, "block-id", "", "ID of the block the snapshot was taken at")
	_ = Cmd.MarkFlagRequired("block-id")

	Cmd.Flags().StringVar(&flagQuorumType, "quorum-type", "",
		"quorum type name, e.g. llmq_60_75 (defaults to the chain's instant send quorum type)")

	Cmd.Flags().UintVar(&flagCandidates, "candidates", 0,
		"size of the candidate list at the block; when set, the snapshot is validated against it")
}

func run(*cobra.Command, []string) (errToReturn error) {
	blockID, err := flow.HexStringToIdentifier(flagBlockID)
	if err != nil {
		return fmt.Errorf("malformed block id: %w", err)
	}

	storages, err := common.InitStorages(log.Logger)
	if err != nil {
		return err
	}
	defer func() {
		errToReturn = merr.CloseAndMergeError(storages.DB, errToReturn)
	}()
	defer func() {
		if err := storages.LogCacheMetrics(log.Logger); err != nil {
			log.Warn().Err(err).Msg("could not log cache metrics")
		}
	}()

	quorumType := storages.Consensus.InstantSendQuorumType
	if flagQuorumType != "" {
		quorumType, err = llmq.ParseQuorumType(flagQuorumType)
		if err != nil {
			return err
		}
	}

	lctx := storage.MakeSingletonLockManager().NewContext()
	defer lctx.Release()
	err = lctx.AcquireLock(storage.LockChainState)
	if err != nil {
		return fmt.Errorf("could not acquire chain lock: %w", err)
	}

	return writeSnapshot(os.Stdout, lctx, storages.Snapshots, quorumType, blockID, flagCandidates)
}

// writeSnapshot reads the snapshot of quorumType at blockID and writes it to w
// as JSON. A non-zero candidates count is checked against the snapshot first.
func writeSnapshot(
	w io.Writer,
	lctx lockctx.Proof,
	snapshots *store.QuorumSnapshots,
	quorumType llmq.QuorumType,
	blockID flow.Identifier,
	candidates uint,
) error {
	snapshot, err := snapshots.ByBlockID(lctx, quorumType, blockID)
	if err != nil {
		return fmt.Errorf("could not read %v snapshot at block %v: %w", quorumType, blockID, err)
	}

	if candidates > 0 {
		err = snapshot.Validate(candidates)
		if err != nil {
			return fmt.Errorf("invalid %v snapshot at block %v: %w", quorumType, blockID, err)
		}
	}

	log.Info().
		Hex("block_id", blockID[:]).
		Str("quorum_type", quorumType.String()).
		Int("members", len(snapshot.ActiveQuorumMembers)).
		Bool("validated", candidates > 0).
		Msg("snapshot found")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(snapshot)
}
