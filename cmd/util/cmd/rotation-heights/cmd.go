package rotationheights

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-qrinfo/cmd/util/cmd/common"
	"github.com/onflow/flow-qrinfo/engine/access/rotation"
	"github.com/onflow/flow-qrinfo/model/flow"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/utils/merr"
)

var flagBlockID string

var Cmd = &cobra.Command{
	Use:   "rotation-heights",
	Short: "print the cycle blocks a rotation info response for the given block would use",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVar(&flagBlockID, "block-id", "", "ID of the requested block (defaults to the chain tip)")
}

type cycleBlock struct {
	Position string `json:"position"`
	Height   uint64 `json:"height"`
	BlockID  string `json:"block_id"`
}

func run(*cobra.Command, []string) (errToReturn error) {
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

	cycleLength, err := storages.Consensus.CycleLength(storages.Consensus.InstantSendQuorumType)
	if err != nil {
		return err
	}

	lctx := storage.MakeSingletonLockManager().NewContext()
	defer lctx.Release()
	err = lctx.AcquireLock(storage.LockChainState)
	if err != nil {
		return fmt.Errorf("could not acquire chain lock: %w", err)
	}

	tip, err := storages.State.Tip()
	if err != nil {
		return fmt.Errorf("could not read chain tip: %w", err)
	}
	target := tip
	if flagBlockID != "" {
		blockID, err := flow.HexStringToIdentifier(flagBlockID)
		if err != nil {
			return fmt.Errorf("malformed block id: %w", err)
		}
		target, err = storages.State.ByBlockID(blockID)
		if err != nil {
			return fmt.Errorf("could not read block %v: %w", blockID, err)
		}
	}

	cycle, err := rotation.ResolveCycleBlocks(storages.State, tip, target, cycleLength)
	if err != nil {
		return err
	}

	log.Info().
		Uint64("tip_height", tip.Height).
		Uint64("target_height", target.Height).
		Uint64("cycle_length", cycleLength).
		Msg("resolved cycle blocks")

	positions := []rotation.Position{
		rotation.PositionH,
		rotation.PositionHMinusC,
		rotation.PositionHMinus2C,
		rotation.PositionHMinus3C,
	}
	blocks := make([]cycleBlock, 0, len(positions))
	for _, position := range positions {
		header := cycle.At(position)
		blocks = append(blocks, cycleBlock{
			Position: position.String(),
			Height:   header.Height,
			BlockID:  header.ID().String(),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(blocks)
}
