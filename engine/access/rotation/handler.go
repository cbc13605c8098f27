package rotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jordanschalm/lockctx"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onflow/flow-qrinfo/engine/common/rpc"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/module"
	"github.com/onflow/flow-qrinfo/storage"
)

// Handler serves rotation info requests. It acquires the chain lock for the
// duration of each build and reports failures as grpc status errors.
type Handler struct {
	log         zerolog.Logger
	builder     *Builder
	lockManager lockctx.Manager
	metrics     module.RotationInfoMetrics
}

func NewHandler(log zerolog.Logger, builder *Builder, lockManager lockctx.Manager, metrics module.RotationInfoMetrics) *Handler {
	return &Handler{
		log:         log.With().Str("component", "rotation_info_handler").Logger(),
		builder:     builder,
		lockManager: lockManager,
		metrics:     metrics,
	}
}

// RotationInfo builds the rotation info for the request. Errors are grpc
// status errors carrying the failure message.
func (h *Handler) RotationInfo(ctx context.Context, req *llmq.GetRotationInfo) (*llmq.RotationInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, rpc.ConvertError(err, "request aborted", codes.Canceled)
	}

	start := time.Now()
	info, err := h.build(req)
	if err != nil {
		reason := failureReason(err)
		h.metrics.RotationInfoFailed(reason)
		h.log.Debug().Err(err).
			Str("block_id", req.BlockRequestHash.String()).
			Str("reason", reason).
			Msg("could not build rotation info")
		return nil, convertError(err)
	}

	h.metrics.RotationInfoBuilt(time.Since(start))
	return info, nil
}

func (h *Handler) build(req *llmq.GetRotationInfo) (*llmq.RotationInfo, error) {
	lctx := h.lockManager.NewContext()
	defer lctx.Release()

	err := lctx.AcquireLock(storage.LockChainState)
	if err != nil {
		return nil, fmt.Errorf("could not acquire chain lock: %w", err)
	}

	return h.builder.Build(lctx, req)
}

// failureReason returns the metrics label for the error.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrRequestMismatch):
		return "request_mismatch"
	case errors.Is(err, ErrGenesisNotFound):
		return "genesis_not_found"
	case errors.Is(err, ErrBlockNotFound):
		return "block_not_found"
	case errors.Is(err, ErrBlockNotInActiveChain):
		return "block_not_in_active_chain"
	case errors.Is(err, ErrTipNotFound):
		return "tip_not_found"
	case IsAncestorNotFoundError(err):
		return "ancestor_not_found"
	case IsSnapshotNotFoundError(err):
		return "snapshot_not_found"
	case IsDiffBuildError(err):
		return "diff_build_failed"
	default:
		return "internal"
	}
}

func convertError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrRequestMismatch):
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	case errors.Is(err, ErrBlockNotInActiveChain):
		return status.Errorf(codes.FailedPrecondition, "%v", err)
	case errors.Is(err, storage.ErrNotFound):
		// genesis, tip, requested and base blocks, ancestors and snapshots
		return rpc.ConvertStorageError(err)
	default:
		return rpc.ConvertError(err, "could not build rotation info", codes.Internal)
	}
}
