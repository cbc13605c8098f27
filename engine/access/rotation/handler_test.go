package rotation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jordanschalm/lockctx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onflow/flow-qrinfo/engine/access/rotation"
	"github.com/onflow/flow-qrinfo/model/llmq"
	"github.com/onflow/flow-qrinfo/module/metrics"
	"github.com/onflow/flow-qrinfo/storage"
	"github.com/onflow/flow-qrinfo/utils/unittest"
)

// requireLockReleased fails if the chain lock cannot be acquired.
func requireLockReleased(t *testing.T, lockManager lockctx.Manager) {
	unittest.RequireReturnsBefore(t, func() {
		require.NoError(t, unittest.WithLock(t, lockManager, storage.LockChainState, func(lockctx.Context) error {
			return nil
		}))
	}, time.Second)
}

func TestHandler_RotationInfo(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		registry := prometheus.NewRegistry()
		handler := rotation.NewHandler(unittest.Logger(), fix.builder(t), fix.lockManager, metrics.NewRotationCollector(registry))

		info, err := handler.RotationInfo(context.Background(), request(fix.blocks[100]))
		require.NoError(t, err)
		assert.Equal(t, uint64(96), info.CreationHeight)
		requireLockReleased(t, fix.lockManager)

		count, err := testutil.GatherAndCount(registry, "access_quorum_rotation_info_build_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestHandler_Errors(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		registry := prometheus.NewRegistry()
		handler := rotation.NewHandler(unittest.Logger(), fix.builder(t), fix.lockManager, metrics.NewRotationCollector(registry))

		tooMany := request(fix.blocks[100], fix.blocks[1], fix.blocks[2], fix.blocks[3], fix.blocks[4], fix.blocks[5])
		mismatch := request(fix.blocks[100], fix.blocks[1])
		mismatch.BaseBlockHashesNb = 0
		unknown := request(fix.blocks[100])
		unknown.BlockRequestHash = unittest.IdentifierFixture()

		cases := []struct {
			name string
			req  *llmq.GetRotationInfo
			code codes.Code
		}{
			{name: "invalid request", req: tooMany, code: codes.InvalidArgument},
			{name: "request mismatch", req: mismatch, code: codes.InvalidArgument},
			{name: "unknown block", req: unknown, code: codes.NotFound},
			{name: "ancestor before genesis", req: request(fix.blocks[30]), code: codes.NotFound},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := handler.RotationInfo(context.Background(), c.req)
				require.Error(t, err)
				assert.Equal(t, c.code, status.Code(err))
				// the failure message is passed on to the caller
				assert.NotEmpty(t, status.Convert(err).Message())
				requireLockReleased(t, fix.lockManager)
			})
		}

		count, err := testutil.GatherAndCount(registry, "access_quorum_rotation_info_failures_total")
		require.NoError(t, err)
		// one series per failure reason
		assert.Equal(t, 4, count)
	})
}

func TestHandler_CancelledContext(t *testing.T) {
	runWithChain(t, 30, func(t *testing.T, fix *chainFixture) {
		handler := rotation.NewHandler(unittest.Logger(), fix.builder(t), fix.lockManager, metrics.NewNoopCollector())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := handler.RotationInfo(ctx, request(fix.blocks[30]))
		assert.Equal(t, codes.Canceled, status.Code(err))
		assert.True(t, errors.Is(ctx.Err(), context.Canceled))
	})
}

// Concurrent requests are serialized on the chain lock and all succeed.
func TestHandler_Concurrent(t *testing.T) {
	runWithChain(t, 100, func(t *testing.T, fix *chainFixture) {
		handler := rotation.NewHandler(unittest.Logger(), fix.builder(t), fix.lockManager, metrics.NewNoopCollector())

		var g errgroup.Group
		for height := 72; height <= 100; height++ {
			g.Go(func() error {
				info, err := handler.RotationInfo(context.Background(), request(fix.blocks[height]))
				if err != nil {
					return err
				}
				expected := uint64(height) - uint64(height)%testCycleLength
				if info.CreationHeight != expected {
					return errors.New("unexpected creation height")
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())
		requireLockReleased(t, fix.lockManager)
	})
}
