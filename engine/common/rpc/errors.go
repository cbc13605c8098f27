package rpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/onflow/flow-qrinfo/storage"
)

// ConvertError converts a generic error into a grpc status error. The input may either
// be a status.Error already, or standard error type. Any error that matches one of the
// common status code mappings will be converted, all unmatched errors will be converted
// to the provided defaultCode.
func ConvertError(err error, msg string, defaultCode codes.Code) error {
	if err == nil {
		return nil
	}

	// Already converted
	if _, ok := status.FromError(err); ok {
		return err
	}

	if msg != "" {
		msg += ": "
	}

	var returnCode codes.Code
	switch {
	case errors.Is(err, context.Canceled):
		returnCode = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		returnCode = codes.DeadlineExceeded
	default:
		returnCode = defaultCode
	}

	return status.Errorf(returnCode, "%s%v", msg, err)
}

// ConvertStorageError converts a generic error into a grpc status error, converting storage.ErrNotFound
// into codes.NotFound
func ConvertStorageError(err error) error {
	if err == nil {
		return nil
	}

	// Already converted
	if status.Code(err) == codes.NotFound {
		return err
	}

	if errors.Is(err, storage.ErrNotFound) {
		return status.Errorf(codes.NotFound, "not found: %v", err)
	}

	return status.Errorf(codes.Internal, "failed to find: %v", err)
}
