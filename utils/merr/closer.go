package merr

import (
	"io"

	"github.com/hashicorp/go-multierror"
)

// CloseAndMergeError closes the closable and merges a close error with err.
// It returns nil only if both err and the close error are nil.
//
// When used in a defer, assign the result to a named return value that is not
// reassigned elsewhere, otherwise the merged error may be lost:
//
//	func run() (errToReturn error) {
//		defer func() {
//			errToReturn = merr.CloseAndMergeError(db, errToReturn)
//		}()
//		...
//	}
func CloseAndMergeError(closable io.Closer, err error) error {
	var merr *multierror.Error
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	closeError := closable.Close()
	if closeError != nil {
		merr = multierror.Append(merr, closeError)
	}

	return merr.ErrorOrNil()
}
