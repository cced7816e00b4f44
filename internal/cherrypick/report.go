package cherrypick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ErrReplayFailed is returned by Report.Err when any cherry-pick failed.
var ErrReplayFailed = errors.New("cherry-pick failed")

// Failure records one descriptor that did not apply.
type Failure struct {
	Index    int
	SHA      string
	Command  string
	ExitCode int
	Output   Output
	Err      error
}

// Report summarises a replay. Applied, Failed and Skipped hold
// descriptor indices and are disjoint.
type Report struct {
	Total    int
	Applied  *roaring.Bitmap
	Failed   *roaring.Bitmap
	Skipped  *roaring.Bitmap
	Failures []Failure
	// Canceled is set when the context ended before every descriptor
	// was processed.
	Canceled error
}

func newReport(total int) *Report {
	return &Report{
		Total:   total,
		Applied: roaring.New(),
		Failed:  roaring.New(),
		Skipped: roaring.New(),
	}
}

func (r *Report) addFailure(f Failure) {
	r.Failed.Add(uint32(f.Index))
	r.Failures = append(r.Failures, f)
}

// Attempted returns the indices that were processed, in any outcome.
func (r *Report) Attempted() *roaring.Bitmap {
	return roaring.FastOr(r.Applied, r.Failed, r.Skipped)
}

// Err returns nil when every descriptor was processed without failure.
// Failures wrap ErrReplayFailed and name each failed sha.
func (r *Report) Err() error {
	var errs []error
	if !r.Failed.IsEmpty() {
		shas := make([]string, len(r.Failures))
		for i, f := range r.Failures {
			shas[i] = f.SHA
		}
		errs = append(errs, fmt.Errorf("%w: %d of %d: %s", ErrReplayFailed, len(r.Failures), r.Total, strings.Join(shas, ", ")))
	}
	if r.Canceled != nil {
		errs = append(errs, fmt.Errorf("replay interrupted after %d of %d: %w", r.Attempted().GetCardinality(), r.Total, r.Canceled))
	}
	return errors.Join(errs...)
}
