package actor

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotSubscribed is returned to the caller of an AssignmentRequest issued
// before any SubscribeTopics/SubscribePattern request has succeeded.
var ErrNotSubscribed = errors.New("actor: assignment requested before a successful subscribe")

// ErrCommitTimeout is returned by MessageCommit when commitTimeout elapses
// before the underlying Commit request completes. The broker's commit may
// still complete later; MessageCommit does not cancel it.
var ErrCommitTimeout = errors.New("actor: commit timed out waiting for broker acknowledgement")

// ErrCommitOverflow is returned to the oldest parked CommitRequest when
// pendingCommits would grow past Config.PendingCommitsCap.
var ErrCommitOverflow = errors.New("actor: pending commit evicted, too many commits parked during rebalance")

// SubscribeFailureError wraps a broker subscribe failure. The actor remains
// operable after one of these; only the calling subscribe completion sees
// it.
type SubscribeFailureError struct {
	cause error
}

func (e *SubscribeFailureError) Error() string {
	return fmt.Sprintf("actor: subscribe failed: %s", e.cause)
}

func (e *SubscribeFailureError) Unwrap() error { return e.cause }

func newSubscribeFailure(cause error) error {
	return &SubscribeFailureError{cause: errors.WithStack(cause)}
}

// CommitFailureError wraps a broker commit callback error.
type CommitFailureError struct {
	cause error
}

func (e *CommitFailureError) Error() string {
	return fmt.Sprintf("actor: commit failed: %s", e.cause)
}

func (e *CommitFailureError) Unwrap() error { return e.cause }

func newCommitFailure(cause error) error {
	return &CommitFailureError{cause: errors.WithStack(cause)}
}

// UnexpectedRecordsError is a fatal invariant violation: the broker
// returned records for partitions that were not requested, or returned
// records while polling with a zero timeout under no demand. It is raised
// up to the driver running the actor; there is no recovery policy for it
// within the actor itself.
type UnexpectedRecordsError struct {
	Partitions PartitionSet
	ZeroPoll   bool
}

func (e *UnexpectedRecordsError) Error() string {
	if e.ZeroPoll {
		return fmt.Sprintf("actor: broker returned records for %v during a zero-timeout poll with no demand", e.Partitions.Slice())
	}
	return fmt.Sprintf("actor: broker returned records for unrequested partitions %v", e.Partitions.Slice())
}
