package actor

import "time"

// Config carries the actor's tunables.
type Config struct {
	// GroupID participates in group semantics; it is opaque to the actor
	// itself and only ever threaded through to the broker handle by the
	// caller that constructs it.
	GroupID string

	// PollTimeout bounds how long a Poll handler's broker.Poll call may
	// block when there is outstanding fetch demand.
	PollTimeout time.Duration

	// CommitTimeout bounds how long MessageCommit waits for a Commit
	// request to complete before returning ErrCommitTimeout.
	CommitTimeout time.Duration

	// CommitRecovery is consulted by MessageCommit whenever a Commit
	// request fails for a reason other than ErrCommitTimeout. It receives
	// the offsets that failed to commit and the retry count so far, and
	// returns whether to retry.
	CommitRecovery func(offsets map[TopicPartition]OffsetAndMetadata, retry int) bool

	// RecordMetadata derives the metadata string stored alongside a
	// committed offset for a given record.
	RecordMetadata func(Record) string

	// KeyDeserializer and ValueDeserializer are opaque hooks threaded
	// through to whatever constructs Record values outside the actor; the
	// actor itself never calls them, only carries them for the external
	// record-stream collaborator that does.
	KeyDeserializer   func([]byte) (interface{}, error)
	ValueDeserializer func([]byte) (interface{}, error)

	// PendingCommitsCap bounds pendingCommits. 0 means DefaultPendingCommitsCap.
	PendingCommitsCap int

	// RequestQueueCap bounds the actor's inbound request FIFO. 0 means
	// DefaultRequestQueueCap.
	RequestQueueCap int

	// Logger receives one entry per state-modifying transition. A nil
	// Logger discards everything.
	Logger Logger
}

// DefaultPendingCommitsCap is the recommended cap when pendingCommits could
// otherwise grow unboundedly under rebalance flapping.
const DefaultPendingCommitsCap = 4096

// DefaultRequestQueueCap bounds the actor's inbound FIFO absent an explicit
// Config.RequestQueueCap.
const DefaultRequestQueueCap = 256

func (c Config) pendingCommitsCap() int {
	if c.PendingCommitsCap > 0 {
		return c.PendingCommitsCap
	}
	return DefaultPendingCommitsCap
}

func (c Config) requestQueueCap() int {
	if c.RequestQueueCap > 0 {
		return c.RequestQueueCap
	}
	return DefaultRequestQueueCap
}

func (c Config) logger() Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return noopLogger{}
}
