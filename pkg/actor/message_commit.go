package actor

import (
	"context"
	"time"
)

// MessageCommit is the external, blocking commit facade: it enqueues a
// CommitRequest and waits up to Config.CommitTimeout for it to complete. On
// any failure other than the timeout, Config.CommitRecovery is consulted
// with the failed offsets and the retry count so far; as long as it
// returns true, MessageCommit issues a fresh CommitRequest for the same
// offsets and waits again.
func (a *Actor) MessageCommit(ctx context.Context, offsets map[TopicPartition]OffsetAndMetadata) error {
	for retry := 0; ; retry++ {
		err := a.commitOnce(ctx, offsets)
		if err == nil {
			return nil
		}
		if err == ErrCommitTimeout {
			return err
		}
		if a.cfg.CommitRecovery == nil || !a.cfg.CommitRecovery(offsets, retry) {
			return err
		}
		a.log.Warnw("retrying commit after recovery hook", "retry", retry, "error", err)
	}
}

func (a *Actor) commitOnce(ctx context.Context, offsets map[TopicPartition]OffsetAndMetadata) error {
	done := make(chan error, 1)
	cr := NewCommitRequest(offsets, func(err error) { done <- err })
	a.Enqueue(cr)

	timer := time.NewTimer(a.cfg.CommitTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return ErrCommitTimeout
	case <-ctx.Done():
		return ctx.Err()
	case <-a.closed:
		return ErrCommitTimeout
	}
}
