// Package kconfig loads actor.Config's scalar/duration fields from YAML,
// environment variables, or flags bound onto a viper.Viper. The four
// function-valued fields on actor.Config are pluggable hooks the embedding
// application sets programmatically; kconfig never touches them.
package kconfig

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/streamkit/kconsumer/pkg/actor"
)

const (
	keyGroupID           = "group_id"
	keyPollTimeout       = "poll_timeout"
	keyCommitTimeout     = "commit_timeout"
	keyPendingCommitsCap = "pending_commits_cap"
	keyRequestQueueCap   = "request_queue_cap"
)

// SetDefaults installs kconfig's defaults onto v, so a caller building a
// *viper.Viper from scratch gets sane values even with an empty config
// file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(keyGroupID, "")
	v.SetDefault(keyPollTimeout, 500*time.Millisecond)
	v.SetDefault(keyCommitTimeout, 10*time.Second)
	v.SetDefault(keyPendingCommitsCap, actor.DefaultPendingCommitsCap)
	v.SetDefault(keyRequestQueueCap, actor.DefaultRequestQueueCap)
}

// Load reads GroupID, PollTimeout, CommitTimeout, PendingCommitsCap, and
// RequestQueueCap off v into an actor.Config. The caller is responsible for
// setting CommitRecovery, RecordMetadata, KeyDeserializer,
// ValueDeserializer, and Logger afterward — kconfig has no way to
// deserialize function values.
func Load(v *viper.Viper) (actor.Config, error) {
	SetDefaults(v)

	groupID := v.GetString(keyGroupID)
	if groupID == "" {
		return actor.Config{}, errors.New("kconfig: group_id is required")
	}

	cfg := actor.Config{
		GroupID:           groupID,
		PollTimeout:       v.GetDuration(keyPollTimeout),
		CommitTimeout:     v.GetDuration(keyCommitTimeout),
		PendingCommitsCap: v.GetInt(keyPendingCommitsCap),
		RequestQueueCap:   v.GetInt(keyRequestQueueCap),
	}
	if cfg.PollTimeout <= 0 {
		return actor.Config{}, errors.Errorf("kconfig: %s must be positive, got %s", keyPollTimeout, cfg.PollTimeout)
	}
	if cfg.CommitTimeout <= 0 {
		return actor.Config{}, errors.Errorf("kconfig: %s must be positive, got %s", keyCommitTimeout, cfg.CommitTimeout)
	}
	return cfg, nil
}
