package kconfig

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresGroupID(t *testing.T) {
	_, err := Load(viper.New())
	assert.Error(t, err)
}

func TestLoadAppliesDefaults(t *testing.T) {
	v := viper.New()
	v.Set(keyGroupID, "consumer-group-1")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "consumer-group-1", cfg.GroupID)
	assert.Equal(t, 500*time.Millisecond, cfg.PollTimeout)
	assert.Equal(t, 10*time.Second, cfg.CommitTimeout)
	assert.Equal(t, 4096, cfg.PendingCommitsCap)
	assert.Equal(t, 256, cfg.RequestQueueCap)
}

func TestLoadRejectsNonPositiveTimeouts(t *testing.T) {
	v := viper.New()
	v.Set(keyGroupID, "g")
	v.Set(keyPollTimeout, "0s")
	_, err := Load(v)
	assert.Error(t, err)
}
