package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabdrill/internal/game"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, ScoreWritesDelta, cfg.ScoreWrites)
	assert.Equal(t, 50, cfg.DailyTypeLimit)
	assert.Equal(t, 1, cfg.DailyMatchLimit)
	assert.Equal(t, game.DefaultParams(), cfg.Game.Params())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("GAME_PRIORITY_BIAS", "0.5")
	t.Setenv("GAME_SET_SIZE", "12")
	t.Setenv("GAME_SEED", "99")
	t.Setenv("SCORE_WRITES", "cas")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DBDriver)
	assert.Equal(t, 0.5, cfg.Game.PriorityBias)
	assert.Equal(t, 12, cfg.Game.SetSize)
	assert.Equal(t, uint64(99), cfg.Game.Seed)
	assert.Equal(t, ScoreWritesCAS, cfg.ScoreWrites)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string][2]string{
		"driver":   {"DB_DRIVER", "mysql"},
		"writes":   {"SCORE_WRITES", "eventual"},
		"bias":     {"GAME_PRIORITY_BIAS", "2"},
		"fraction": {"GAME_TIER_FRACTION", "0"},
		"limit":    {"DAILY_TYPE_LIMIT", "0"},
		"number":   {"GAME_SET_SIZE", "ten"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
