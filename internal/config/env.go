package config

import (
	"time"

	jconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// Env holds process settings read from the environment.
type Env struct {
	ConfigPath    string `config:"CHIMERA_CONFIG"`
	DatabasePath  string `config:"CHIMERA_DB"`
	Address       string `config:"CHIMERA_ADDR"`
	RedisAddr     string `config:"REDIS_ADDR"`
	RedisPassword string `config:"REDIS_PASSWORD"`
	LogLevel      string `config:"LOG_LEVEL"`
	// Durations are Go duration strings such as "750ms" or "10m".
	AITurnTimeout string `config:"AI_TURN_TIMEOUT"`
	SnapshotTTL   string `config:"SNAPSHOT_TTL"`

	AITurnBudget time.Duration
	SnapshotLife time.Duration
}

const (
	defaultDatabasePath  = "chimera-battle.db"
	defaultAITurnTimeout = 2 * time.Second
	defaultSnapshotTTL   = 30 * time.Minute
)

// LoadEnv reads Env from the process environment and fills defaults.
func LoadEnv() (Env, error) {
	var e Env
	if err := jconfig.FromEnv().To(&e); err != nil {
		return e, eris.Wrap(err, "read environment")
	}
	return e.withDefaults()
}

func (e Env) withDefaults() (Env, error) {
	if e.DatabasePath == "" {
		e.DatabasePath = defaultDatabasePath
	}
	if e.LogLevel == "" {
		e.LogLevel = "info"
	}
	var err error
	if e.AITurnBudget, err = parseDuration(e.AITurnTimeout, defaultAITurnTimeout); err != nil {
		return e, eris.Wrap(err, "AI_TURN_TIMEOUT")
	}
	if e.SnapshotLife, err = parseDuration(e.SnapshotTTL, defaultSnapshotTTL); err != nil {
		return e, eris.Wrap(err, "SNAPSHOT_TTL")
	}
	return e, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, eris.Errorf("negative duration %s", s)
	}
	return d, nil
}
