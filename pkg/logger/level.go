package logger

import (
	"strings"

	"github.com/keyisfocus/listarray/pkg/env"
	"github.com/keyisfocus/listarray/pkg/errorkit"
)

type Level string

func (l Level) String() string { return string(l) }

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

var envToLevel = map[string]Level{
	"debug":    LevelDebug,
	"info":     LevelInfo,
	"warn":     LevelWarn,
	"error":    LevelError,
	"fatal":    LevelFatal,
	"critical": LevelFatal,

	"d": LevelDebug,
	"i": LevelInfo,
	"w": LevelWarn,
	"e": LevelError,
	"f": LevelFatal,
	"c": LevelFatal,
}

// ParseLevel accepts the full name of a level, or its first letter.
func ParseLevel(raw string) (Level, bool) {
	level, ok := envToLevel[strings.ToLower(strings.TrimSpace(raw))]
	return level, ok
}

func init() {
	if level, ok := lookupLevelFromENV(); ok {
		Default.Level = level
	}
}

const levelEnvKeys = "LOG_LEVEL,LOGGER_LEVEL,LOGGING_LEVEL"

const errUnknownLevel errorkit.Error = "ErrUnknownLevel"

// lookupLevelFromENV reads the level from the first present key of levelEnvKeys.
func lookupLevelFromENV() (Level, bool) {
	level, ok, err := env.Lookup[Level](levelEnvKeys, env.ParseWith(func(raw string) (Level, error) {
		level, ok := ParseLevel(raw)
		if !ok {
			return "", errUnknownLevel.F("%q", raw)
		}
		return level, nil
	}))
	if err != nil {
		return "", false
	}
	return level, ok
}

var levelPriorityMapping = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	LevelFatal: 4,
}

func isLevelEnabled(target, level Level) bool {
	if target == "" {
		target = LevelInfo
	}
	return levelPriorityMapping[target] <= levelPriorityMapping[level]
}
