package engine

import (
	"fmt"
	"strings"
)

// Level is the ordered difficulty of a course: Basic < Intermediate < Advanced.
type Level int

const (
	LevelBasic Level = iota + 1
	LevelIntermediate
	LevelAdvanced
)

var levelNames = map[Level]string{
	LevelBasic:        "Basic",
	LevelIntermediate: "Intermediate",
	LevelAdvanced:     "Advanced",
}

// catalog feeds use the original Indonesian labels next to the English ones
var levelAliases = map[string]Level{
	"basic":        LevelBasic,
	"beginner":     LevelBasic,
	"dasar":        LevelBasic,
	"pemula":       LevelBasic,
	"intermediate": LevelIntermediate,
	"menengah":     LevelIntermediate,
	"advanced":     LevelAdvanced,
	"mahir":        LevelAdvanced,
	"profesional":  LevelAdvanced,
	"professional": LevelAdvanced,
}

// Levels returns all levels in ascending order.
func Levels() []Level {
	return []Level{LevelBasic, LevelIntermediate, LevelAdvanced}
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) Valid() bool {
	return l >= LevelBasic && l <= LevelAdvanced
}

// distance is the number of tiers between two levels.
func (l Level) distance(other Level) int {
	d := int(l) - int(other)
	if d < 0 {
		return -d
	}
	return d
}

// ParseLevel resolves a level label case-insensitively.
func ParseLevel(s string) (Level, error) {
	if l, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return 0, InvalidInput("unknown course level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, InvalidInput("invalid course level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
