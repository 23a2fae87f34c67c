package domain

import "fmt"

// Level is one of the three difficulty tiers partitioning the question bank.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists every level from easiest to hardest.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel converts a raw string into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), nil
	default:
		return "", fmt.Errorf("unknown level %q", s)
	}
}

// KoreanName returns the label shown to learners.
func (l Level) KoreanName() string {
	switch l {
	case LevelIntermediate:
		return "중급"
	case LevelAdvanced:
		return "고급"
	default:
		return "초급"
	}
}

// LevelCounts holds one integer per level.
type LevelCounts struct {
	Beginner     int `json:"beginner" yaml:"beginner"`
	Intermediate int `json:"intermediate" yaml:"intermediate"`
	Advanced     int `json:"advanced" yaml:"advanced"`
}

// Get returns the count for the given level.
func (c LevelCounts) Get(l Level) int {
	switch l {
	case LevelBeginner:
		return c.Beginner
	case LevelIntermediate:
		return c.Intermediate
	case LevelAdvanced:
		return c.Advanced
	}
	return 0
}

// Inc increments the count for the given level.
func (c *LevelCounts) Inc(l Level) {
	switch l {
	case LevelBeginner:
		c.Beginner++
	case LevelIntermediate:
		c.Intermediate++
	case LevelAdvanced:
		c.Advanced++
	}
}

// Set overwrites the count for the given level.
func (c *LevelCounts) Set(l Level, n int) {
	switch l {
	case LevelBeginner:
		c.Beginner = n
	case LevelIntermediate:
		c.Intermediate = n
	case LevelAdvanced:
		c.Advanced = n
	}
}
