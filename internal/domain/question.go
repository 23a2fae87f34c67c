package domain

import "context"

// BlankMarker is the placeholder a fill-in-the-blank sentence must contain.
const BlankMarker = "____"

// DistractorCount is the number of wrong options every stored question carries.
const DistractorCount = 3

// GenerationMode selects how a generated payload is prompted and validated.
type GenerationMode string

const (
	ModeFillBlank GenerationMode = "fill_blank"
	ModeDialogue  GenerationMode = "dialogue"
)

// ParseGenerationMode converts a raw string into a GenerationMode. Empty means fill_blank.
func ParseGenerationMode(s string) (GenerationMode, error) {
	switch GenerationMode(s) {
	case "", ModeFillBlank:
		return ModeFillBlank, nil
	case ModeDialogue:
		return ModeDialogue, nil
	default:
		return "", NewInvalidInputError("unknown generation mode: " + s)
	}
}

// Question is a single stored quiz item.
type Question struct {
	Sentence string   `json:"sentence" yaml:"sentence"`
	Answer   string   `json:"answer" yaml:"answer"`
	Options  []string `json:"options" yaml:"options"`
}

// Clone returns a copy that shares no memory with q.
func (q Question) Clone() Question {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	return Question{Sentence: q.Sentence, Answer: q.Answer, Options: opts}
}

// BankRepository persists the three-level question bank.
type BankRepository interface {
	// Load returns the cached bank unless force is set or nothing is cached yet.
	Load(ctx context.Context, force bool) (Bank, error)
	// Save persists the bank and invalidates the cache.
	Save(ctx context.Context, bank Bank) error
	// Path reports where the bank lives.
	Path() string
	// Exists reports whether the persisted bank is present.
	Exists() bool
}

// TextGenerator is the external completion collaborator. It returns raw text which
// may or may not be valid JSON.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}
