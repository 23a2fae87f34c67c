package domain

import "strings"

// Bank is the full question set partitioned by level.
type Bank struct {
	Beginner     []Question `json:"beginner" yaml:"beginner"`
	Intermediate []Question `json:"intermediate" yaml:"intermediate"`
	Advanced     []Question `json:"advanced" yaml:"advanced"`
}

// EmptyBank returns a bank with three empty, non-nil levels.
func EmptyBank() Bank {
	return Bank{
		Beginner:     []Question{},
		Intermediate: []Question{},
		Advanced:     []Question{},
	}
}

// Level returns the questions stored for l.
func (b Bank) Level(l Level) []Question {
	switch l {
	case LevelBeginner:
		return b.Beginner
	case LevelIntermediate:
		return b.Intermediate
	case LevelAdvanced:
		return b.Advanced
	}
	return nil
}

// SetLevel replaces the questions stored for l.
func (b *Bank) SetLevel(l Level, qs []Question) {
	switch l {
	case LevelBeginner:
		b.Beginner = qs
	case LevelIntermediate:
		b.Intermediate = qs
	case LevelAdvanced:
		b.Advanced = qs
	}
}

// Counts returns the number of questions per level.
func (b Bank) Counts() LevelCounts {
	return LevelCounts{
		Beginner:     len(b.Beginner),
		Intermediate: len(b.Intermediate),
		Advanced:     len(b.Advanced),
	}
}

// Total returns the number of questions across all levels.
func (b Bank) Total() int {
	return len(b.Beginner) + len(b.Intermediate) + len(b.Advanced)
}

// IsEmpty reports whether no level holds a question.
func (b Bank) IsEmpty() bool {
	return b.Total() == 0
}

// Clone returns a deep copy. Nil levels become empty slices.
func (b Bank) Clone() Bank {
	out := EmptyBank()
	for _, l := range Levels {
		src := b.Level(l)
		dst := make([]Question, len(src))
		for i, q := range src {
			dst[i] = q.Clone()
		}
		out.SetLevel(l, dst)
	}
	return out
}

// Candidate is an incoming, not yet trusted question. The Has* flags record whether the
// field was present with the right type in the source payload.
type Candidate struct {
	Sentence    string
	Answer      string
	Options     []string
	HasSentence bool
	HasAnswer   bool
	HasOptions  bool
}

// IncomingBank is a partial bank of candidates. Levels missing from the map are absent.
type IncomingBank map[Level][]Candidate

// IncomingFromPayload decodes a generic JSON object (as produced by encoding/json into
// map[string]any) into candidates. Wrong types are recorded, not rejected.
func IncomingFromPayload(payload map[string]any) IncomingBank {
	in := make(IncomingBank, len(Levels))
	for _, l := range Levels {
		raw, ok := payload[string(l)]
		if !ok || raw == nil {
			continue
		}
		items, ok := raw.([]any)
		if !ok {
			in[l] = []Candidate{}
			continue
		}
		cs := make([]Candidate, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				cs = append(cs, Candidate{})
				continue
			}
			var c Candidate
			c.Sentence, c.HasSentence = obj["sentence"].(string)
			c.Answer, c.HasAnswer = obj["answer"].(string)
			if opts, ok := obj["options"].([]any); ok {
				c.HasOptions = true
				c.Options = make([]string, 0, len(opts))
				for _, o := range opts {
					// non-string entries count as empty and are filtered later
					s, _ := o.(string)
					c.Options = append(c.Options, s)
				}
			}
			cs = append(cs, c)
		}
		in[l] = cs
	}
	return in
}

// Normalize trims the candidate and derives its distractor set. It reports false when
// the candidate must be dropped: a missing field, or a distractor set that is not
// exactly DistractorCount unique, non-empty values different from the answer.
func (c Candidate) Normalize() (Question, bool) {
	if !c.HasSentence || !c.HasAnswer || !c.HasOptions {
		return Question{}, false
	}
	sentence := strings.TrimSpace(c.Sentence)
	answer := strings.TrimSpace(c.Answer)
	if sentence == "" || answer == "" {
		return Question{}, false
	}

	seen := make(map[string]struct{}, len(c.Options))
	distractors := make([]string, 0, DistractorCount)
	for _, o := range c.Options {
		o = strings.TrimSpace(o)
		if o == "" || o == answer {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		distractors = append(distractors, o)
	}
	if len(distractors) != DistractorCount {
		return Question{}, false
	}
	return Question{Sentence: sentence, Answer: answer, Options: distractors}, true
}

// orderedQuestions is an insertion-ordered map keyed by sentence. Overwriting a key
// keeps its original position.
type orderedQuestions struct {
	index map[string]int
	items []Question
}

func newOrderedQuestions(capacity int) *orderedQuestions {
	return &orderedQuestions{
		index: make(map[string]int, capacity),
		items: make([]Question, 0, capacity),
	}
}

func (o *orderedQuestions) put(key string, q Question) {
	if i, ok := o.index[key]; ok {
		o.items[i] = q
		return
	}
	o.index[key] = len(o.items)
	o.items = append(o.items, q)
}

// Merge folds incoming into base level by level and returns a new bank.
//
// Within a level, questions are keyed by trimmed sentence; a later candidate with the
// same sentence replaces the earlier record (including one from base). Candidates that
// fail Normalize are dropped. Levels absent from incoming are copied from base. base is
// never modified.
func Merge(base Bank, incoming IncomingBank) Bank {
	out := base.Clone()
	for _, l := range Levels {
		candidates, present := incoming[l]
		if !present {
			continue
		}
		existing := out.Level(l)
		working := newOrderedQuestions(len(existing) + len(candidates))
		for _, q := range existing {
			working.put(strings.TrimSpace(q.Sentence), q)
		}
		for _, c := range candidates {
			q, ok := c.Normalize()
			if !ok {
				continue
			}
			working.put(q.Sentence, q)
		}
		out.SetLevel(l, working.items)
	}
	return out
}
