// Package quiz synthesizes graded questions from a batch of verses and
// validates answers against them.
package quiz

import "versequest/internal/verse"

// Kind discriminates the question variants.
type Kind int

const (
	// KindGapFill asks the user to restore blanked-out words from a word bank.
	KindGapFill Kind = iota

	// KindReference asks the user to pick the verse's reference from four options.
	KindReference

	// KindMatchPairs asks the user to re-associate verse snippets with references.
	KindMatchPairs

	// KindRecall asks the user to type the full verse from a short hint.
	KindRecall
)

// String returns a short identifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindGapFill:
		return "gap-fill"
	case KindReference:
		return "reference"
	case KindMatchPairs:
		return "match-pairs"
	case KindRecall:
		return "recall"
	}
	return "unknown"
}

// Pair couples a verse snippet with its reference for matching puzzles.
type Pair struct {
	Snippet   string
	Reference string
}

// Question is one generated question instance. The kind-specific fields
// are immutable after generation; only Attempts and Solved change as
// the user answers.
type Question struct {
	Kind  Kind
	Verse verse.Ref

	// Attempts counts validation attempts against this question.
	Attempts int

	// Solved is set once a correct answer has been validated.
	Solved bool

	// GapFill: verse text with blank tokens, the removed words in
	// order, and the shuffled word bank (answers plus distractors).
	DisplayText string
	AnswerWords []string
	ChoicePool  []string

	// Reference: four reference strings, one of which equals the
	// source verse's reference. No correct index is stored.
	Options []string

	// MatchPairs: the answer key, each snippet paired with the
	// reference the generator assigned it.
	Pairs []Pair

	// Recall: the leading words of the verse shown as a prompt, and the
	// similarity bar the typed answer must clear.
	Hint      string
	Threshold float64
}

// Clone returns a fresh copy with Attempts and Solved reset. The
// kind-specific fields are shared since they are never mutated.
func (q *Question) Clone() *Question {
	c := *q
	c.Attempts = 0
	c.Solved = false
	return &c
}

// Candidate is a typed answer for one question variant. The concrete
// type must match the question kind it is checked against.
type Candidate interface {
	candidateKind() Kind
}

// WordsCandidate answers a gap-fill question: the chosen words in
// blank order.
type WordsCandidate []string

func (WordsCandidate) candidateKind() Kind { return KindGapFill }

// ReferenceCandidate answers an identify-reference question.
type ReferenceCandidate string

func (ReferenceCandidate) candidateKind() Kind { return KindReference }

// PairsCandidate answers a match-pairs question: the user's proposed
// associations.
type PairsCandidate []Pair

func (PairsCandidate) candidateKind() Kind { return KindMatchPairs }

// TextCandidate answers a recall question with free-typed text.
type TextCandidate string

func (TextCandidate) candidateKind() Kind { return KindRecall }
