package quiz

import "math/rand"

// BlankToken is the placeholder substituted for removed words in
// gap-fill display text.
const BlankToken = "____"

// RecallThreshold is the minimum normalized similarity for a free-typed
// recall answer to count as correct.
const RecallThreshold = 0.90

// DefaultMaxQuestions caps the question count of one generated set.
const DefaultMaxQuestions = 5

// Config controls question generation. The distractor word list and
// the wrong-reference book pool are supplied by the caller; the
// defaults below suit the bundled corpus.
type Config struct {
	// MaxQuestions is the maximum number of questions to generate.
	MaxQuestions int

	// Distractors is the thematic word list that pads gap-fill word
	// banks with plausible wrong choices.
	Distractors []string

	// Books is the pool of book names used to synthesize wrong
	// references and filler pairs.
	Books []string

	// FillerSnippets pads match-pairs puzzles when the verse batch is
	// too small to supply three real pairs.
	FillerSnippets []string

	// RecallSimilarity overrides RecallThreshold for generated recall
	// questions. Zero means use the default.
	RecallSimilarity float64

	// Rand is the randomness source. Tests inject a seeded source for
	// deterministic output; a nil Rand is replaced at generation time.
	Rand *rand.Rand
}

// DefaultConfig returns a Config with the standard pools.
func DefaultConfig() Config {
	return Config{
		MaxQuestions: DefaultMaxQuestions,
		Distractors: []string{
			"righteousness", "covenant", "wilderness", "presence",
			"everlasting", "salvation", "faithful", "glory",
			"mercy", "strength", "wisdom", "truth",
		},
		Books: []string{
			"Genesis", "Exodus", "Deuteronomy", "Joshua", "Psalms",
			"Proverbs", "Isaiah", "Jeremiah", "Matthew", "Mark",
			"Luke", "John", "Romans", "Philippians", "Hebrews", "James",
		},
		FillerSnippets: []string{
			"Trust in the LORD with all thine heart...",
			"The heavens declare the glory of God...",
			"Be strong and of a good courage...",
		},
		Rand: nil,
	}
}
