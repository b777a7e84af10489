package quiz

import (
	"math/rand"
	"sort"
	"strings"
	"time"
	"unicode"

	"versequest/internal/verse"
)

// snippetLen is the character budget for match-pairs snippets.
const snippetLen = 50

// matchPairCount is the fixed puzzle size for match-pairs questions.
const matchPairCount = 3

// Generate builds a shuffled question set from a batch of verses. The
// first cfg.MaxQuestions verses each receive one question, cycling
// through the four kinds round-robin; the finished list is shuffled
// for presentation order. An empty verse batch yields an empty set and
// callers must treat the resulting session as immediately complete.
func Generate(verses []verse.Ref, cfg Config) []*Question {
	if len(verses) == 0 {
		return nil
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	maxQ := cfg.MaxQuestions
	if maxQ <= 0 {
		maxQ = DefaultMaxQuestions
	}

	batch := verses
	if len(batch) > maxQ {
		batch = batch[:maxQ]
	}

	kinds := []Kind{KindGapFill, KindReference, KindMatchPairs, KindRecall}
	questions := make([]*Question, 0, len(batch))
	for i, v := range batch {
		var q *Question
		switch kinds[i%len(kinds)] {
		case KindGapFill:
			q = newGapFill(v, cfg, rng)
		case KindReference:
			q = newReference(v, cfg, rng)
		case KindMatchPairs:
			q = newMatchPairs(v, batch, cfg, rng)
		case KindRecall:
			q = newRecall(v, cfg)
		}
		questions = append(questions, q)
	}

	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}

// RecallOnly builds one typing-recall question per verse, capped at
// cfg.MaxQuestions. Used for review rounds, where proving retention of
// the full text is the point.
func RecallOnly(verses []verse.Ref, cfg Config) []*Question {
	if len(verses) == 0 {
		return nil
	}
	maxQ := cfg.MaxQuestions
	if maxQ <= 0 {
		maxQ = DefaultMaxQuestions
	}
	batch := verses
	if len(batch) > maxQ {
		batch = batch[:maxQ]
	}
	questions := make([]*Question, 0, len(batch))
	for _, v := range batch {
		questions = append(questions, newRecall(v, cfg))
	}
	return questions
}

// newGapFill blanks out 2-3 substantial words and builds a word bank of
// the removed words plus up to two distractors.
func newGapFill(v verse.Ref, cfg Config, rng *rand.Rand) *Question {
	words := strings.Fields(v.Text)

	var candidates []int
	for i, w := range words {
		if letterCount(w) > 3 {
			candidates = append(candidates, i)
		}
	}
	// A verse of only short words still needs blanks to be a puzzle.
	if len(candidates) == 0 {
		for i := range words {
			candidates = append(candidates, i)
		}
	}

	// Blank out 2-3 words, bounded by what the verse can supply.
	blanks := len(candidates)
	if blanks > 3 {
		blanks = 3
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	chosen := append([]int(nil), candidates[:blanks]...)
	// Restore position order so AnswerWords reads left to right.
	sort.Ints(chosen)

	display := append([]string(nil), words...)
	answers := make([]string, 0, len(chosen))
	for _, idx := range chosen {
		answers = append(answers, words[idx])
		display[idx] = BlankToken
	}

	pool := append([]string(nil), answers...)
	for _, d := range pickDistractors(answers, cfg.Distractors, 2, rng) {
		pool = append(pool, d)
	}
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	return &Question{
		Kind:        KindGapFill,
		Verse:       v,
		DisplayText: strings.Join(display, " "),
		AnswerWords: answers,
		ChoicePool:  pool,
	}
}

// pickDistractors draws up to n words from the pool, skipping words
// that duplicate an answer word case-insensitively.
func pickDistractors(answers, pool []string, n int, rng *rand.Rand) []string {
	var eligible []string
	for _, w := range pool {
		dup := false
		for _, a := range answers {
			if strings.EqualFold(a, w) {
				dup = true
				break
			}
		}
		if !dup {
			eligible = append(eligible, w)
		}
	}
	rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > n {
		eligible = eligible[:n]
	}
	return eligible
}

// newReference synthesizes three plausible wrong references using three
// distinct strategies, then shuffles all four options.
func newReference(v verse.Ref, cfg Config, rng *rand.Rand) *Question {
	truth := v.Reference()
	options := []string{truth}

	add := func(candidate string) bool {
		for _, o := range options {
			if o == candidate {
				return false
			}
		}
		options = append(options, candidate)
		return true
	}

	// Same book and chapter, verse nudged forward.
	for {
		delta := 1 + rng.Intn(3)
		if add(verse.FormatReference(v.Book, v.Chapter, v.Verse+delta)) {
			break
		}
	}

	// Same book, nearby chapter, random verse.
	for {
		chapter := v.Chapter + (1 + rng.Intn(2))
		if rng.Intn(2) == 0 && v.Chapter > 2 {
			chapter = v.Chapter - (1 + rng.Intn(2))
		}
		if chapter == v.Chapter || chapter < 1 {
			continue
		}
		if add(verse.FormatReference(v.Book, chapter, 1+rng.Intn(30))) {
			break
		}
	}

	// Different book entirely.
	for {
		book := cfg.Books[rng.Intn(len(cfg.Books))]
		if book == v.Book {
			continue
		}
		if add(verse.FormatReference(book, 1+rng.Intn(20), 1+rng.Intn(30))) {
			break
		}
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &Question{
		Kind:    KindReference,
		Verse:   v,
		Options: options,
	}
}

// newMatchPairs builds a three-pair puzzle: the source verse, up to two
// other verses from the batch, and synthetic fillers when the batch is
// too small.
func newMatchPairs(v verse.Ref, batch []verse.Ref, cfg Config, rng *rand.Rand) *Question {
	pairs := []Pair{{Snippet: snippet(v.Text), Reference: v.Reference()}}

	var others []verse.Ref
	for _, o := range batch {
		if o.Reference() != v.Reference() {
			others = append(others, o)
		}
	}
	rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})
	for _, o := range others {
		if len(pairs) == matchPairCount {
			break
		}
		pairs = append(pairs, Pair{Snippet: snippet(o.Text), Reference: o.Reference()})
	}

	// Pad with fillers so the puzzle always has a fixed size.
	for i := 0; len(pairs) < matchPairCount; i++ {
		filler := cfg.FillerSnippets[i%len(cfg.FillerSnippets)]
		ref := randomReference(v, pairs, cfg, rng)
		pairs = append(pairs, Pair{Snippet: filler, Reference: ref})
	}

	rng.Shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})

	return &Question{
		Kind:  KindMatchPairs,
		Verse: v,
		Pairs: pairs,
	}
}

// randomReference synthesizes a reference that collides with neither
// the source verse nor any existing pair.
func randomReference(v verse.Ref, pairs []Pair, cfg Config, rng *rand.Rand) string {
	for {
		book := cfg.Books[rng.Intn(len(cfg.Books))]
		ref := verse.FormatReference(book, 1+rng.Intn(20), 1+rng.Intn(30))
		if ref == v.Reference() {
			continue
		}
		taken := false
		for _, p := range pairs {
			if p.Reference == ref {
				taken = true
				break
			}
		}
		if !taken {
			return ref
		}
	}
}

// newRecall builds the typing prompt: the leading words of the verse.
func newRecall(v verse.Ref, cfg Config) *Question {
	words := strings.Fields(v.Text)
	n := len(words) / 3
	if n > 4 {
		n = 4
	}
	if n < 1 {
		n = 1
	}
	threshold := cfg.RecallSimilarity
	if threshold <= 0 {
		threshold = RecallThreshold
	}
	return &Question{
		Kind:      KindRecall,
		Verse:     v,
		Hint:      strings.Join(words[:n], " ") + " ...",
		Threshold: threshold,
	}
}

// snippet truncates verse text to the display budget, appending an
// ellipsis when cut.
func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= snippetLen {
		return text
	}
	return string(runes[:snippetLen]) + "..."
}

func letterCount(w string) int {
	n := 0
	for _, r := range w {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
