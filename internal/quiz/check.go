package quiz

import (
	"fmt"
	"strings"

	"versequest/internal/textsim"
)

// Check validates a candidate answer against a question, recording the
// attempt on the question and marking it solved on success.
//
// The candidate's concrete type must match the question kind; checking
// a mismatched candidate is a caller bug and panics.
func Check(q *Question, c Candidate) bool {
	if c.candidateKind() != q.Kind {
		panic(fmt.Sprintf("quiz: %s candidate checked against %s question for %s",
			c.candidateKind(), q.Kind, q.Verse.Reference()))
	}

	q.Attempts++

	var correct bool
	switch q.Kind {
	case KindGapFill:
		correct = checkGapFill(q, c.(WordsCandidate))
	case KindReference:
		correct = checkReference(q, c.(ReferenceCandidate))
	case KindMatchPairs:
		correct = checkMatchPairs(q, c.(PairsCandidate))
	case KindRecall:
		correct = checkRecall(q, c.(TextCandidate))
	}

	if correct {
		q.Solved = true
	}
	return correct
}

// checkGapFill requires the candidate words to match the removed words
// position by position, ignoring case.
func checkGapFill(q *Question, words WordsCandidate) bool {
	if len(words) != len(q.AnswerWords) {
		return false
	}
	for i, w := range words {
		if !strings.EqualFold(strings.TrimSpace(w), q.AnswerWords[i]) {
			return false
		}
	}
	return true
}

// checkReference requires the exact display reference of the source verse.
func checkReference(q *Question, ref ReferenceCandidate) bool {
	return string(ref) == q.Verse.Reference()
}

// checkMatchPairs requires every pair reassembled exactly: each proposed
// association must match the reference the generator paired with that
// snippet, and no pair may be missing. No partial credit.
func checkMatchPairs(q *Question, proposed PairsCandidate) bool {
	if len(proposed) != len(q.Pairs) {
		return false
	}
	key := make(map[string]string, len(q.Pairs))
	for _, p := range q.Pairs {
		key[p.Snippet] = p.Reference
	}
	seen := make(map[string]bool, len(proposed))
	for _, p := range proposed {
		want, ok := key[p.Snippet]
		if !ok || want != p.Reference || seen[p.Snippet] {
			return false
		}
		seen[p.Snippet] = true
	}
	return true
}

// checkRecall accepts free text within the similarity threshold of the
// full verse text.
func checkRecall(q *Question, text TextCandidate) bool {
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = RecallThreshold
	}
	return textsim.Similarity(string(text), q.Verse.Text) >= threshold
}
