package session

import (
	"math/rand"
	"time"

	"versequest/internal/quiz"
)

// QuestionView is the read-only presentation of the current question.
// It omits anything that would leak the answer: the correct reference
// option is not flagged, match-pairs references are shuffled away from
// their snippets, and recall questions never expose the verse text.
type QuestionView struct {
	Kind quiz.Kind

	// Reference is the source verse's display reference. Empty for
	// identify-reference questions, where it is the answer.
	Reference string

	// Prompt is the main text shown to the user: blanked verse text,
	// the full verse (reference questions), or the recall hint.
	Prompt string

	// WordBank and BlankCount drive gap-fill input.
	WordBank   []string
	BlankCount int

	// Options are the four reference choices, order as generated.
	Options []string

	// Snippets and References drive match-pairs input. References are
	// shuffled independently of Snippets.
	Snippets   []string
	References []string
}

// View builds the presentation of the current question.
func (s *State) View(rng *rand.Rand) QuestionView {
	q := s.Current()
	v := QuestionView{Kind: q.Kind}

	switch q.Kind {
	case quiz.KindGapFill:
		v.Reference = q.Verse.Reference()
		v.Prompt = q.DisplayText
		v.WordBank = append([]string(nil), q.ChoicePool...)
		v.BlankCount = len(q.AnswerWords)

	case quiz.KindReference:
		v.Prompt = q.Verse.Text
		v.Options = append([]string(nil), q.Options...)

	case quiz.KindMatchPairs:
		v.Reference = q.Verse.Reference()
		for _, p := range q.Pairs {
			v.Snippets = append(v.Snippets, p.Snippet)
			v.References = append(v.References, p.Reference)
		}
		// References must not line up with their snippets.
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rng.Shuffle(len(v.References), func(i, j int) {
			v.References[i], v.References[j] = v.References[j], v.References[i]
		})

	case quiz.KindRecall:
		v.Reference = q.Verse.Reference()
		v.Prompt = q.Hint
	}

	return v
}
