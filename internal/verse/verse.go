package verse

import (
	"fmt"
	"strconv"
	"strings"
)

// Ref identifies a single short text unit: one verse of one chapter of
// one book, together with its text. Refs are values and never mutated
// after construction.
type Ref struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// New constructs a Ref, validating its fields.
func New(book string, chapter, verseNum int, text string) (Ref, error) {
	if strings.TrimSpace(book) == "" {
		return Ref{}, fmt.Errorf("verse: empty book name")
	}
	if chapter < 1 {
		return Ref{}, fmt.Errorf("verse: chapter %d out of range", chapter)
	}
	if verseNum < 1 {
		return Ref{}, fmt.Errorf("verse: verse %d out of range", verseNum)
	}
	if strings.TrimSpace(text) == "" {
		return Ref{}, fmt.Errorf("verse: empty text for %s %d:%d", book, chapter, verseNum)
	}
	return Ref{Book: book, Chapter: chapter, Verse: verseNum, Text: text}, nil
}

// Reference returns the display string, e.g. "John 3:16".
func (r Ref) Reference() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// FormatReference builds a display reference without needing verse text.
func FormatReference(book string, chapter, verseNum int) string {
	return fmt.Sprintf("%s %d:%d", book, chapter, verseNum)
}

// ParseReference parses a display reference like "John 3:16" back into
// its parts. Book names may contain spaces ("1 John 4:8").
func ParseReference(s string) (book string, chapter, verseNum int, err error) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", 0, 0, fmt.Errorf("verse: malformed reference %q", s)
	}
	book = s[:i]
	numbers := s[i+1:]
	parts := strings.SplitN(numbers, ":", 2)
	if len(parts) != 2 || book == "" {
		return "", 0, 0, fmt.Errorf("verse: malformed reference %q", s)
	}
	chapter, err = strconv.Atoi(parts[0])
	if err != nil || chapter < 1 {
		return "", 0, 0, fmt.Errorf("verse: malformed chapter in %q", s)
	}
	verseNum, err = strconv.Atoi(parts[1])
	if err != nil || verseNum < 1 {
		return "", 0, 0, fmt.Errorf("verse: malformed verse in %q", s)
	}
	return book, chapter, verseNum, nil
}

// Provider supplies verse text for a contiguous passage. Implementations
// may be backed by a local corpus or a remote source; a failed fetch is
// surfaced as an error and callers degrade to an empty verse list.
type Provider interface {
	FetchVerses(book string, startChapter, startVerse, endChapter, endVerse int) ([]Ref, error)
}
