// Package content loads the verse corpus and reading plan that drive
// daily sessions, and serves verse text to the rest of the app.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"versequest/internal/verse"
)

//go:embed assets/corpus.json
var defaultCorpus []byte

// Corpus is a validated verse collection plus its day-ordered reading plan.
type Corpus struct {
	Translation string    `json:"translation"`
	Books       []Book    `json:"books"`
	Plan        []Passage `json:"plan"`

	// index maps lowercase book name -> chapter -> verse -> text.
	index map[string]map[int]map[int]string
}

type Book struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}

type Chapter struct {
	Chapter int         `json:"chapter"`
	Verses  []VerseText `json:"verses"`
}

type VerseText struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// Passage is one day's assigned reading range.
type Passage struct {
	Day          int    `json:"day"`
	Title        string `json:"title,omitempty"`
	Book         string `json:"book"`
	StartChapter int    `json:"start_chapter"`
	StartVerse   int    `json:"start_verse"`
	EndChapter   int    `json:"end_chapter"`
	EndVerse     int    `json:"end_verse"`
}

// Load reads and validates a corpus file from disk.
func Load(path string) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return parse(raw)
}

// LoadDefault returns the corpus embedded in the binary.
func LoadDefault() (*Corpus, error) {
	return parse(defaultCorpus)
}

func parse(raw []byte) (*Corpus, error) {
	if err := validateCorpus(raw); err != nil {
		return nil, err
	}
	var c Corpus
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	c.buildIndex()
	sort.Slice(c.Plan, func(i, j int) bool { return c.Plan[i].Day < c.Plan[j].Day })
	return &c, nil
}

func (c *Corpus) buildIndex() {
	c.index = make(map[string]map[int]map[int]string, len(c.Books))
	for _, b := range c.Books {
		chapters := make(map[int]map[int]string, len(b.Chapters))
		for _, ch := range b.Chapters {
			verses := make(map[int]string, len(ch.Verses))
			for _, v := range ch.Verses {
				verses[v.Verse] = v.Text
			}
			chapters[ch.Chapter] = verses
		}
		c.index[strings.ToLower(b.Name)] = chapters
	}
}

// DayPassage returns the reading assigned to the given plan day.
func (c *Corpus) DayPassage(day int) (Passage, bool) {
	for _, p := range c.Plan {
		if p.Day == day {
			return p, true
		}
	}
	return Passage{}, false
}

// Days reports how many plan days the corpus defines.
func (c *Corpus) Days() int {
	return len(c.Plan)
}

// BookNames lists the canonical book names in corpus order. Useful as a
// distractor pool for reference questions.
func (c *Corpus) BookNames() []string {
	names := make([]string, 0, len(c.Books))
	for _, b := range c.Books {
		names = append(names, b.Name)
	}
	return names
}

// canonicalName resolves a case-insensitive book lookup back to the
// corpus spelling, so generated references always match the source.
func (c *Corpus) canonicalName(book string) (string, bool) {
	lower := strings.ToLower(book)
	for _, b := range c.Books {
		if strings.ToLower(b.Name) == lower {
			return b.Name, true
		}
	}
	return "", false
}

// FetchVerses returns every verse in the inclusive range, in reading
// order. Implements verse.Provider.
func (c *Corpus) FetchVerses(book string, startChapter, startVerse, endChapter, endVerse int) ([]verse.Ref, error) {
	name, ok := c.canonicalName(book)
	if !ok {
		return nil, fmt.Errorf("unknown book %q", book)
	}
	chapters := c.index[strings.ToLower(name)]

	var out []verse.Ref
	for chNum := startChapter; chNum <= endChapter; chNum++ {
		texts, ok := chapters[chNum]
		if !ok {
			return nil, fmt.Errorf("%s has no chapter %d", name, chNum)
		}

		nums := make([]int, 0, len(texts))
		for n := range texts {
			nums = append(nums, n)
		}
		sort.Ints(nums)

		for _, n := range nums {
			if chNum == startChapter && n < startVerse {
				continue
			}
			if chNum == endChapter && n > endVerse {
				continue
			}
			ref, err := verse.New(name, chNum, n, texts[n])
			if err != nil {
				return nil, err
			}
			out = append(out, ref)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s %d:%d-%d:%d matched no verses", name, startChapter, startVerse, endChapter, endVerse)
	}
	return out, nil
}

// PassageVerses fetches the verses for an entire plan passage.
func (c *Corpus) PassageVerses(p Passage) ([]verse.Ref, error) {
	return c.FetchVerses(p.Book, p.StartChapter, p.StartVerse, p.EndChapter, p.EndVerse)
}
