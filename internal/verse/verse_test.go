package verse

import "testing"

func TestReference_Format(t *testing.T) {
	r, err := New("John", 3, 16, "For God so loved the world")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := r.Reference(); got != "John 3:16" {
		t.Errorf("Reference() = %q, want %q", got, "John 3:16")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		book    string
		chapter int
		verse   int
		text    string
	}{
		{"empty book", "", 1, 1, "text"},
		{"zero chapter", "John", 0, 1, "text"},
		{"zero verse", "John", 1, 0, "text"},
		{"empty text", "John", 1, 1, "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.book, tt.chapter, tt.verse, tt.text); err == nil {
				t.Errorf("New(%q, %d, %d, %q) succeeded, want error", tt.book, tt.chapter, tt.verse, tt.text)
			}
		})
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		in      string
		book    string
		chapter int
		verse   int
		wantErr bool
	}{
		{"John 3:16", "John", 3, 16, false},
		{"1 John 4:8", "1 John", 4, 8, false},
		{"Song of Solomon 2:1", "Song of Solomon", 2, 1, false},
		{"John", "", 0, 0, true},
		{"John 3", "", 0, 0, true},
		{"John 0:16", "", 0, 0, true},
		{"John 3:x", "", 0, 0, true},
	}
	for _, tt := range tests {
		book, chapter, verseNum, err := ParseReference(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseReference(%q) succeeded, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseReference(%q): %v", tt.in, err)
			continue
		}
		if book != tt.book || chapter != tt.chapter || verseNum != tt.verse {
			t.Errorf("ParseReference(%q) = %q %d:%d, want %q %d:%d",
				tt.in, book, chapter, verseNum, tt.book, tt.chapter, tt.verse)
		}
	}
}

func TestParseReference_RoundTrip(t *testing.T) {
	r, _ := New("Psalms", 23, 1, "The LORD is my shepherd; I shall not want.")
	book, chapter, verseNum, err := ParseReference(r.Reference())
	if err != nil {
		t.Fatalf("ParseReference: %v", err)
	}
	if book != r.Book || chapter != r.Chapter || verseNum != r.Verse {
		t.Errorf("round trip = %q %d:%d, want %q %d:%d", book, chapter, verseNum, r.Book, r.Chapter, r.Verse)
	}
}
