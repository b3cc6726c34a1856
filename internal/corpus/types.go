package corpus

// Category classifies an entry by the length of its text.
type Category string

const (
	CategoryChar        Category = "char"
	CategoryShortPhrase Category = "short_phrase"
	CategoryLongPhrase  Category = "long_phrase"
)

// Difficulty selects both the breadth of the pool and the question count.
type Difficulty string

const (
	DifficultySimple Difficulty = "simple"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns all difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultySimple, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultySimple, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// DisplayName returns a human-readable label for the difficulty.
func (d Difficulty) DisplayName() string {
	switch d {
	case DifficultySimple:
		return "Simple"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// ParseDifficulty maps a string to a Difficulty. Unknown values fall back
// to DifficultySimple; ok reports whether the input was recognized.
func ParseDifficulty(s string) (d Difficulty, ok bool) {
	d = Difficulty(s)
	if d.Valid() {
		return d, true
	}
	return DifficultySimple, false
}

// Entry is a single learnable item. Entries are immutable once parsed.
type Entry struct {
	Text          string   `json:"text"`
	Pronunciation string   `json:"pinyin"`
	Source        string   `json:"source"`
	Category      Category `json:"type"`
}

// Pool holds the parsed corpus split into its three tiers. It is built once
// per corpus load and read-only afterwards.
type Pool struct {
	Characters   []Entry
	ShortPhrases []Entry
	LongPhrases  []Entry
}

// Total returns the number of entries across all tiers.
func (p *Pool) Total() int {
	if p == nil {
		return 0
	}
	return len(p.Characters) + len(p.ShortPhrases) + len(p.LongPhrases)
}

// Empty reports whether the pool has no entries at all.
func (p *Pool) Empty() bool {
	return p.Total() == 0
}

// Corpus is the raw document shape the pool is built from.
type Corpus struct {
	Characters *CharacterSection `json:"characters"`
}

// CharacterSection holds the ordered recognition groups.
type CharacterSection struct {
	RecognitionList []Group `json:"recognitionList"`
}

// Group is a named run of items sharing a source label.
type Group struct {
	Source string `json:"source"`
	Items  []Item `json:"items"`
}

// Item is one raw corpus record. Char and Phrase each contribute an entry
// when present; a non-empty Ref overrides the group source for both.
type Item struct {
	Char   string `json:"char,omitempty"`
	Phrase string `json:"phrase,omitempty"`
	Pinyin string `json:"pinyin,omitempty"`
	Ref    string `json:"ref,omitempty"`
}
