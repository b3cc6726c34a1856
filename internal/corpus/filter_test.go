package corpus

import (
	"reflect"
	"testing"
)

func testPool() *Pool {
	return &Pool{
		Characters: []Entry{
			{Text: "山", Pronunciation: "shān", Source: "课文1", Category: CategoryChar},
			{Text: "水", Pronunciation: "shuǐ", Source: "课文1", Category: CategoryChar},
			{Text: "日", Pronunciation: "rì", Source: "课文2", Category: CategoryChar},
		},
		ShortPhrases: []Entry{
			{Text: "高山", Pronunciation: "gāo shān", Source: "课文1", Category: CategoryShortPhrase},
		},
		LongPhrases: []Entry{
			{Text: "山清水秀", Pronunciation: "shān qīng shuǐ xiù", Source: "课文3", Category: CategoryLongPhrase},
		},
	}
}

func texts(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}

func TestFilterByDifficulty(t *testing.T) {
	pool := testPool()

	tests := []struct {
		difficulty Difficulty
		want       []string
	}{
		{DifficultySimple, []string{"山", "水", "日"}},
		{DifficultyMedium, []string{"山", "水", "日", "高山"}},
		{DifficultyHard, []string{"山", "水", "日", "高山", "山清水秀"}},
		{Difficulty("expert"), []string{"山", "水", "日"}},
		{Difficulty(""), []string{"山", "水", "日"}},
	}

	for _, tt := range tests {
		got := texts(FilterByDifficulty(pool, tt.difficulty))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilterByDifficulty(%q) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func TestFilterByDifficulty_DoesNotAliasPool(t *testing.T) {
	pool := testPool()
	got := FilterByDifficulty(pool, DifficultyMedium)
	got[0].Text = "changed"

	if pool.Characters[0].Text != "山" {
		t.Errorf("pool was modified through filter result: %q", pool.Characters[0].Text)
	}
}

func TestFilterBySource(t *testing.T) {
	entries := FilterByDifficulty(testPool(), DifficultyHard)

	if got := FilterBySource(entries, ""); len(got) != len(entries) {
		t.Errorf("empty source: got %d entries, want %d", len(got), len(entries))
	}
	if got := FilterBySource(entries, "all"); len(got) != len(entries) {
		t.Errorf("all: got %d entries, want %d", len(got), len(entries))
	}

	got := texts(FilterBySource(entries, "课文1"))
	want := []string{"山", "水", "高山"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterBySource(课文1) = %v, want %v", got, want)
	}

	if got := FilterBySource(entries, "课文9"); len(got) != 0 {
		t.Errorf("unknown source: got %v, want none", texts(got))
	}
}

func TestSources(t *testing.T) {
	entries := FilterByDifficulty(testPool(), DifficultyHard)
	entries = append(entries, Entry{Text: "x"})

	got := Sources(entries)
	want := []string{"课文1", "课文2", "课文3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sources = %v, want %v", got, want)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in     string
		want   Difficulty
		wantOK bool
	}{
		{"simple", DifficultySimple, true},
		{"medium", DifficultyMedium, true},
		{"hard", DifficultyHard, true},
		{"nightmare", DifficultySimple, false},
	}

	for _, tt := range tests {
		got, ok := ParseDifficulty(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseDifficulty(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
