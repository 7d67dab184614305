package engine

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/okovalenko/nagolos/internal/cache"
	"github.com/okovalenko/nagolos/internal/lexicon"
	"github.com/okovalenko/nagolos/internal/score"
	"github.com/okovalenko/nagolos/internal/tokenize"
)

func testEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	store, err := lexicon.Embedded()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	table, err := score.EmbeddedTable()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return New(store, table, opts)
}

func TestEngine_MarksTheCastleSentence(t *testing.T) {
	e := testEngine(t, Options{})

	in := "Він підійшов до замок, що стояв на горі."
	res := e.Mark(in)

	want := "Він підійшо́в до за́мок, що стоя́в на горі́."
	if res.Text != want {
		t.Errorf("Marked text:\n  got  %q\n  want %q", res.Text, want)
	}

	if res.Stats.Words != 8 {
		t.Errorf("Words = %d, want 8", res.Stats.Words)
	}
	if res.Stats.Disambiguated != 1 {
		t.Errorf("Disambiguated = %d, want 1 (замок)", res.Stats.Disambiguated)
	}
	if res.Stats.Defaulted != 1 {
		t.Errorf("Defaulted = %d, want 1 (що)", res.Stats.Defaulted)
	}
	if res.Stats.Unknown != 0 {
		t.Errorf("Unknown = %d, want 0", res.Stats.Unknown)
	}
	if res.Stats.Marked != 4 {
		t.Errorf("Marked = %d, want 4", res.Stats.Marked)
	}

	if len(res.Defaults) != 1 || res.Defaults[0].Key != "що" {
		t.Errorf("Defaults = %+v, want exactly що", res.Defaults)
	}
}

func TestEngine_ReconstructionWithoutLexiconHits(t *testing.T) {
	e := testEngine(t, Options{})

	// Nothing here is in the lexicon, so the output is the input
	in := "Lorem ipsum, 42 dolor \xff sit!"
	res := e.Mark(in)
	if res.Text != in {
		t.Errorf("Output differs from input:\n  got  %q\n  want %q", res.Text, in)
	}
	if res.Stats.Unknown != res.Stats.Words {
		t.Errorf("Unknown = %d, Words = %d; all words should be unknown",
			res.Stats.Unknown, res.Stats.Words)
	}
}

func TestEngine_LengthDeltaEqualsMarkedWords(t *testing.T) {
	e := testEngine(t, Options{})

	inputs := []string{
		"Він підійшов до замок, що стояв на горі.",
		"Дорога додому була довга.",
		"два брати пишуть книгу",
		"",
		"без жодного відомого слова qwerty",
		"Він підійшо́в до за́мок.", // already marked, nothing to add
	}

	for _, in := range inputs {
		res := e.Mark(in)
		delta := utf8.RuneCountInString(res.Text) - utf8.RuneCountInString(in)
		if delta != res.Stats.Marked {
			t.Errorf("Mark(%q): rune delta %d != marked %d", in, delta, res.Stats.Marked)
		}
		if got := strings.Count(res.Text, "́") - strings.Count(in, "́"); got != res.Stats.Marked {
			t.Errorf("Mark(%q): inserted acutes %d != marked %d", in, got, res.Stats.Marked)
		}
	}
}

func TestEngine_OutputDiffersOnlyByMarks(t *testing.T) {
	e := testEngine(t, Options{})

	inputs := []string{
		"Він підійшов до замок, що стояв на горі.",
		"Дорога додому була довга.",
		"ЗАМОК, сім'я і мука.",
	}

	for _, in := range inputs {
		res := e.Mark(in)
		if got := tokenize.StripMarks(res.Text); got != in {
			t.Errorf("Mark(%q): stripping marks gives %q, want the input back", in, got)
		}
	}
}

func TestEngine_DeterministicByteIdentical(t *testing.T) {
	e := testEngine(t, Options{})

	in := "Два брати стояли біля замок. Дорога до села була довга, але гарна."
	first := e.Mark(in)
	for i := 0; i < 5; i++ {
		again := e.Mark(in)
		if again.Text != first.Text {
			t.Fatalf("Run %d produced different bytes:\n  %q\n  %q", i, again.Text, first.Text)
		}
		if again.Stats != first.Stats {
			t.Fatalf("Run %d produced different stats: %+v vs %+v", i, again.Stats, first.Stats)
		}
	}
}

func TestEngine_MarkingIsIdempotent(t *testing.T) {
	e := testEngine(t, Options{})

	in := "Він підійшов до замок, що стояв на горі."
	once := e.Mark(in).Text
	twice := e.Mark(once).Text
	if once != twice {
		t.Errorf("Re-marking changed the text:\n  once  %q\n  twice %q", once, twice)
	}
}

func TestEngine_CaseIsPreserved(t *testing.T) {
	e := testEngine(t, Options{})

	res := e.Mark("ЗАМОК стояв. Замок стояв.")
	if !strings.Contains(res.Text, "ЗА́МОК") {
		t.Errorf("All-caps word lost its casing: %q", res.Text)
	}
	if !strings.Contains(res.Text, "За́мок") {
		t.Errorf("Title-case word lost its casing: %q", res.Text)
	}
}

func TestEngine_EmptySegment(t *testing.T) {
	e := testEngine(t, Options{})
	res := e.Mark("")
	if res.Text != "" || res.Stats.Words != 0 {
		t.Errorf("Empty segment produced %+v", res)
	}
}

func TestEngine_CacheServesRepeats(t *testing.T) {
	mem := cache.NewMemoryCache(time.Minute)
	e := testEngine(t, Options{Cache: mem, CacheTTL: time.Minute})

	in := "Він підійшов до замок."
	first := e.Mark(in)
	if first.Cached {
		t.Fatal("First call reported a cache hit")
	}

	second := e.Mark(in)
	if !second.Cached {
		t.Fatal("Second call missed the cache")
	}
	if second.Text != first.Text {
		t.Errorf("Cached text %q differs from fresh %q", second.Text, first.Text)
	}
	if second.Stats != first.Stats {
		t.Errorf("Cached stats %+v differ from fresh %+v", second.Stats, first.Stats)
	}
}

func TestEngine_DefaultsCarryContext(t *testing.T) {
	e := testEngine(t, Options{})

	// мука with no deciding context: both readings weigh the same
	res := e.Mark("мука лежала поруч")
	var found bool
	for _, dw := range res.Defaults {
		if dw.Key == "мука" {
			found = true
			if dw.Options != 2 {
				t.Errorf("Options = %d, want 2", dw.Options)
			}
			if !strings.Contains(dw.Context, "мука") {
				t.Errorf("Context %q does not mention the word", dw.Context)
			}
			if dw.Chosen != "му́ка" {
				t.Errorf("Chosen = %q, want the first-listed му́ка", dw.Chosen)
			}
		}
	}
	if !found {
		t.Fatalf("мука not reported among defaults: %+v", res.Defaults)
	}
}
