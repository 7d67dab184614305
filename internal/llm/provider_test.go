package llm

import (
	"strings"
	"testing"
)

func testItems() []ReviewItem {
	return []ReviewItem{
		{
			Word:    "замку",
			Context: "Ми дійшли до замку над річкою.",
			Options: []string{"за́мку", "замку́"},
			Chosen:  "за́мку",
		},
		{
			Word:    "Дорога",
			Context: "Дорога додому.",
			Options: []string{"доро́га", "дорога́"},
			Chosen:  "доро́га",
		},
	}
}

func TestBuildReviewPrompt(t *testing.T) {
	prompt := BuildReviewPrompt(testItems())

	if !strings.Contains(prompt, "1. замку in: Ми дійшли до замку над річкою.") {
		t.Errorf("Expected first item line in prompt, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "options: за́мку, замку́") {
		t.Error("Expected options list in prompt")
	}
	if !strings.Contains(prompt, "applied: доро́га") {
		t.Error("Expected applied form in prompt")
	}
	if !strings.Contains(prompt, "Never invent a stress position") {
		t.Error("Expected the no-invention rule in prompt")
	}
}

func TestParseSuggestions(t *testing.T) {
	items := testItems()
	raw := "1. замку́\n2. доро́га\n"

	suggestions, err := parseSuggestions(raw, items, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Word != "замку" || suggestions[0].Stressed != "замку́" {
		t.Errorf("Unexpected first suggestion: %+v", suggestions[0])
	}
	if suggestions[0].Agrees {
		t.Error("Expected first suggestion to disagree with the applied form")
	}
	if suggestions[1].Stressed != "доро́га" || !suggestions[1].Agrees {
		t.Errorf("Expected agreeing доро́га, got %+v", suggestions[1])
	}
}

func TestParseSuggestions_SkipsChatter(t *testing.T) {
	items := testItems()
	raw := "Here are my picks:\n1. The form замку́ fits the genitive here.\nNot an answer line.\n2) доро́га\n"

	suggestions, err := parseSuggestions(raw, items, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Stressed != "замку́" {
		t.Errorf("Expected замку́, got %q", suggestions[0].Stressed)
	}
}

func TestParseSuggestions_StrictRejectsUnknownForm(t *testing.T) {
	items := testItems()
	// дорога́ carries a mark but is not among the options for item 1
	raw := "1. дорога́\n"

	_, err := parseSuggestions(raw, items, true)
	if err == nil {
		t.Fatal("Expected error for a form outside the allowed options")
	}
}

func TestParseSuggestions_LenientDropsUnknownForm(t *testing.T) {
	items := testItems()
	raw := "1. дорога́\n2. дорога́\n"

	suggestions, err := parseSuggestions(raw, items, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("Expected 1 suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Word != "Дорога" || suggestions[0].Stressed != "дорога́" {
		t.Errorf("Unexpected suggestion: %+v", suggestions[0])
	}
}

func TestParseSuggestions_UnaccentedAnswerIgnored(t *testing.T) {
	items := testItems()
	raw := "1. замку\n2. дорога\n"

	suggestions, err := parseSuggestions(raw, items, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("Expected no suggestions for unaccented answers, got %d", len(suggestions))
	}
}

func TestParseSuggestions_CaseFolded(t *testing.T) {
	items := testItems()
	raw := "2. Доро́га\n"

	suggestions, err := parseSuggestions(raw, items, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Stressed != "доро́га" {
		t.Errorf("Expected case-folded доро́га, got %+v", suggestions)
	}
	if !suggestions[0].Agrees {
		t.Error("Expected the case-folded answer to agree with the applied form")
	}
}

func TestParseSuggestions_OutOfRangeNumber(t *testing.T) {
	items := testItems()
	raw := "7. замку́\n0. доро́га\n"

	suggestions, err := parseSuggestions(raw, items, true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("Expected no suggestions for out-of-range numbers, got %d", len(suggestions))
	}
}

func TestExtractStressedForms(t *testing.T) {
	forms := extractStressedForms("Від за́мку до замку́ йшла доро́га, а поруч дорога. За́мку!")

	want := []string{"за́мку", "замку́", "доро́га"}
	if len(forms) != len(want) {
		t.Fatalf("Expected %d forms, got %d: %v", len(want), len(forms), forms)
	}
	for i := range want {
		if forms[i] != want[i] {
			t.Errorf("Expected %q at %d, got %q", want[i], i, forms[i])
		}
	}
}

func TestExtractStressedForms_Apostrophe(t *testing.T) {
	forms := extractStressedForms("У нас велика сім'я́.")

	if len(forms) != 1 || forms[0] != "сім'я́" {
		t.Errorf("Expected сім'я́, got %v", forms)
	}
}

func TestConfig_Temperature(t *testing.T) {
	c := Config{}
	if c.temperature() != 0.3 {
		t.Errorf("Expected default temperature 0.3, got %f", c.temperature())
	}

	c.Temperature = 0.7
	if c.temperature() != 0.7 {
		t.Errorf("Expected temperature 0.7, got %f", c.temperature())
	}
}
