package segment

import (
	"strings"
	"testing"
)

func TestSplitBasicSentences(t *testing.T) {
	got := Split("Deberías revisar tu insulina. ¿Has comido algo?")
	want := []string{"Deberías revisar tu insulina.", "¿Has comido algo?"}
	assertEqual(t, got, want)
}

func TestSplitKeepsDelimiterAttached(t *testing.T) {
	got := Split("Hola! Qué gusto verte. Cuéntame más")
	want := []string{"Hola!", "Qué gusto verte.", "Cuéntame más"}
	assertEqual(t, got, want)
}

func TestSplitEllipsisStaysWithSentence(t *testing.T) {
	got := Split("Déjame pensar... Creo que sí.")
	want := []string{"Déjame pensar...", "Creo que sí."}
	assertEqual(t, got, want)
}

func TestSplitDropsNoiseCandidates(t *testing.T) {
	cases := []string{"", "   ", ".", "...", ". . ... .", "a. b. ?"}
	for _, input := range cases {
		for _, s := range Split(input) {
			trimmed := strings.TrimSpace(s)
			if trimmed == "" || trimmed == "." || trimmed == "..." || len([]rune(trimmed)) <= 1 {
				t.Fatalf("Split(%q) kept noise candidate %q", input, s)
			}
		}
	}
}

func TestSplitEmptyInput(t *testing.T) {
	if got := Split(""); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestSplitSingleSentenceNoTrailingWhitespace(t *testing.T) {
	got := Split("¿Cómo te sientes hoy?")
	want := []string{"¿Cómo te sientes hoy?"}
	assertEqual(t, got, want)
}

func TestSplitStableUnderResegmentation(t *testing.T) {
	inputs := []string{
		"Hola. ¿Cómo estás? Me alegra verte!",
		"Primero mide tu glucosa. Luego anota el valor. Después descansa",
		"Déjame pensar... Bien. Sigue así!",
	}
	for _, input := range inputs {
		first := Split(input)
		second := Split(strings.Join(first, " "))
		assertEqual(t, second, first)
	}
}

func assertEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d segments %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("segment %d: got %q want %q", i, got[i], want[i])
		}
	}
}
