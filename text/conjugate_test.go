package text

import "testing"

func TestConjugateLiteral(t *testing.T) {
	got := Conjugate(Lit("repos"), "", nil, "")
	if got != " repos" {
		t.Fatalf("got %q", got)
	}
}

func TestConjugateFormTakesPriority(t *testing.T) {
	inflected := Inflect(map[string]string{"past": "liked", "oneSg": "like", "threeSg": "likes"})
	got := Conjugate(inflected, "threeSg", &GramProps{Form: "past"}, "")
	if got != " liked" {
		t.Fatalf("form should win over personNumber, got %q", got)
	}
}

func TestConjugateAcceptedTense(t *testing.T) {
	inflected := Inflect(map[string]string{"past": "liked", "present": "like"})
	got := Conjugate(inflected, "", &GramProps{AcceptedTense: "past"}, "past")
	if got != " liked" {
		t.Fatalf("got %q", got)
	}
}

func TestConjugatePersonNumberFallback(t *testing.T) {
	inflected := Inflect(map[string]string{"oneSg": "like", "threeSg": "likes"})
	got := Conjugate(inflected, "threeSg", nil, "")
	if got != " likes" {
		t.Fatalf("got %q", got)
	}
}

func TestConjugateNoMatchFails(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Conjugate to panic when no inflected form matches")
		}
	}()
	inflected := Inflect(map[string]string{"oneSg": "like"})
	Conjugate(inflected, "threeSg", nil, "")
}

func TestConjugateSequence(t *testing.T) {
	got := Conjugate(Seq(Lit("have"), Lit("liked")), "", nil, "")
	if got != " have liked" {
		t.Fatalf("got %q", got)
	}
}
