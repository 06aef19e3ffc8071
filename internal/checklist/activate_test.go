package checklist

import "testing"

func driveSections() []Section {
	return []Section{
		{ID: "s1", Questions: []Question{{ID: "drive_type", Kind: KindSingle, Options: []Option{
			{Value: "front", Label: "Front"},
			{Value: "rear", Label: "Rear"},
			{Value: "all", Label: "All"},
		}}}},
		{ID: "s2", Condition: &Condition{DependsOn: "drive_type", Value: "front"},
			Questions: []Question{{ID: "front_q", Kind: KindSingle, Options: okBadOther}}},
		{ID: "s3", Condition: &Condition{DependsOn: "drive_type", Value: "rear"},
			Questions: []Question{{ID: "rear_q", Kind: KindSingle, Options: okBadOther}}},
		{ID: "s4", Questions: []Question{{ID: "tail_q", Kind: KindText}}},
	}
}

func ids(secs []Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestActiveSectionsConditional(t *testing.T) {
	secs := driveSections()

	var answers AnswerList
	got := ids(ActiveSections(secs, answers, ActivateFirstOnly))
	if !equalIDs(got, []string{"s1"}) {
		t.Fatalf("no answers: want [s1], got %v", got)
	}

	answers.Put(Answer{QuestionID: "drive_type", Values: []string{"front"}})
	got = ids(ActiveSections(secs, answers, ActivateFirstOnly))
	if !equalIDs(got, []string{"s1", "s2"}) {
		t.Fatalf("front: want [s1 s2], got %v", got)
	}

	// Re-answering is retroactive: activation is a function of current
	// answers, not of traversal history.
	answers.Put(Answer{QuestionID: "drive_type", Values: []string{"rear"}})
	got = ids(ActiveSections(secs, answers, ActivateFirstOnly))
	if !equalIDs(got, []string{"s1", "s3"}) {
		t.Fatalf("rear: want [s1 s3], got %v", got)
	}
}

func TestActiveSectionsPolicy(t *testing.T) {
	secs := driveSections()
	var answers AnswerList
	answers.Put(Answer{QuestionID: "drive_type", Values: []string{"all"}})

	got := ids(ActiveSections(secs, answers, ActivateUnconditional))
	if !equalIDs(got, []string{"s1", "s4"}) {
		t.Fatalf("unconditional policy: want [s1 s4], got %v", got)
	}
	got = ids(ActiveSections(secs, answers, ActivateFirstOnly))
	if !equalIDs(got, []string{"s1"}) {
		t.Fatalf("first-only policy: want [s1], got %v", got)
	}
}

func TestActiveSectionsMultiValueMembership(t *testing.T) {
	secs := []Section{
		{ID: "a", Questions: []Question{{ID: "defects", Kind: KindMulti, Options: okBadOther}}},
		{ID: "b", Condition: &Condition{DependsOn: "defects", Value: "bad"},
			Questions: []Question{{ID: "detail", Kind: KindText}}},
	}
	var answers AnswerList
	answers.Put(Answer{QuestionID: "defects", Values: []string{"ok", "bad"}})
	got := ids(ActiveSections(secs, answers, ActivateUnconditional))
	if !equalIDs(got, []string{"a", "b"}) {
		t.Fatalf("membership match: want [a b], got %v", got)
	}
}

func TestActiveSectionsEmpty(t *testing.T) {
	if got := ActiveSections(nil, nil, ActivateUnconditional); got != nil {
		t.Fatalf("empty definition: want nil, got %v", got)
	}
}
