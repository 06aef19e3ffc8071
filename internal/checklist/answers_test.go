package checklist

import "testing"

func TestAnswerListUpsertReplacesInPlace(t *testing.T) {
	var l AnswerList
	l.Put(Answer{QuestionID: "a", Values: []string{"1"}})
	l.Put(Answer{QuestionID: "b", Values: []string{"2"}})
	l.Put(Answer{QuestionID: "c", Values: []string{"3"}})

	l.Put(Answer{QuestionID: "b", Values: []string{"changed"}, Text: "note"})

	if len(l) != 3 {
		t.Fatalf("want 3 answers, got %d", len(l))
	}
	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if l[i].QuestionID != id {
			t.Fatalf("order disturbed at %d: want %s, got %s", i, id, l[i].QuestionID)
		}
	}
	b, ok := l.Get("b")
	if !ok {
		t.Fatalf("answer b missing")
	}
	if b.Value() != "changed" || b.Text != "note" {
		t.Fatalf("second write did not win: %+v", b)
	}
	if a, _ := l.Get("a"); a.Value() != "1" {
		t.Fatalf("unrelated answer changed: %+v", a)
	}
}

func TestAnswerListGetMissing(t *testing.T) {
	var l AnswerList
	if _, ok := l.Get("nope"); ok {
		t.Fatalf("expected miss on empty list")
	}
}

func TestAnswerHasValue(t *testing.T) {
	a := Answer{QuestionID: "q", Values: []string{"x", "y"}}
	if !a.HasValue("y") {
		t.Fatalf("expected membership for y")
	}
	if a.HasValue("z") {
		t.Fatalf("unexpected membership for z")
	}
}
