package checklist

import (
	"strings"
	"testing"
)

func validDef() *Checklist {
	return &Checklist{
		ID:     "v",
		Title:  "Valid",
		Policy: ActivateUnconditional,
		Sections: []Section{
			{ID: "s1", Questions: []Question{
				{ID: "q1", Kind: KindSingle, Options: []Option{
					{Value: "ok", Label: "OK"},
					{Value: "bad", Label: "Bad", SkipTo: "s2"},
				}},
			}},
			{ID: "s2", Questions: []Question{{ID: "q2", Kind: KindText}}},
		},
	}
}

func TestValidateOK(t *testing.T) {
	if err := Validate(validDef()); err != nil {
		t.Fatalf("valid definition rejected: %v", err)
	}
}

func TestValidateDuplicateOptionValue(t *testing.T) {
	c := validDef()
	c.Sections[0].Questions[0].Options = []Option{
		{Value: "ok", Label: "OK"},
		{Value: "ok", Label: "Also OK"},
	}
	err := Validate(c)
	if err == nil || !strings.Contains(err.Error(), "duplicate option value") {
		t.Fatalf("want duplicate option value error, got %v", err)
	}
}

func TestValidateDanglingSkip(t *testing.T) {
	c := validDef()
	c.Sections[0].Questions[0].Options[1].SkipTo = "nowhere"
	err := Validate(c)
	if err == nil || !strings.Contains(err.Error(), "unknown target") {
		t.Fatalf("want dangling skip error, got %v", err)
	}
}

func TestValidateUnknownConditionDependency(t *testing.T) {
	c := validDef()
	c.Sections[1].Condition = &Condition{DependsOn: "ghost", Value: "x"}
	err := Validate(c)
	if err == nil || !strings.Contains(err.Error(), "unknown question") {
		t.Fatalf("want unknown dependency error, got %v", err)
	}
}

func TestValidateChoiceWithoutOptions(t *testing.T) {
	c := validDef()
	c.Sections[0].Questions[0].Options = nil
	if err := Validate(c); err == nil {
		t.Fatalf("want error for choice kind without options")
	}
}

func TestValidateDepthCap(t *testing.T) {
	deep := Option{Value: "l1", Label: "1", SubOptions: []Option{
		{Value: "l2", Label: "2", SubOptions: []Option{
			{Value: "l3", Label: "3", SubOptions: []Option{
				{Value: "l4", Label: "4"},
			}},
		}},
	}}
	c := validDef()
	c.Sections[0].Questions[0].Options = []Option{deep}
	err := Validate(c)
	if err == nil || !strings.Contains(err.Error(), "nesting") {
		t.Fatalf("want depth cap error, got %v", err)
	}
}

func TestValidateDuplicateQuestionID(t *testing.T) {
	c := validDef()
	c.Sections[1].Questions = append(c.Sections[1].Questions, Question{ID: "q1", Kind: KindText})
	err := Validate(c)
	if err == nil || !strings.Contains(err.Error(), "duplicate question id") {
		t.Fatalf("want duplicate question id error, got %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	src := `{
		"id": "ext",
		"title": "External",
		"sections": [
			{"id": "a", "title": "A", "questions": [
				{"id": "q", "text": "Q?", "kind": "single", "options": [
					{"value": "ok", "label": "OK"},
					{"value": "other", "label": "Other", "requires_text": true}
				]}
			]}
		]
	}`
	c, err := LoadJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Policy != ActivateUnconditional {
		t.Fatalf("want default policy, got %q", c.Policy)
	}
	if _, ok := c.Question("q"); !ok {
		t.Fatalf("question lookup failed after load")
	}
}

func TestLoadJSONRejectsUnknownFields(t *testing.T) {
	if _, err := LoadJSON(strings.NewReader(`{"id":"x","bogus":1}`)); err == nil {
		t.Fatalf("want decode error for unknown field")
	}
}

func TestBuiltinRegistryValid(t *testing.T) {
	r := BuiltinRegistry()
	list := r.List()
	if len(list) != 3 {
		t.Fatalf("want 3 builtin checklists, got %d", len(list))
	}
	for _, s := range list {
		c, ok := r.Get(s.ID)
		if !ok {
			t.Fatalf("builtin %s not retrievable", s.ID)
		}
		if err := Validate(c); err != nil {
			t.Fatalf("builtin %s invalid: %v", s.ID, err)
		}
	}
}
