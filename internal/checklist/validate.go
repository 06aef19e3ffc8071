package checklist

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxOptionDepth caps option nesting (top-level option = level 1).
const maxOptionDepth = 3

// Validate checks a definition for authoring errors that would
// otherwise surface as aliasing or dead-jump bugs at runtime:
// duplicate ids, duplicate option values within one option list,
// choice questions without options, dangling skip targets and
// condition dependencies, and over-deep option trees.
func Validate(c *Checklist) error {
	if c.ID == "" {
		return fmt.Errorf("checklist: missing id")
	}
	if len(c.Sections) == 0 {
		return fmt.Errorf("checklist %s: no sections", c.ID)
	}
	switch c.Policy {
	case "", ActivateUnconditional, ActivateFirstOnly:
	default:
		return fmt.Errorf("checklist %s: unknown policy %q", c.ID, c.Policy)
	}

	sectionIDs := map[string]bool{}
	questionIDs := map[string]bool{}
	for _, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("checklist %s: section with empty id", c.ID)
		}
		if sectionIDs[s.ID] {
			return fmt.Errorf("checklist %s: duplicate section id %q", c.ID, s.ID)
		}
		sectionIDs[s.ID] = true
		for _, q := range s.Questions {
			if q.ID == "" {
				return fmt.Errorf("section %s: question with empty id", s.ID)
			}
			if questionIDs[q.ID] {
				return fmt.Errorf("checklist %s: duplicate question id %q", c.ID, q.ID)
			}
			questionIDs[q.ID] = true
			if err := validateQuestion(&q); err != nil {
				return err
			}
		}
	}

	// Cross-references resolve only after all ids are known.
	for _, s := range c.Sections {
		if s.Condition != nil {
			if s.Condition.DependsOn == "" || s.Condition.Value == "" {
				return fmt.Errorf("section %s: incomplete condition", s.ID)
			}
			if !questionIDs[s.Condition.DependsOn] {
				return fmt.Errorf("section %s: condition depends on unknown question %q", s.ID, s.Condition.DependsOn)
			}
		}
		for _, q := range s.Questions {
			for _, o := range q.Options {
				if err := validateSkips(&o, q.ID, sectionIDs, questionIDs); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func validateQuestion(q *Question) error {
	switch q.Kind {
	case KindSingle, KindMulti:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: choice kind without options", q.ID)
		}
	case KindText, KindPhoto:
	default:
		return fmt.Errorf("question %s: unknown kind %q", q.ID, q.Kind)
	}
	return validateOptions(q.ID, q.Options, 1)
}

func validateOptions(qid string, opts []Option, depth int) error {
	if len(opts) == 0 {
		return nil
	}
	if depth > maxOptionDepth {
		return fmt.Errorf("question %s: option nesting exceeds %d levels", qid, maxOptionDepth)
	}
	seen := map[string]bool{}
	for _, o := range opts {
		if o.Value == "" {
			return fmt.Errorf("question %s: option with empty value", qid)
		}
		// Option values double as list keys and answer-equality keys;
		// duplicates alias selections.
		if seen[o.Value] {
			return fmt.Errorf("question %s: duplicate option value %q", qid, o.Value)
		}
		seen[o.Value] = true
		if err := validateOptions(qid, o.SubOptions, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func validateSkips(o *Option, qid string, sections, questions map[string]bool) error {
	if o.SkipTo != "" && !sections[o.SkipTo] && !questions[o.SkipTo] {
		return fmt.Errorf("question %s: option %q skips to unknown target %q", qid, o.Value, o.SkipTo)
	}
	for i := range o.SubOptions {
		if err := validateSkips(&o.SubOptions[i], qid, sections, questions); err != nil {
			return err
		}
	}
	return nil
}

// LoadJSON decodes and validates a checklist definition.
func LoadJSON(r io.Reader) (*Checklist, error) {
	var c Checklist
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode checklist: %w", err)
	}
	if c.Policy == "" {
		c.Policy = ActivateUnconditional
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
