// Package checklist holds the inspection questionnaire model and the
// traversal state machine that walks a mechanic through it.
package checklist

// Kind is the answer kind of a question.
type Kind string

const (
	KindSingle Kind = "single" // exactly one option
	KindMulti  Kind = "multi"  // one or more options
	KindText   Kind = "text"   // free text
	KindPhoto  Kind = "photo"  // one or more photo references
)

// Option is one selectable choice. Options may nest: picking a defect
// can open a sub-tree of detail choices (observed depth up to 3).
type Option struct {
	Value         string   `json:"value"`
	Label         string   `json:"label"`
	RequiresText  bool     `json:"requires_text,omitempty"`
	AllowMultiple bool     `json:"allow_multiple,omitempty"` // multiple sub-selections allowed
	SubOptions    []Option `json:"sub_options,omitempty"`
	// SkipTo jumps traversal directly to the named question or section
	// when this option is chosen. Unresolvable targets fall back to
	// sequential advance.
	SkipTo string `json:"skip_to,omitempty"`
}

// Sub finds a direct sub-option by value.
func (o *Option) Sub(value string) (*Option, bool) {
	for i := range o.SubOptions {
		if o.SubOptions[i].Value == value {
			return &o.SubOptions[i], true
		}
	}
	return nil, false
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Kind    Kind     `json:"kind"`
	Options []Option `json:"options,omitempty"`
	// AllowText permits an optional free-text comment even when no
	// selected option demands one.
	AllowText    bool `json:"allow_text,omitempty"`
	AllowPhoto   bool `json:"allow_photo,omitempty"`
	RequirePhoto bool `json:"require_photo,omitempty"`
}

// Option finds a top-level option by value.
func (q *Question) Option(value string) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i], true
		}
	}
	return nil, false
}

// Condition gates a section on a previously recorded answer.
type Condition struct {
	DependsOn string `json:"depends_on"` // question id
	Value     string `json:"value"`      // required answer value, exact match
}

type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Condition *Condition `json:"condition,omitempty"`
	Questions []Question `json:"questions"`
}

// Checklist is a read-only questionnaire definition. Instances are
// validated once at load time and never mutated afterwards.
type Checklist struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Policy   ActivationPolicy `json:"policy,omitempty"`
	Sections []Section        `json:"sections"`
}

// Section finds a section by id.
func (c *Checklist) Section(id string) (*Section, bool) {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i], true
		}
	}
	return nil, false
}

// Question finds a question by id anywhere in the checklist.
func (c *Checklist) Question(id string) (*Question, bool) {
	for i := range c.Sections {
		for j := range c.Sections[i].Questions {
			if c.Sections[i].Questions[j].ID == id {
				return &c.Sections[i].Questions[j], true
			}
		}
	}
	return nil, false
}

// QuestionCount is the total number of questions across all sections.
func (c *Checklist) QuestionCount() int {
	n := 0
	for i := range c.Sections {
		n += len(c.Sections[i].Questions)
	}
	return n
}
