package checklist

// Answer is one recorded answer. For choice kinds Values holds the
// selected option values (a single element for KindSingle). Sub holds
// nested sub-selections keyed by option path: the top-level option
// value for its direct sub-tree, then "parent/child" for deeper levels
// (e.g. "bad" -> ["left","right"], "bad/left" -> ["smearing"]).
type Answer struct {
	QuestionID string              `json:"question_id"`
	Values     []string            `json:"values,omitempty"`
	Sub        map[string][]string `json:"sub,omitempty"`
	Text       string              `json:"text,omitempty"`
	Photos     []string            `json:"photos,omitempty"`
}

// Value returns the primary selected value, or "" when none.
func (a Answer) Value() string {
	if len(a.Values) == 0 {
		return ""
	}
	return a.Values[0]
}

// HasValue reports whether v is among the selected values.
func (a Answer) HasValue(v string) bool {
	for _, s := range a.Values {
		if s == v {
			return true
		}
	}
	return false
}

// AnswerList is the ordered answer store for one session. At most one
// entry exists per question id; re-recording replaces in place without
// disturbing the order of other entries.
type AnswerList []Answer

// Get returns the recorded answer for a question id.
func (l AnswerList) Get(questionID string) (Answer, bool) {
	for _, a := range l {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Answer{}, false
}

// Put upserts an answer by question id.
func (l *AnswerList) Put(a Answer) {
	for i := range *l {
		if (*l)[i].QuestionID == a.QuestionID {
			(*l)[i] = a
			return
		}
	}
	*l = append(*l, a)
}

// Clone returns a shallow copy of the list itself (entries shared).
func (l AnswerList) Clone() AnswerList {
	out := make(AnswerList, len(l))
	copy(out, l)
	return out
}
