package checklist

import (
	"fmt"
	"strings"
)

// ValidationError rejects a Next transition. The session does not
// advance and nothing is recorded.
type ValidationError struct {
	QuestionID string `json:"question_id"`
	Reason     string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Reason)
}

func verr(qid, format string, args ...any) *ValidationError {
	return &ValidationError{QuestionID: qid, Reason: fmt.Sprintf(format, args...)}
}

// validateAnswer is the per-step gate. It checks presence of a value,
// required free text, required photo references and sub-selections for
// every selected option that carries a sub-tree.
func validateAnswer(q *Question, a Answer) *ValidationError {
	switch q.Kind {
	case KindSingle:
		if len(a.Values) != 1 || a.Values[0] == "" {
			return verr(q.ID, "an answer is required")
		}
	case KindMulti:
		if len(a.Values) == 0 {
			return verr(q.ID, "at least one answer is required")
		}
	case KindText:
		if strings.TrimSpace(a.Text) == "" {
			return verr(q.ID, "text is required")
		}
	case KindPhoto:
		if len(a.Photos) == 0 {
			return verr(q.ID, "a photo reference is required")
		}
	}
	if q.RequirePhoto && len(a.Photos) == 0 {
		return verr(q.ID, "a photo reference is required")
	}
	for _, v := range a.Values {
		opt, ok := q.Option(v)
		if !ok {
			return verr(q.ID, "unknown option %q", v)
		}
		if opt.RequiresText && strings.TrimSpace(a.Text) == "" {
			return verr(q.ID, "option %q requires a text comment", v)
		}
		if len(opt.SubOptions) > 0 {
			if e := validateSubTree(q.ID, opt, opt.Value, a); e != nil {
				return e
			}
		}
	}
	return nil
}

// validateSubTree walks one option's sub-tree. Sub-selections are
// keyed by option path: the top option value, then "parent/child" for
// deeper levels.
func validateSubTree(qid string, opt *Option, path string, a Answer) *ValidationError {
	sel := a.Sub[path]
	if len(sel) == 0 {
		return verr(qid, "option %q requires a detail selection", path)
	}
	if !opt.AllowMultiple && len(sel) > 1 {
		return verr(qid, "option %q allows a single detail selection", path)
	}
	for _, v := range sel {
		child, ok := opt.Sub(v)
		if !ok {
			return verr(qid, "unknown detail %q under %q", v, path)
		}
		if child.RequiresText && strings.TrimSpace(a.Text) == "" {
			return verr(qid, "detail %q requires a text comment", v)
		}
		if len(child.SubOptions) > 0 {
			if e := validateSubTree(qid, child, path+"/"+v, a); e != nil {
				return e
			}
		}
	}
	return nil
}
