package checklist

// ActivationPolicy controls how sections without a condition are
// treated. The shipped questionnaires disagree on this, so the policy
// is an explicit per-checklist tag rather than a global assumption.
type ActivationPolicy string

const (
	// ActivateUnconditional includes every section that has no
	// condition, regardless of position. Default.
	ActivateUnconditional ActivationPolicy = "unconditional"
	// ActivateFirstOnly includes only the leading section
	// unconditionally; all later sections need a matching condition.
	ActivateFirstOnly ActivationPolicy = "first-only"
)

// ActiveSections computes the ordered list of sections currently
// eligible to be visited. It is a pure function of (sections, answers,
// policy): it must be recomputed after every answer mutation, so that
// changing an earlier answer retroactively changes reachability.
//
// The first section is always active. A conditional section is active
// iff an answer exists for its dependency question whose value matches
// exactly (membership for multi-valued answers).
func ActiveSections(sections []Section, answers AnswerList, policy ActivationPolicy) []Section {
	if len(sections) == 0 {
		return nil
	}
	out := make([]Section, 0, len(sections))
	out = append(out, sections[0])
	for _, s := range sections[1:] {
		if s.Condition == nil {
			if policy != ActivateFirstOnly {
				out = append(out, s)
			}
			continue
		}
		a, ok := answers.Get(s.Condition.DependsOn)
		if ok && a.HasValue(s.Condition.Value) {
			out = append(out, s)
		}
	}
	return out
}
