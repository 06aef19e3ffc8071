package checklist

import (
	"fmt"
	"strings"
	"time"
)

// State of a wizard session.
type State string

const (
	StateAwaitingContext State = "awaiting_context"
	StateInProgress      State = "in_progress"
	StateComplete        State = "complete"
	StateCancelled       State = "cancelled"
)

// Context is the identity and vehicle metadata confirmed at session
// start. It is immutable for the session's lifetime.
type Context struct {
	MechanicID   string `json:"mechanic_id"`
	MechanicName string `json:"mechanic_name"`
	CarNumber    string `json:"car_number"`
	Mileage      int    `json:"mileage"`
}

// Step identifies the question the session is currently standing on,
// with positional info for progress display.
type Step struct {
	SectionID    string   `json:"section_id"`
	SectionTitle string   `json:"section_title"`
	Question     Question `json:"question"`
	Index        int      `json:"index"` // zero-based across the active path
	Total        int      `json:"total"` // questions in the active path
}

// BackResult is the outcome of a Back transition. When Cancelled is
// set the session has terminated (back at the very first step exits).
// Otherwise Step is the step moved to and Recorded the previously
// stored answer for it, for re-hydration into editable state.
type BackResult struct {
	Cancelled   bool   `json:"cancelled"`
	Step        Step   `json:"step"`
	Recorded    Answer `json:"recorded"`
	HasRecorded bool   `json:"has_recorded"`
}

// Session is the traversal state machine over one checklist. It is
// synchronous and single-owner: all transitions happen in response to
// discrete caller events, and the only mutation it performs is on its
// own answer list.
type Session struct {
	cl        *Checklist
	ctx       Context
	answers   AnswerList
	state     State
	secID     string // current section id; resolved against the active list
	qIdx      int    // question index within the current section
	packaged  bool
	startedAt time.Time
}

// NewSession creates a session in AwaitingContext.
func NewSession(cl *Checklist) *Session {
	return &Session{cl: cl, state: StateAwaitingContext}
}

func (s *Session) State() State          { return s.state }
func (s *Session) Context() Context      { return s.ctx }
func (s *Session) Checklist() *Checklist { return s.cl }
func (s *Session) StartedAt() time.Time  { return s.startedAt }

// Answers returns a copy of the accumulated answer list.
func (s *Session) Answers() AnswerList { return s.answers.Clone() }

// Begin confirms the session context and moves to InProgress. A
// checklist whose active path holds no questions completes vacuously.
func (s *Session) Begin(ctx Context) error {
	if s.state != StateAwaitingContext {
		return fmt.Errorf("begin: session is %s", s.state)
	}
	if ctx.MechanicID == "" || strings.TrimSpace(ctx.MechanicName) == "" {
		return fmt.Errorf("begin: mechanic identity required")
	}
	if strings.TrimSpace(ctx.CarNumber) == "" {
		return fmt.Errorf("begin: car number required")
	}
	if ctx.Mileage <= 0 {
		return fmt.Errorf("begin: mileage must be positive")
	}
	ctx.CarNumber = strings.ToUpper(strings.TrimSpace(ctx.CarNumber))
	s.ctx = ctx
	s.startedAt = time.Now()

	active := s.active()
	si, qi, ok := firstStep(active)
	if !ok {
		s.state = StateComplete
		return nil
	}
	s.state = StateInProgress
	s.secID = active[si].ID
	s.qIdx = qi
	return nil
}

// Current returns the step the session is standing on.
func (s *Session) Current() (Step, bool) {
	if s.state != StateInProgress {
		return Step{}, false
	}
	active := s.active()
	si, ok := s.locate(active)
	if !ok || s.qIdx >= len(active[si].Questions) {
		return Step{}, false
	}
	return stepAt(active, si, s.qIdx), true
}

// Next records the answer for the current question and advances. The
// validation gate runs first: on failure a *ValidationError is
// returned and nothing changes. On success the answer is upserted, the
// active path recomputed, skip targets resolved (forward-only, falling
// back to sequential advance when unresolvable), and the pointer moved.
// done is true when the checklist is exhausted and the session is
// Complete.
func (s *Session) Next(draft Answer) (next Step, done bool, err error) {
	if s.state != StateInProgress {
		return Step{}, false, fmt.Errorf("next: session is %s", s.state)
	}
	active := s.active()
	si, ok := s.locate(active)
	if !ok || s.qIdx >= len(active[si].Questions) {
		return Step{}, false, fmt.Errorf("next: no current question")
	}
	q := active[si].Questions[s.qIdx]
	draft.QuestionID = q.ID
	if verr := validateAnswer(&q, draft); verr != nil {
		return Step{}, false, verr
	}
	s.answers.Put(draft)

	// Recompute: the recorded answer may have switched later sections
	// on or off.
	active = s.active()

	if tsi, tqi, ok := s.skipTarget(&q, draft, active); ok {
		s.secID = active[tsi].ID
		s.qIdx = tqi
		return stepAt(active, tsi, tqi), false, nil
	}

	nsi, nqi, ok := s.nextSequential(active)
	if !ok {
		s.state = StateComplete
		return Step{}, true, nil
	}
	s.secID = active[nsi].ID
	s.qIdx = nqi
	return stepAt(active, nsi, nqi), false, nil
}

// Back moves to the previous question, crossing section boundaries
// backward through the active path. The answer store keeps the answer
// of the step moved away from. Back at the very first step cancels the
// session; this is a deliberate exit affordance, not an error.
func (s *Session) Back() (BackResult, error) {
	switch s.state {
	case StateAwaitingContext:
		s.state = StateCancelled
		return BackResult{Cancelled: true}, nil
	case StateInProgress:
	default:
		return BackResult{}, fmt.Errorf("back: session is %s", s.state)
	}

	active := s.active()
	si, ok := s.locate(active)
	if !ok {
		si = len(active) // fell off the path; walk back from the end
	}
	psi, pqi, ok := prevStep(active, si, s.qIdx)
	if !ok {
		s.state = StateCancelled
		return BackResult{Cancelled: true}, nil
	}
	s.secID = active[psi].ID
	s.qIdx = pqi
	step := stepAt(active, psi, pqi)
	rec, has := s.answers.Get(step.Question.ID)
	return BackResult{Step: step, Recorded: rec, HasRecorded: has}, nil
}

// Cancel abandons the session. Completed sessions cannot be cancelled.
func (s *Session) Cancel() error {
	switch s.state {
	case StateAwaitingContext, StateInProgress:
		s.state = StateCancelled
		return nil
	default:
		return fmt.Errorf("cancel: session is %s", s.state)
	}
}

func (s *Session) active() []Section {
	return ActiveSections(s.cl.Sections, s.answers, s.cl.Policy)
}

// locate finds the current section's index in the active list.
func (s *Session) locate(active []Section) (int, bool) {
	for i := range active {
		if active[i].ID == s.secID {
			return i, true
		}
	}
	return 0, false
}

// skipTarget resolves a skip attached to any chosen option; when
// several selected options carry one, selection order decides. Targets
// may name a question or a section. Only strictly forward positions in
// the active path are honored; anything else degrades to sequential
// advance (this also rules out skip loops).
func (s *Session) skipTarget(q *Question, a Answer, active []Section) (int, int, bool) {
	if q.Kind != KindSingle && q.Kind != KindMulti {
		return 0, 0, false
	}
	csi, ok := s.locate(active)
	if !ok {
		return 0, 0, false
	}
	for _, v := range a.Values {
		opt, ok := q.Option(v)
		if !ok || opt.SkipTo == "" {
			continue
		}
		tsi, tqi, found := findTarget(active, opt.SkipTo)
		if !found {
			continue
		}
		if tsi < csi || (tsi == csi && tqi <= s.qIdx) {
			continue
		}
		return tsi, tqi, true
	}
	return 0, 0, false
}

// nextSequential finds the step after the current one in the active
// path. When the current section was deactivated by the answer just
// recorded, advance resumes from the next active section that follows
// it in definition order.
func (s *Session) nextSequential(active []Section) (int, int, bool) {
	if csi, ok := s.locate(active); ok {
		if s.qIdx+1 < len(active[csi].Questions) {
			return csi, s.qIdx + 1, true
		}
		return firstStepFrom(active, csi+1)
	}
	defIdx := s.definitionIndex()
	for i := range active {
		if s.definitionIndexOf(active[i].ID) > defIdx {
			return firstStepFrom(active, i)
		}
	}
	return 0, 0, false
}

func (s *Session) definitionIndex() int { return s.definitionIndexOf(s.secID) }

func (s *Session) definitionIndexOf(id string) int {
	for i := range s.cl.Sections {
		if s.cl.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// findTarget locates a question or section id in the active path.
func findTarget(active []Section, target string) (int, int, bool) {
	for i := range active {
		if active[i].ID == target {
			if len(active[i].Questions) == 0 {
				return 0, 0, false
			}
			return i, 0, true
		}
		for j := range active[i].Questions {
			if active[i].Questions[j].ID == target {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func firstStep(active []Section) (int, int, bool) {
	return firstStepFrom(active, 0)
}

// firstStepFrom finds the first question at or after section index
// from, skipping empty sections.
func firstStepFrom(active []Section, from int) (int, int, bool) {
	for i := from; i < len(active); i++ {
		if len(active[i].Questions) > 0 {
			return i, 0, true
		}
	}
	return 0, 0, false
}

// prevStep finds the question before (si, qi), skipping empty sections.
func prevStep(active []Section, si, qi int) (int, int, bool) {
	if si < len(active) && qi > 0 {
		return si, qi - 1, true
	}
	for i := si - 1; i >= 0; i-- {
		if n := len(active[i].Questions); n > 0 {
			return i, n - 1, true
		}
	}
	return 0, 0, false
}

func stepAt(active []Section, si, qi int) Step {
	idx, total := 0, 0
	for i := range active {
		if i < si {
			idx += len(active[i].Questions)
		}
		total += len(active[i].Questions)
	}
	return Step{
		SectionID:    active[si].ID,
		SectionTitle: active[si].Title,
		Question:     active[si].Questions[qi],
		Index:        idx + qi,
		Total:        total,
	}
}
