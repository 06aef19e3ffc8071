package checklist

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotComplete = errors.New("session not complete")
	ErrPackaged    = errors.New("report already packaged")
)

// Report is the immutable result record assembled when a session
// completes: session context, the answers for the finally-active path,
// and the section ids actually visited (conditional paths mean not all
// sections are always visited).
type Report struct {
	ID           string     `json:"id"`
	ChecklistID  string     `json:"checklist_id"`
	MechanicID   string     `json:"mechanic_id"`
	MechanicName string     `json:"mechanic_name"`
	CarNumber    string     `json:"car_number"`
	Mileage      int        `json:"mileage"`
	Answers      AnswerList `json:"answers"`
	Sections     []string   `json:"sections"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Report packages the completed session exactly once. Answers recorded
// in sections that are no longer active (a dependency answer changed
// along the way) are excluded.
func (s *Session) Report() (Report, error) {
	if s.state != StateComplete {
		return Report{}, ErrNotComplete
	}
	if s.packaged {
		return Report{}, ErrPackaged
	}

	active := s.active()
	visited := make([]string, 0, len(active))
	inPath := map[string]bool{}
	for _, sec := range active {
		visited = append(visited, sec.ID)
		for _, q := range sec.Questions {
			inPath[q.ID] = true
		}
	}
	answers := make(AnswerList, 0, len(s.answers))
	for _, a := range s.answers {
		if inPath[a.QuestionID] {
			answers = append(answers, a)
		}
	}

	s.packaged = true
	return Report{
		ID:           uuid.NewString(),
		ChecklistID:  s.cl.ID,
		MechanicID:   s.ctx.MechanicID,
		MechanicName: s.ctx.MechanicName,
		CarNumber:    s.ctx.CarNumber,
		Mileage:      s.ctx.Mileage,
		Answers:      answers,
		Sections:     visited,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
