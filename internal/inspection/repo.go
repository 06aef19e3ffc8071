// Package inspection persists completed inspection reports.
package inspection

import (
	"context"
	"errors"

	"github.com/autocheck-dev/autocheck/internal/checklist"
)

var ErrNotFound = errors.New("inspection not found")

// Record is a completed inspection as stored.
type Record struct {
	ID           string             `json:"id"`
	ChecklistID  string             `json:"checklist_id"`
	MechanicID   string             `json:"mechanic_id"`
	MechanicName string             `json:"mechanic_name"`
	CarNumber    string             `json:"car_number"`
	Mileage      int                `json:"mileage"`
	Answers      []checklist.Answer `json:"answers"`
	Sections     []string           `json:"sections"`
	CreatedAt    int64              `json:"created_at"`
}

type ListOpts struct {
	MechanicID  string
	ChecklistID string
	CarNumber   string // substring match
	From        int64  // unix seconds, inclusive; 0 = no bound
	To          int64  // unix seconds, exclusive; 0 = no bound
	Limit       int
	Offset      int
}

type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, opts ListOpts) ([]Record, error)
	Delete(ctx context.Context, id string) error
	// IDs returns every stored inspection id. Used by storage cleanup.
	IDs(ctx context.Context) ([]string, error)
}

// FromReport converts a packaged wizard report into a storable record.
func FromReport(rep checklist.Report) Record {
	return Record{
		ID:           rep.ID,
		ChecklistID:  rep.ChecklistID,
		MechanicID:   rep.MechanicID,
		MechanicName: rep.MechanicName,
		CarNumber:    rep.CarNumber,
		Mileage:      rep.Mileage,
		Answers:      rep.Answers,
		Sections:     rep.Sections,
		CreatedAt:    rep.CreatedAt.Unix(),
	}
}
