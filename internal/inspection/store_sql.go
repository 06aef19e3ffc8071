package inspection

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/autocheck-dev/autocheck/internal/checklist"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Put(ctx context.Context, rec Record) error {
	aj, err := json.Marshal(rec.Answers)
	if err != nil {
		return err
	}
	sj, err := json.Marshal(rec.Sections)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO inspections (id,checklist_id,mechanic_id,mechanic_name,car_number,mileage,answers_json,sections_json,created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.ChecklistID, rec.MechanicID, rec.MechanicName,
		rec.CarNumber, rec.Mileage, string(aj), string(sj), rec.CreatedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,checklist_id,mechanic_id,mechanic_name,car_number,mileage,answers_json,sections_json,created_at
		 FROM inspections WHERE id=$1`, id)
	return scanRecord(row.Scan)
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Record, error) {
	where := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if opts.MechanicID != "" {
		where = append(where, "mechanic_id="+arg(opts.MechanicID))
	}
	if opts.ChecklistID != "" {
		where = append(where, "checklist_id="+arg(opts.ChecklistID))
	}
	if opts.CarNumber != "" {
		where = append(where, "car_number LIKE '%'||"+arg(opts.CarNumber)+"||'%'")
	}
	if opts.From > 0 {
		where = append(where, "created_at>="+arg(opts.From))
	}
	if opts.To > 0 {
		where = append(where, "created_at<"+arg(opts.To))
	}

	q := `SELECT id,checklist_id,mechanic_id,mechanic_name,car_number,mileage,answers_json,sections_json,created_at FROM inspections`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q += " LIMIT " + arg(limit)
	if opts.Offset > 0 {
		q += " OFFSET " + arg(opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inspections WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM inspections`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanRecord(scan func(...interface{}) error) (Record, error) {
	var rec Record
	var ajson, sjson string
	err := scan(&rec.ID, &rec.ChecklistID, &rec.MechanicID, &rec.MechanicName,
		&rec.CarNumber, &rec.Mileage, &ajson, &sjson, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(ajson), &rec.Answers); err != nil {
		rec.Answers = []checklist.Answer{}
	}
	if err := json.Unmarshal([]byte(sjson), &rec.Sections); err != nil {
		rec.Sections = []string{}
	}
	return rec, nil
}
