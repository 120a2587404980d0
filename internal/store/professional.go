package store

import (
	"context"
	"fmt"

	"clinic-management-api/internal/model"
)

const professionalCols = `id, user_id, name, type, registration_number, specialty,
	phone, email, start_time, end_time, attendance_days, notes, status,
	created_at, updated_at`

func scanProfessional(row interface{ Scan(...any) error }) (*model.Professional, error) {
	p := &model.Professional{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Type, &p.RegistrationNumber, &p.Specialty,
		&p.Phone, &p.Email, &p.StartTime, &p.EndTime, &p.AttendanceDays,
		&p.Notes, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) ListProfessionals(ctx context.Context, userID string) ([]model.Professional, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+professionalCols+`
		 FROM professionals
		 WHERE user_id = $1
		 ORDER BY name`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) GetProfessional(ctx context.Context, id, userID string) (*model.Professional, error) {
	return scanProfessional(s.pool.QueryRow(ctx,
		`SELECT `+professionalCols+`
		 FROM professionals WHERE id = $1 AND user_id = $2`, id, userID,
	))
}

func (s *Store) CreateProfessional(ctx context.Context, p *model.Professional) error {
	// a nil slice encodes as SQL NULL and the column is NOT NULL
	if p.AttendanceDays == nil {
		p.AttendanceDays = []string{}
	}
	return s.pool.QueryRow(ctx,
		`INSERT INTO professionals
		   (id, user_id, name, type, registration_number, specialty,
		    phone, email, start_time, end_time, attendance_days, notes, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 RETURNING created_at, updated_at`,
		p.ID, p.UserID, p.Name, p.Type, p.RegistrationNumber, p.Specialty,
		p.Phone, p.Email, p.StartTime, p.EndTime, p.AttendanceDays, p.Notes, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// UpdateProfessional applies the non-nil fields of the patch to the row
// matching id and owner, and returns the updated record.
func (s *Store) UpdateProfessional(ctx context.Context, id, userID string, patch model.ProfessionalPatch) (*model.Professional, error) {
	set := []string{"updated_at = NOW()"}
	args := []any{id, userID}

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.RegistrationNumber != nil {
		add("registration_number", *patch.RegistrationNumber)
	}
	if patch.Specialty != nil {
		add("specialty", *patch.Specialty)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.StartTime != nil {
		add("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		add("end_time", *patch.EndTime)
	}
	if patch.AttendanceDays != nil {
		add("attendance_days", *patch.AttendanceDays)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	q := "UPDATE professionals SET "
	for i, c := range set {
		if i > 0 {
			q += ", "
		}
		q += c
	}
	q += " WHERE id = $1 AND user_id = $2 RETURNING " + professionalCols

	return scanProfessional(s.pool.QueryRow(ctx, q, args...))
}

// DeleteProfessional reports whether a row was actually removed.
func (s *Store) DeleteProfessional(ctx context.Context, id, userID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM professionals WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
