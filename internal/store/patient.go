package store

import (
	"context"

	"clinic-management-api/internal/model"
)

func (s *Store) CreatePatient(ctx context.Context, p *model.Patient) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO patients (id, user_id, name, phone, email, birth_date)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.UserID, p.Name, p.Phone, p.Email, p.BirthDate,
	)
	return err
}

func (s *Store) CountPatients(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE user_id = $1`, userID,
	).Scan(&n)
	return n, err
}
