package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StardustBot_Go/internal/domain"
	"github.com/osse101/StardustBot_Go/internal/repository"
)

// EnrollmentRepository implements the enrollment repository for PostgreSQL
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(pool *pgxpool.Pool) repository.Enrollment {
	return &EnrollmentRepository{pool: pool}
}

func (r *EnrollmentRepository) Get(ctx context.Context, guildID, userID string) (*domain.Enrollment, error) {
	row := r.pool.QueryRow(ctx, SQLGetEnrollment, guildID, userID)

	enrollment, err := scanEnrollment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func (r *EnrollmentRepository) Upsert(ctx context.Context, enrollment *domain.Enrollment) error {
	_, err := r.pool.Exec(ctx, SQLUpsertEnrollment,
		enrollment.GuildID, enrollment.UserID, enrollment.Active,
		enrollment.EnrolledAt, enrollment.EnrolledByID,
		enrollment.DeactivatedAt, enrollment.DeactivatedByID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, guildID, userID string) error {
	if _, err := r.pool.Exec(ctx, SQLDeleteEnrollment, guildID, userID); err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	return nil
}

func (r *EnrollmentRepository) ListActive(ctx context.Context, guildID string) ([]domain.Enrollment, error) {
	return r.list(ctx, SQLListActiveEnrollments, guildID)
}

func (r *EnrollmentRepository) List(ctx context.Context, guildID string) ([]domain.Enrollment, error) {
	return r.list(ctx, SQLListEnrollments, guildID)
}

func (r *EnrollmentRepository) list(ctx context.Context, sql, guildID string) ([]domain.Enrollment, error) {
	rows, err := r.pool.Query(ctx, sql, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		enrollments = append(enrollments, *enrollment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read enrollments: %w", err)
	}
	return enrollments, nil
}

func scanEnrollment(row pgx.Row) (*domain.Enrollment, error) {
	var enrollment domain.Enrollment

	err := row.Scan(
		&enrollment.GuildID, &enrollment.UserID, &enrollment.Active,
		&enrollment.EnrolledAt, &enrollment.EnrolledByID,
		&enrollment.DeactivatedAt, &enrollment.DeactivatedByID,
	)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}
