package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StardustBot_Go/internal/database/postgres"
	"github.com/osse101/StardustBot_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Weekly     repository.Weekly
	Tier       repository.Tier
	Enrollment repository.Enrollment
	Monthly    repository.Monthly
	ModLog     repository.ModLog
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Weekly:     postgres.NewWeeklyRepository(dbPool),
		Tier:       postgres.NewTierRepository(dbPool),
		Enrollment: postgres.NewEnrollmentRepository(dbPool),
		Monthly:    postgres.NewMonthlyRepository(dbPool),
		ModLog:     postgres.NewModLogRepository(dbPool),
	}
}
