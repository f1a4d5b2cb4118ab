package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/attendance-portal/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-portal/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// schema mirrors the columns the sources read. Temp tables shadow any real
// tables of the same name for the life of the test transaction.
var schema = []string{
	`CREATE TEMP TABLE employees (
		id text PRIMARY KEY,
		company_id text NOT NULL
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE attendances (
		id bigserial PRIMARY KEY,
		employee_id text NOT NULL,
		date date NOT NULL,
		clock_in timestamptz,
		clock_out timestamptz,
		break_minutes int,
		work_hours_in_minutes int,
		updated_at timestamptz NOT NULL DEFAULT now()
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE leave_types (
		id text PRIMARY KEY,
		code text NOT NULL
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE leave_requests (
		id text PRIMARY KEY,
		employee_id text NOT NULL,
		leave_type_id text NOT NULL,
		start_date date NOT NULL,
		end_date date,
		duration_type text NOT NULL,
		status text NOT NULL,
		reason text,
		rejection_reason text,
		submitted_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE attendance_adjustment_requests (
		id text PRIMARY KEY,
		employee_id text NOT NULL,
		target_date date NOT NULL,
		new_clock_in timestamptz,
		new_clock_out timestamptz,
		new_break_minutes int,
		status text NOT NULL,
		reason text,
		rejection_reason text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE work_pattern_requests (
		id text PRIMARY KEY,
		employee_id text NOT NULL,
		start_date date NOT NULL,
		end_date date,
		status text NOT NULL,
		start_time time NOT NULL,
		end_time time NOT NULL,
		break_minutes int NOT NULL,
		working_minutes int NOT NULL,
		working_days smallint[] NOT NULL,
		apply_holiday boolean NOT NULL DEFAULT false,
		reason text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE holiday_work_requests (
		id text PRIMARY KEY,
		employee_id text NOT NULL,
		request_type text NOT NULL,
		work_date date NOT NULL,
		comp_date date,
		take_comp boolean,
		transfer_holiday_date date,
		status text NOT NULL,
		reason text,
		rejection_reason text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE company_holidays (
		company_id text NOT NULL,
		holiday_date date NOT NULL,
		holiday_type text NOT NULL
	) ON COMMIT DROP`,
}

// TestDatabaseSetup untuk menginisialisasi test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it
// is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	return &TestDatabaseSetup{DB: db}
}

// Begin opens a transaction with the schema in place and returns a context
// that routes repository queries through it. The transaction is rolled back
// when the test ends.
func (s *TestDatabaseSetup) Begin(t *testing.T) (context.Context, pgx.Tx) {
	t.Helper()
	ctx := context.Background()

	tx, err := s.DB.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { tx.Rollback(ctx) })

	for _, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			require.NoError(t, fmt.Errorf("failed to create schema: %w", err))
		}
	}

	return postgresql.ContextWithTx(ctx, tx), tx
}
