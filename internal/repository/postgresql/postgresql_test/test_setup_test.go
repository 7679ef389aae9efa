package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
)

// TestDatabaseSetup holds the connection used by the repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
// The schema from migrations/001_init.sql must already be applied.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, 5, 1)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.TruncateAllTables(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to reset test database: %v", err)
	}
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row from the hour bank tables.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"work_schedules",
		"leave_requests",
		"attendance_records",
		"ledger_entries",
		"recovery_requests",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
