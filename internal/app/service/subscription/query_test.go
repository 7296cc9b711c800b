package subscription

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newDryRunDB opens a gorm session that builds SQL without ever touching a
// database, and captures every generated query statement.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.Open("postgres://localhost:5432/dryrun?sslmode=disable"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)

	var stmts []string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(d *gorm.DB) {
		stmts = append(stmts, d.Statement.SQL.String())
		// In DryRun mode gorm never resets Statement.SQL between finishers,
		// so without this the next finisher on the same chain would skip SQL
		// building and this callback would capture the previous statement.
		d.Statement.SQL.Reset()
		d.Statement.Vars = nil
	})
	require.NoError(t, err)
	return db, &stmts
}

func newDryRunService(t *testing.T) (*Service, *[]string) {
	t.Helper()
	db, stmts := newDryRunDB(t)
	return &Service{db: db, log: zap.NewNop().Sugar(), now: time.Now}, stmts
}

func captured(stmts *[]string, fragment string) bool {
	for _, s := range *stmts {
		if strings.Contains(s, fragment) {
			return true
		}
	}
	return false
}

func TestScanSubscriptions_QuotesSortColumn(t *testing.T) {
	s, stmts := newDryRunService(t)

	hostile := "end_date; DROP TABLE app_user"
	_, err := s.ScanSubscriptions(context.Background(), &ScanSubscriptionsRequest{
		SortBy:    hostile,
		SortOrder: "desc",
	})
	require.NoError(t, err)

	// the whole value ends up inside one quoted identifier
	require.True(t, captured(stmts, `ORDER BY "end_date; DROP TABLE app_user" DESC`),
		"generated statements: %v", *stmts)
}

func TestScanSubscriptions_DefaultSort(t *testing.T) {
	s, stmts := newDryRunService(t)

	_, err := s.ScanSubscriptions(context.Background(), &ScanSubscriptionsRequest{})
	require.NoError(t, err)

	require.True(t, captured(stmts, `ORDER BY "created_at" DESC`),
		"generated statements: %v", *stmts)
}

func TestScanSubscriptions_AscendingSort(t *testing.T) {
	s, stmts := newDryRunService(t)

	_, err := s.ScanSubscriptions(context.Background(), &ScanSubscriptionsRequest{SortBy: "end_date", SortOrder: "asc"})
	require.NoError(t, err)

	require.True(t, captured(stmts, `ORDER BY "end_date"`), "generated statements: %v", *stmts)
	require.False(t, captured(stmts, `ORDER BY "end_date" DESC`), "generated statements: %v", *stmts)
}

func TestLoadForUpdateTakesRowLock(t *testing.T) {
	s, stmts := newDryRunService(t)

	_, err := s.loadForUpdate(s.db, "sub-1")
	require.NoError(t, err)

	require.True(t, captured(stmts, "FOR UPDATE"), "generated statements: %v", *stmts)
}
