package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/clapboard/membership/internal/app/service/catalog"
)

// newDryRunCatalog wires the catalog service to a gorm session that builds
// SQL without touching a database, capturing the generated statements.
func newDryRunCatalog(t *testing.T) (*catalog.Service, *[]string) {
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
	})
	require.NoError(t, err)
	return catalog.NewService(db, zap.NewNop().Sugar()), &stmts
}

func TestApiListPackages_PublicListingIsAlwaysActiveOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, stmts := newDryRunCatalog(t)
	r := gin.New()
	r.GET("/api/v1/packages", ApiListPackages(svc))

	// the query parameter that used to widen the listing is ignored
	req := httptest.NewRequest(http.MethodGet, "/api/v1/packages?all=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *stmts, 1)
	require.Contains(t, (*stmts)[0], "is_active")
}

func TestApiListAllPackages_IncludesDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, stmts := newDryRunCatalog(t)
	r := gin.New()
	r.GET("/api/v1/admin/packages", ApiListAllPackages(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/packages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *stmts, 1)
	require.NotContains(t, (*stmts)[0], "is_active")
}
