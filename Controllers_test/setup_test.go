package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/coffee-outlets/config"
	"github.com/yeremiapane/coffee-outlets/database"
	"github.com/yeremiapane/coffee-outlets/kds"
	"github.com/yeremiapane/coffee-outlets/router"
	"github.com/yeremiapane/coffee-outlets/services"
	"github.com/yeremiapane/coffee-outlets/utils"
)

const testSecret = "controllers-test-secret"

func TestMain(m *testing.M) {
	utils.InitLogger()
	utils.SetJWTSecret(testSecret)
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupRouterWithRunner(t *testing.T, runner database.Runner) *gin.Engine {
	t.Helper()
	cfg := &config.Config{CORSOrigins: []string{"*"}}
	return router.SetupRouter(cfg, services.NewOutletService(runner, nil), kds.NewHub())
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return setupRouterWithRunner(t, database.NewGateway(db)), db
}

func doRequest(r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = &bytes.Buffer{}
	} else {
		reader = bytes.NewBufferString(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func adminHeader(t *testing.T) []string {
	t.Helper()
	token, err := utils.GenerateToken("ops@javahouse.co.ke", "admin", time.Hour)
	require.NoError(t, err)
	return []string{"Authorization", "Bearer " + token}
}

const westlandsPayload = `{
	"name": "Westlands",
	"location": "Sarit Centre",
	"city": "Nairobi",
	"county": "Nairobi",
	"street_address": "Karuna Road",
	"rating": 4.5,
	"is_open": 1
}`
