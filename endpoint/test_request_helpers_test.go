package endpoint

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ariebrainware/clinic-records/config"
	"github.com/ariebrainware/clinic-records/metrics"
	"github.com/ariebrainware/clinic-records/model"
	"github.com/ariebrainware/clinic-records/util"
)

type requestSpec struct {
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

func performRequest(r *gin.Engine, spec requestSpec) (*httptest.ResponseRecorder, map[string]interface{}, error) {
	var reader *strings.Reader
	setJSONHeader := false
	switch v := spec.body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(v)
		setJSONHeader = true
	default:
		b, _ := json.Marshal(spec.body)
		reader = strings.NewReader(string(b))
		setJSONHeader = true
	}

	req := httptest.NewRequest(spec.method, spec.path, reader)
	if setJSONHeader {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range spec.headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			return w, nil, err
		}
	}
	return w, response, nil
}

type testServer struct {
	router  *gin.Engine
	db      *gorm.DB
	metrics *metrics.Metrics
}

// setupTestServer connects an isolated in-memory database, migrates it and
// returns the full router wired with fresh metrics and the audit logger.
func setupTestServer(t *testing.T) testServer {
	t.Helper()
	t.Setenv("APPENV", "test")

	db, err := config.Open(config.FromEnv())
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	SetMetrics(m)
	util.SetAuditLoggerDB(db)
	t.Cleanup(func() {
		SetMetrics(nil)
		util.SetAuditLoggerDB(nil)
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return testServer{router: NewRouter(db, m, "clinic-records-test"), db: db, metrics: m}
}

// do performs the request and fails the test if the body is not JSON.
func (s testServer) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	w, resp, err := performRequest(s.router, requestSpec{method: method, path: path, body: body})
	require.NoError(t, err, "response body: %s", w.Body.String())
	return w.Code, resp
}

// createID posts body to path, requires a 201 and returns the new record id.
func (s testServer) createID(t *testing.T, path string, body interface{}) uint {
	t.Helper()
	code, resp := s.do(t, "POST", path, body)
	require.Equal(t, 201, code, "response: %v", resp)
	return uint(dataMap(t, resp)["id"].(float64))
}

func dataMap(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "data is not an object: %v", resp["data"])
	return data
}

// fieldErrors returns the rejected fields of a 400 response as field -> message.
func fieldErrors(t *testing.T, resp map[string]interface{}) map[string]string {
	t.Helper()
	raw, ok := dataMap(t, resp)["errors"].([]interface{})
	require.True(t, ok, "no errors in response: %v", resp)
	out := make(map[string]string, len(raw))
	for _, item := range raw {
		fe := item.(map[string]interface{})
		out[fe["field"].(string)] = fe["message"].(string)
	}
	return out
}

func countAudit(t *testing.T, db *gorm.DB, entity string, action util.RecordAction) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.AuditLog{}).
		Where("entity = ? AND action = ?", entity, string(action)).
		Count(&n).Error)
	return n
}
