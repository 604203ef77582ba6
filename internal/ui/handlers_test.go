package ui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"

	"catalognav/cli/internal/assets"
	"catalognav/cli/internal/catalog"
	"catalognav/cli/internal/catalog/catalogtest"
	"catalognav/cli/internal/config"
	"catalognav/cli/internal/credentials"
	"catalognav/cli/internal/dsn"
	apperrors "catalognav/cli/internal/errors"
	"catalognav/cli/internal/explorer"
	"catalognav/cli/internal/pii"
	"catalognav/cli/internal/report"
)

type stubExplorer struct {
	view *explorer.View
	got  []explorer.Request
}

func (s *stubExplorer) Explore(_ context.Context, req explorer.Request) *explorer.View {
	s.got = append(s.got, req)
	v := *s.view
	v.Environment, v.Role = req.Environment, req.Role
	return &v
}

func okView() *explorer.View {
	return &explorer.View{
		Username:   "analyst_1",
		Database:   "hotel_dw_test",
		Connection: "postgresql://analyst_1@localhost:5431/hotel_dw_test",
		NoAuth:     true,
		Tables: []explorer.TableView{
			{
				Name: "dim_customer",
				Columns: []catalog.ColumnMetadata{
					{Name: "customer_id", Type: "integer", PrimaryKey: true},
					{Name: "email", Type: "character varying(255)", Nullable: true, Sensitive: true},
					{Name: "credit_card", Type: "character varying(32)", Nullable: true, Sensitive: true},
					{Name: "classification", Type: "character varying(20)", Nullable: true},
				},
				Chart: []report.ClassificationCount{{Label: "Gold", Count: 4}, {Label: "Silver", Count: 2}},
			},
			{
				Name:    "fact_booking",
				Columns: []catalog.ColumnMetadata{{Name: "booking_id", Type: "integer", PrimaryKey: true}},
			},
		},
	}
}

func newTestRouter(t *testing.T, exp Explorer, assetDir string) http.Handler {
	t.Helper()
	cfg := config.Default()
	if assetDir != "" {
		cfg.Assets.Dir = assetDir
	}
	reg := prometheus.NewRegistry()
	explorer.NewMetrics(reg)
	h := NewHandler(exp, assets.New(cfg.Assets, cfg.Source), cfg.Environments, config.Default().RoleNames())
	return NewRouter(h, reg)
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, target, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func TestMain(m *testing.M) {
	pterm.DisableOutput()
	os.Exit(m.Run())
}

func TestDashboard(t *testing.T) {
	h := newTestRouter(t, &stubExplorer{view: okView()}, "")

	rr := do(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	require.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	body := rr.Body.String()
	require.Contains(t, body, "Hotel Booking Data Catalog")
	require.Contains(t, body, `href="https://www.kaggle.com/datasets/saadharoon27/hotel-booking-dataset/data" target="_blank"`)
	require.Contains(t, body, `src="/assets/pipeline"`)
	require.Contains(t, body, "End-to-End Data Flow")
	require.Equal(t, 3, strings.Count(body, `<option value="hotel_dw`))
	for _, role := range []string{"dba_1", "developer_1", "engineer_1", "analyst_1"} {
		require.Contains(t, body, `<option value="`+role+`"`)
	}
	for _, title := range []string{"Excel (Raw)", "Data Cleaning", "hotel_dw_test", "hotel_dw_prod"} {
		require.Contains(t, body, "<h4>"+title+"</h4>")
	}
	require.Contains(t, body, "Source: hotel_booking.csv")
	require.Contains(t, body, "Prod Masking Strategy")
	require.NotContains(t, body, "<figcaption>Masking Strategy</figcaption>")
	require.Contains(t, body, "Choose an environment and a role")
}

func TestDashboard_ShowStrategy(t *testing.T) {
	h := newTestRouter(t, &stubExplorer{view: okView()}, "")

	body := do(t, h, http.MethodGet, "/?show=test:masking", nil).Body.String()
	require.Equal(t, 1, strings.Count(body, "<figcaption>Masking Strategy</figcaption>"))

	body = do(t, h, http.MethodGet, "/?show=raw:masking", nil).Body.String()
	require.NotContains(t, body, "<figcaption>Masking Strategy</figcaption>")

	body = do(t, h, http.MethodGet, "/?show=nonsense", nil).Body.String()
	require.NotContains(t, body, "<figcaption>Cleaning Strategy</figcaption>")
}

func TestParseShow(t *testing.T) {
	cfg := config.Default()
	h := NewHandler(&stubExplorer{view: okView()}, assets.New(cfg.Assets, cfg.Source), cfg.Environments, cfg.RoleNames())

	require.Equal(t, showParam{stage: "prod", asset: assets.Cleaning}, h.parseShow("prod:"+assets.Cleaning))
	require.Equal(t, showParam{}, h.parseShow("staging:"+assets.Masking))
	require.Equal(t, showParam{}, h.parseShow("raw:"+assets.Masking))
	require.Equal(t, showParam{}, h.parseShow("test:pipeline"))
	require.Equal(t, showParam{}, h.parseShow("test"))
}

func TestExploreSubmit(t *testing.T) {
	stub := &stubExplorer{view: okView()}
	h := newTestRouter(t, stub, "")

	form := url.Values{"env": {"hotel_dw_test"}, "role": {"analyst_1"}}
	rr := do(t, h, http.MethodPost, "/explore", strings.NewReader(form.Encode()))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []explorer.Request{{Environment: "hotel_dw_test", Role: "analyst_1"}}, stub.got)

	body := rr.Body.String()
	require.Contains(t, body, "Connected as `analyst_1` to `hotel_dw_test`")
	require.Contains(t, body, "Role Access Info")
	require.Contains(t, body, "no password configured")
	require.Contains(t, body, `<option value="hotel_dw_test" selected>`)
	require.Contains(t, body, `<option value="analyst_1" selected>`)
	require.Equal(t, 2, strings.Count(body, `<tr class="pii">`))
	require.Contains(t, body, "Classification Distribution")
	require.Contains(t, body, "width: 100.0%")
	require.Contains(t, body, "width: 50.0%")
	require.Less(t, strings.Index(body, "dim_customer</code></h3>"), strings.Index(body, "fact_booking</code></h3>"))
}

func TestExploreSubmit_FailureAndWarning(t *testing.T) {
	failed := &explorer.View{
		Error:     "Failed to connect or load metadata: connection refused",
		ErrorKind: string(apperrors.ConnectionFailed),
		Hint:      "Is the database server running and listening on the configured host and port?",
	}
	h := newTestRouter(t, &stubExplorer{view: failed}, "")
	form := url.Values{"env": {"hotel_dw"}, "role": {"dba_1"}}
	body := do(t, h, http.MethodPost, "/explore", strings.NewReader(form.Encode())).Body.String()
	require.Contains(t, body, `class="alert error"`)
	require.Contains(t, body, "Failed to connect or load metadata: connection refused")
	require.NotContains(t, body, "Role Access Info")

	warned := okView()
	warned.Tables[0].Chart = nil
	warned.Tables[0].Warning = "Cannot access classification breakdown: permission denied for table dim_customer"
	h = newTestRouter(t, &stubExplorer{view: warned}, "")
	body = do(t, h, http.MethodPost, "/explore", strings.NewReader(form.Encode())).Body.String()
	require.Contains(t, body, `class="alert warning"`)
	require.NotContains(t, body, "Classification Distribution")
	require.Contains(t, body, "fact_booking")
}

func TestExploreAPI(t *testing.T) {
	tests := []struct {
		name       string
		view       *explorer.View
		wantStatus int
	}{
		{"ok", okView(), http.StatusOK},
		{"unknown role", &explorer.View{Error: "x", ErrorKind: string(apperrors.KeyNotFound)}, http.StatusBadRequest},
		{"connection", &explorer.View{Error: "x", ErrorKind: string(apperrors.ConnectionFailed)}, http.StatusBadGateway},
		{"keychain", &explorer.View{Error: "x", ErrorKind: string(apperrors.SecretStoreFailed)}, http.StatusServiceUnavailable},
		{"other", &explorer.View{Error: "x", ErrorKind: string(apperrors.ConfigInvalid)}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, &stubExplorer{view: tt.view}, "")
			rr := do(t, h, http.MethodGet, "/api/explore?env=hotel_dw_test&role=analyst_1", nil)
			require.Equal(t, tt.wantStatus, rr.Code)
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var got explorer.View
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			require.Equal(t, "hotel_dw_test", got.Environment)
			require.Equal(t, "analyst_1", got.Role)
			require.Equal(t, tt.view.Error, got.Error)
		})
	}
}

func TestExploreAPI_LiveDatabase(t *testing.T) {
	d := catalogtest.NewSQLite(t, catalogtest.HotelSchema...)
	cfg := config.Default()
	envs := []config.Environment{{Name: "hotel_dw_test", DSN: d.Database}}
	builder := dsn.NewBuilder(cfg.Database, envs, credentials.NewDirectory(cfg.Roles))
	svc := explorer.New(builder, pii.NewClassifier(cfg.PII.Columns), report.New("dim_customer", "classification"), nil)
	h := NewRouter(NewHandler(svc, assets.New(cfg.Assets, cfg.Source), envs, cfg.RoleNames()), nil)

	rr := do(t, h, http.MethodGet, "/api/explore?env=hotel_dw_test&role=dba_1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		NoAuth bool `json:"no_auth"`
		Tables []struct {
			Name    string `json:"name"`
			Columns []struct {
				Name        string `json:"name"`
				IsSensitive bool   `json:"is_sensitive"`
			} `json:"columns"`
			Chart []report.ClassificationCount `json:"chart"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.True(t, got.NoAuth)
	require.Len(t, got.Tables, 2)
	require.Equal(t, "dim_customer", got.Tables[0].Name)
	require.True(t, got.Tables[0].Columns[1].IsSensitive)
	require.Equal(t, []report.ClassificationCount{{Label: "Bronze", Count: 1}, {Label: "Gold", Count: 3}, {Label: "Silver", Count: 1}}, got.Tables[0].Chart)

	rr = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAsset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "masking_strategy.png"), []byte("\x89PNG masking"), 0o600))
	h := newTestRouter(t, &stubExplorer{view: okView()}, dir)

	rr := do(t, h, http.MethodGet, "/assets/masking", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "\x89PNG masking", rr.Body.String())

	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/assets/architecture", nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/assets/cleaning", nil).Code)
}

func TestHealthzAndMetrics(t *testing.T) {
	h := newTestRouter(t, &stubExplorer{view: okView()}, "")

	rr := do(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())

	rr = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "catalognav_pii_columns_flagged_total")
}

func TestRequestID_ReusesHeader(t *testing.T) {
	h := newTestRouter(t, &stubExplorer{view: okView()}, "")
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("X-Request-ID", "req-42")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	require.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
}
