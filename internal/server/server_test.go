package server

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const sampleUnitJSON = `{
  "totalPrice": "2500000",
  "downPaymentPct": "20",
  "installmentAmount": "30000",
  "installmentFrequency": "3",
  "maintenancePct": "8",
  "handoverPaymentPct": "10",
  "contractDate": "2024-01-01",
  "handoverDate": "2026-01-01",
  "monthlyRent": "12000",
  "annualRentIncreasePct": "10",
  "annualOperatingExpenses": "5000"
}`

type testAnalyticsResponse struct {
	Result struct {
		Name      string `json:"name"`
		Formatted struct {
			TotalCost         string `json:"totalCost"`
			PaidUntilHandover string `json:"paidUntilHandover"`
			CapRate           string `json:"capRate"`
		} `json:"formatted"`
		Raw struct {
			PaybackPeriodFromHandover *float64 `json:"paybackPeriodFromHandover"`
		} `json:"raw"`
		Analysis struct {
			CapRate *struct {
				Key string `json:"ratingKey"`
			} `json:"capRate"`
		} `json:"analysis"`
		CashFlowProjection map[string][]json.RawMessage `json:"cashFlowProjection"`
		HasRent            bool                         `json:"hasRent"`
	} `json:"result"`
	Warnings []string `json:"warnings"`
	Duration string   `json:"duration"`
}

type testPortfolioResponse struct {
	Units []struct {
		Name string `json:"name"`
	} `json:"units"`
	Summary struct {
		Units     int      `json:"units"`
		TotalCost float64  `json:"totalCost"`
		BreakEven *float64 `json:"breakEven"`
	} `json:"summary"`
	CSV         string                 `json:"csv"`
	CashFlowCSV string                 `json:"cashFlowCsv"`
	Warnings    []string               `json:"warnings"`
	Duration    string                 `json:"duration"`
	Config      map[string]interface{} `json:"config"`
	ConfigYAML  string                 `json:"configYaml"`
}

func TestHandleAnalyticsSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(sampleUnitJSON))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp testAnalyticsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Result.Formatted.TotalCost != "2,700,000.00" {
		t.Fatalf("expected total cost 2,700,000.00, got %s", resp.Result.Formatted.TotalCost)
	}
	if resp.Result.Formatted.PaidUntilHandover != "1,190,000.00" {
		t.Fatalf("expected paid until handover 1,190,000.00, got %s", resp.Result.Formatted.PaidUntilHandover)
	}
	if resp.Result.Analysis.CapRate == nil || resp.Result.Analysis.CapRate.Key != "average" {
		t.Fatalf("expected average cap rate rating, got %+v", resp.Result.Analysis.CapRate)
	}
	if len(resp.Result.CashFlowProjection["20"]) != 21 {
		t.Fatalf("expected 21 rows in 20-year horizon, got %d", len(resp.Result.CashFlowProjection["20"]))
	}
	if resp.Result.Raw.PaybackPeriodFromHandover == nil {
		t.Fatal("expected finite payback period")
	}
	if len(resp.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", resp.Warnings)
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
	if _, err := uuid.Parse(rr.Header().Get(RequestIDHeader)); err != nil {
		t.Fatalf("expected generated request ID, got %q", rr.Header().Get(RequestIDHeader))
	}
}

func TestHandleAnalyticsWrappedUnit(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	body := `{"name": "Marina 2BR", "unit": ` + sampleUnitJSON + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(body))
	incomingID := uuid.NewString()
	req.Header.Set(RequestIDHeader, incomingID)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get(RequestIDHeader); got != incomingID {
		t.Fatalf("expected request ID to be echoed, got %q", got)
	}

	var resp testAnalyticsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.Name != "Marina 2BR" {
		t.Fatalf("expected name Marina 2BR, got %q", resp.Result.Name)
	}
	if resp.Result.Formatted.CapRate != "5.56" {
		t.Fatalf("expected cap rate 5.56, got %s", resp.Result.Formatted.CapRate)
	}
}

func TestHandleAnalyticsEmptyUnit(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp testAnalyticsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result.Formatted.TotalCost != "0.00" {
		t.Fatalf("expected zero total cost, got %s", resp.Result.Formatted.TotalCost)
	}
	if resp.Result.Raw.PaybackPeriodFromHandover != nil {
		t.Fatalf("expected null payback, got %v", *resp.Result.Raw.PaybackPeriodFromHandover)
	}
	if len(resp.Result.CashFlowProjection["5"]) != 0 {
		t.Fatal("expected empty projection")
	}
	if len(resp.Warnings) == 0 {
		t.Fatal("expected a missing price warning")
	}
}

func TestHandleAnalyticsInvalidJSON(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	tests := []struct {
		name string
		body string
	}{
		{"Malformed", `{"totalPrice": `},
		{"Numeric field", `{"totalPrice": 2500000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rr.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if !strings.Contains(resp["error"], "failed to decode unit") {
				t.Fatalf("expected decode error, got %q", resp["error"])
			}
		})
	}
}

func TestHandleAnalyticsOverflowingRent(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	body := `{"totalPrice":"1000","monthlyRent":"1e308","annualOperatingExpenses":"1","contractDate":"2024-01-01","handoverDate":"2025-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Result struct {
			Formatted struct {
				AnnualRent string `json:"annualRent"`
			} `json:"formatted"`
			Raw struct {
				AnnualRent *float64 `json:"annualRent"`
				TotalCost  *float64 `json:"totalCost"`
			} `json:"raw"`
			CashFlowProjection map[string][]struct {
				Year int      `json:"year"`
				Rent *float64 `json:"rent"`
			} `json:"cashFlowProjection"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v (body %q)", err, rr.Body.String())
	}

	if resp.Result.Raw.AnnualRent != nil {
		t.Fatalf("expected null annual rent, got %v", *resp.Result.Raw.AnnualRent)
	}
	if resp.Result.Formatted.AnnualRent != "N/A" {
		t.Fatalf("expected N/A annual rent, got %q", resp.Result.Formatted.AnnualRent)
	}
	if resp.Result.Raw.TotalCost == nil || *resp.Result.Raw.TotalCost != 1000 {
		t.Fatalf("expected total cost 1000, got %v", resp.Result.Raw.TotalCost)
	}
	rows := resp.Result.CashFlowProjection["20"]
	if len(rows) != 21 {
		t.Fatalf("expected 21 rows in 20-year horizon, got %d", len(rows))
	}
	if rows[1].Rent != nil {
		t.Fatalf("expected null rent in year 1, got %v", *rows[1].Rent)
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	h := &handler{logger: zap.NewNop()}
	rr := httptest.NewRecorder()

	h.writeJSON(rr, http.StatusOK, map[string]float64{"value": math.Inf(1)})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("expected error message in response")
	}
}

func TestHandleAnalyticsTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetUploadSizeBytes(32)
	handler := NewHandler(zap.NewNop(), cfg, "")

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(sampleUnitJSON))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}
}

func TestHandlePortfolioSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	rr := performUpload(t, handler, string(data), "test_config.yaml")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp testPortfolioResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Units) != 2 {
		t.Fatalf("expected 2 active units, got %d", len(resp.Units))
	}
	if resp.Units[0].Name != "marina tower 1204" {
		t.Fatalf("unexpected first unit %q", resp.Units[0].Name)
	}
	if resp.Summary.Units != 2 || resp.Summary.TotalCost != 2800000 {
		t.Fatalf("unexpected summary %+v", resp.Summary)
	}
	if resp.Summary.BreakEven == nil {
		t.Fatal("expected finite portfolio break-even")
	}
	if !strings.HasPrefix(resp.CSV, "unit,totalCost") {
		t.Fatalf("expected CSV header, got %q", resp.CSV)
	}
	if resp.CashFlowCSV == "" {
		t.Fatal("expected cash-flow CSV data in response")
	}
	if resp.Duration == "" {
		t.Fatal("expected duration in response")
	}
	if resp.Config == nil {
		t.Fatal("expected config data in response")
	}
	if resp.ConfigYAML == "" {
		t.Fatal("expected config YAML in response")
	}
}

func TestHandlePortfolioUnquotedDates(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	content := `
units:
  - name: off-plan
    active: true
    totalPrice: 2500000
    downPaymentPct: 20
    installmentAmount: 30000
    handoverPaymentPct: 10
    maintenancePct: 8
    contractDate: 2024-01-01
    handoverDate: 2026-01-01
    monthlyRent: 12000
    annualOperatingExpenses: 5000
`
	rr := performUpload(t, handler, content, "units.yaml")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp testPortfolioResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Units) != 1 || resp.Summary.BreakEven == nil {
		t.Fatalf("expected one unit with a break-even, got %+v", resp.Summary)
	}
	if len(resp.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", resp.Warnings)
	}
}

func TestHandlePortfolioEditorSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	configPath := filepath.Join("..", "..", "test", "test_config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}

	var payload map[string]interface{}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to unmarshal yaml: %v", err)
	}

	rr := performEditorJSON(t, handler, map[string]interface{}{"config": payload}, "/api/editor/portfolio")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp testPortfolioResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(resp.Units))
	}
	if resp.ConfigYAML == "" {
		t.Fatal("expected config YAML in response")
	}
}

func TestHandlePortfolioEditorInvalidConfig(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	rr := performEditorJSON(t, handler, map[string]interface{}{"config": "not an object"}, "/api/editor/portfolio")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleConfigExport(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	payload := map[string]interface{}{
		"units": []interface{}{
			map[string]interface{}{
				"name":       "sample",
				"active":     true,
				"totalPrice": "500000",
			},
		},
		"formatting": map[string]interface{}{
			"locale": "en",
		},
		"output": map[string]interface{}{
			"format": "pretty",
		},
		"logging": map[string]interface{}{
			"level": "info",
		},
	}

	rr := performEditorJSON(t, handler, payload, "/api/editor/export")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	yamlStr := resp["configYaml"]
	if !strings.Contains(yamlStr, "units:") {
		t.Fatalf("expected yaml to contain units section, got %q", yamlStr)
	}

	var orderedTop []string
	for _, line := range strings.Split(strings.TrimRight(yamlStr, "\n"), "\n") {
		if len(line) == 0 || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "-") {
			continue
		}
		orderedTop = append(orderedTop, strings.TrimSpace(line))
	}

	expected := []string{"logging:", "output:", "formatting:", "units:"}
	if len(orderedTop) != len(expected) {
		t.Fatalf("expected top-level keys %v, got %v", expected, orderedTop)
	}
	for i, key := range expected {
		if !strings.HasPrefix(orderedTop[i], key) {
			t.Fatalf("expected key %d to be %s, got %q", i, key, orderedTop[i])
		}
	}
}

func TestHandleMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	for _, path := range []string{"/api/analytics", "/api/portfolio", "/api/editor/portfolio", "/api/editor/export"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected status 405, got %d", path, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("/api/version: expected status 405, got %d", rr.Code)
	}
}

func TestHandlePortfolioUploadTooLarge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetUploadSizeBytes(64)
	handler := NewHandler(zap.NewNop(), cfg, "")

	rr := performUpload(t, handler, strings.Repeat("a", 128), "config.yaml")

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "upload exceeds limit") {
		t.Fatalf("expected upload limit error message, got %q", resp["error"])
	}
}

func TestHandlePortfolioMissingFile(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp["error"] != "missing configuration file" {
		t.Fatalf("expected missing file error, got %q", resp["error"])
	}
}

func TestHandlePortfolioInvalidYAML(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	rr := performUpload(t, handler, "units: [", "config.yaml")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if !strings.Contains(resp["error"], "error reading config data") {
		t.Fatalf("expected parse error message, got %q", resp["error"])
	}
}

func TestHandlePortfolioWarnings(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	configYAML := `
units:
  - name: late
    active: true
    totalPrice: "500000"
    contractDate: "2026-01-01"
    handoverDate: "2025-01-01"
`

	rr := performUpload(t, handler, configYAML, "config.yaml")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp testPortfolioResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	found := false
	for _, w := range resp.Warnings {
		if strings.Contains(w, "is not after contract date") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected handover warning, got %v", resp.Warnings)
	}
	if resp.Summary.BreakEven != nil {
		t.Fatalf("expected null break-even without rent, got %v", *resp.Summary.BreakEven)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, " 1.2.3 ")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["version"] != "1.2.3" {
		t.Fatalf("expected version 1.2.3, got %q", resp["version"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := NewHandler(zap.NewNop(), nil, "")

	// Generate at least one observation.
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"unit_analytics_requests_total", "unit_analytics_request_duration_seconds"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected metrics output to contain %s", name)
		}
	}
}

func performUpload(t *testing.T, handler http.Handler, content, filename string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func performEditorJSON(t *testing.T, handler http.Handler, payload map[string]interface{}, path string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}
