package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetforge/core/ai"
)

type stubProvider struct {
	reply string
	err   error
}

func (p stubProvider) Complete(ctx context.Context, messages []ai.Message, systemPrompt string) (string, error) {
	return p.reply, p.err
}

func (p stubProvider) Name() string { return "stub" }

func postJSON(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func errorMessageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Message
}

func TestGenerateReturnsWorkbookAttachment(t *testing.T) {
	srv := NewServer("test")
	rec := postJSON(t, srv, "/generate", `{"templateId":"budget","config":{}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, spreadsheetMIME, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Budget___Expense_Tracker.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	// xlsx files are zip archives
	body := rec.Body.Bytes()
	require.Greater(t, len(body), 4)
	assert.Equal(t, "PK", string(body[:2]))
}

func TestGenerateValidation(t *testing.T) {
	srv := NewServer("test")

	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"invalid json", `{not json`, http.StatusBadRequest, "Invalid JSON body"},
		{"missing template id", `{"config":{}}`, http.StatusBadRequest, "Missing or invalid templateId"},
		{"unknown template", `{"templateId":"nope","config":{}}`, http.StatusNotFound, "Unknown template: nope"},
		{"missing config", `{"templateId":"budget"}`, http.StatusBadRequest, "Missing or invalid config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, srv, "/generate", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, errorMessageOf(t, rec))
		})
	}
}

func TestGenerateRejectsBadConfigValue(t *testing.T) {
	srv := NewServer("test")
	rec := postJSON(t, srv, "/generate", `{"templateId":"budget","config":{"months":99}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRejectsResourcesForNonAzure(t *testing.T) {
	srv := NewServer("test")
	body := `{"templateId":"budget","config":{},"resources":[{"name":"VM","quantity":1}]}`
	rec := postJSON(t, srv, "/generate", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateAzureWithResolvedResources(t *testing.T) {
	srv := NewServer("test")
	body := `{"templateId":"azure-calculator","config":{},"resources":[
		{"name":"Vault","serviceName":"Key Vault","skuName":"Standard","environment":"Production","quantity":1,"unitMonthlyCost":21.9,"category":"Security"}]}`
	rec := postJSON(t, srv, "/generate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Azure_Platform_Calculator.xlsx"`, rec.Header().Get("Content-Disposition"))
}

func TestChatOnlySupportsAzureCalculator(t *testing.T) {
	srv := NewServerWithProvider("test", stubProvider{})
	rec := postJSON(t, srv, "/chat/gantt", `{"message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "AI chat is not yet supported for template: gantt", errorMessageOf(t, rec))
}

func TestChatRequiresProvider(t *testing.T) {
	srv := NewServer("test")
	rec := postJSON(t, srv, "/chat/azure-calculator", `{"message":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChatRequiresMessage(t *testing.T) {
	srv := NewServerWithProvider("test", stubProvider{})
	rec := postJSON(t, srv, "/chat/azure-calculator", `{"message":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "message is required", errorMessageOf(t, rec))
}

func TestChatResolvesAndPrices(t *testing.T) {
	reply := `{"resources":[{"name":"Vault","serviceName":"Key Vault","skuName":"Standard","environment":"Production","quantity":2,"category":"Security"}],"summary":"One Key Vault pair."}`
	srv := NewServerWithProvider("test", stubProvider{reply: reply})

	rec := postJSON(t, srv, "/chat/azure-calculator", `{"message":"two key vaults"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "Key Vault", resp.Resources[0].ServiceName)
	assert.Equal(t, 2, resp.Resources[0].Quantity)
	assert.InDelta(t, 21.9, resp.Resources[0].UnitMonthlyCost, 0.001)
	assert.InDelta(t, 43.8, resp.TotalMonthly, 0.001)
	assert.Equal(t, "One Key Vault pair.", resp.Summary)
}

func TestChatNonJSONReply(t *testing.T) {
	srv := NewServerWithProvider("test", stubProvider{reply: "I think you need two VMs."})
	rec := postJSON(t, srv, "/chat/azure-calculator", `{"message":"vms"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "AI returned an unexpected format. Please try rephrasing your request.", errorMessageOf(t, rec))
}

func TestChatMissingResourcesArray(t *testing.T) {
	srv := NewServerWithProvider("test", stubProvider{reply: `{"resources":{"name":"x"},"summary":"s"}`})
	rec := postJSON(t, srv, "/chat/azure-calculator", `{"message":"vms"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "AI response missing resources array.", errorMessageOf(t, rec))
}

func TestTemplatesList(t *testing.T) {
	srv := NewServer("test")
	rec := get(t, srv, "/templates")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Templates []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Templates, 6)
	assert.Equal(t, "budget", resp.Templates[0].ID)
}

func TestPreviewWithDefaults(t *testing.T) {
	srv := NewServer("test")
	rec := get(t, srv, "/preview/invoice")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invoice", resp.TemplateID)
	assert.NotEmpty(t, resp.Rows)
}

func TestPreviewWithConfigBody(t *testing.T) {
	srv := NewServer("test")
	rec := postJSON(t, srv, "/preview/budget", `{"config":{"companyName":"Initech"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Rows)
	assert.Equal(t, "Initech", resp.Rows[0][0].Value)
}

func TestPreviewUnknownTemplate(t *testing.T) {
	srv := NewServer("test")
	rec := get(t, srv, "/preview/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndVersion(t *testing.T) {
	srv := NewServer("1.2.3")

	rec := get(t, srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	rec = get(t, srv, "/version")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"1.2.3"`)
}
