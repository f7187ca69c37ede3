package api

import (
	"regexp"

	"sheetforge/core/types"
)

// GenerateRequest is the body of POST /generate. Resources is optional
// and only meaningful for the Azure calculator: when present, the
// workbook is built from the resolved list instead of placeholder rows.
type GenerateRequest struct {
	TemplateID string                `json:"templateId"`
	Config     types.TemplateConfig  `json:"config"`
	Resources  []types.AzureResource `json:"resources,omitempty"`
}

// ChatRequest is the body of POST /chat/{templateId}.
type ChatRequest struct {
	Message string               `json:"message"`
	Config  types.TemplateConfig `json:"config,omitempty"`
}

// ChatResponse carries the priced resolution result back to the client.
type ChatResponse struct {
	Resources    []types.AzureResource `json:"resources"`
	Summary      string                `json:"summary"`
	TotalMonthly float64               `json:"totalMonthly"`
}

// PreviewResponse wraps the preview grid.
type PreviewResponse struct {
	TemplateID string             `json:"templateId"`
	Rows       []types.PreviewRow `json:"rows"`
}

// ErrorBody is the uniform error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

const spreadsheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// workbookFilename derives the download filename from a template's
// display name.
func workbookFilename(templateName string) string {
	return filenameSanitizer.ReplaceAllString(templateName, "_") + ".xlsx"
}
