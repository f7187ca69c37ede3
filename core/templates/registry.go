// Package templates holds the workbook builders: one deterministic
// layout algorithm per template, all emitting formulas as text so the
// delivered file recalculates when a user edits any input cell.
package templates

import (
	"github.com/xuri/excelize/v2"

	"sheetforge/core/types"
	"sheetforge/internal/errors"
)

// Definition describes one template for registry listings and schema
// validation.
type Definition struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Icon        string              `json:"icon"`
	Tags        []string            `json:"tags"`
	Fields      []types.ConfigField `json:"fields"`
}

func num(v float64) *float64 { return &v }

var currencyOptions = []types.SelectOption{
	{Label: "AUD ($)", Value: "AUD"},
	{Label: "USD ($)", Value: "USD"},
	{Label: "GBP (£)", Value: "GBP"},
	{Label: "EUR (€)", Value: "EUR"},
	{Label: "CAD ($)", Value: "CAD"},
}

var definitions = []Definition{
	{
		ID:          "budget",
		Name:        "Budget & Expense Tracker",
		Description: "Monthly expense tracker with category breakdowns, totals, and a summary dashboard tab.",
		Category:    "finance",
		Icon:        "💰",
		Tags:        []string{"finance", "budget", "expenses", "monthly"},
		Fields: []types.ConfigField{
			{Key: "companyName", Label: "Company / Name", Type: types.FieldText, Default: "Acme Corp", Placeholder: "Your company or name", Group: "Branding"},
			{Key: "reportTitle", Label: "Report Title", Type: types.FieldText, Default: "Annual Budget Tracker", Placeholder: "e.g. FY2025 Budget", Group: "Branding"},
			{Key: "headerColor", Label: "Header Colour", Type: types.FieldColor, Default: "#1E3A5F", Group: "Branding"},
			{Key: "accentColor", Label: "Accent Colour", Type: types.FieldColor, Default: "#2E86AB", Group: "Branding"},
			{Key: "currency", Label: "Currency", Type: types.FieldSelect, Default: "AUD", Options: currencyOptions, Group: "Settings"},
			{Key: "months", Label: "Number of Months", Type: types.FieldNumber, Default: float64(12), Min: num(1), Max: num(12), Group: "Settings"},
			{Key: "categories", Label: "Expense Categories", Type: types.FieldTags, Default: []string{"Salaries", "Software & Licences", "Travel", "Marketing", "Infrastructure", "Miscellaneous"}, Group: "Settings"},
			{Key: "incomeCategories", Label: "Income Categories", Type: types.FieldTags, Default: []string{"Consulting Revenue", "Support Contracts", "Other Income"}, Group: "Settings"},
		},
	},
	{
		ID:          "invoice",
		Name:        "Invoice / Quote",
		Description: "Professional invoice or quote template with line items, tax, and payment details.",
		Category:    "finance",
		Icon:        "🧾",
		Tags:        []string{"invoice", "quote", "billing", "finance"},
		Fields: []types.ConfigField{
			{Key: "companyName", Label: "Your Company Name", Type: types.FieldText, Default: "Acme Consulting Pty Ltd", Group: "Your Details"},
			{Key: "companyAbn", Label: "ABN / Company Reg.", Type: types.FieldText, Default: "ABN 12 345 678 901", Group: "Your Details"},
			{Key: "companyAddress", Label: "Address", Type: types.FieldTextarea, Default: "123 Collins St, Melbourne VIC 3000", Group: "Your Details"},
			{Key: "companyEmail", Label: "Email", Type: types.FieldText, Default: "billing@acme.com.au", Group: "Your Details"},
			{Key: "companyPhone", Label: "Phone", Type: types.FieldText, Default: "+61 3 9000 0000", Group: "Your Details"},
			{Key: "headerColor", Label: "Header Colour", Type: types.FieldColor, Default: "#1E3A5F", Group: "Branding"},
			{Key: "accentColor", Label: "Accent Colour", Type: types.FieldColor, Default: "#2E86AB", Group: "Branding"},
			{Key: "documentType", Label: "Document Type", Type: types.FieldSelect, Default: "Invoice", Options: []types.SelectOption{
				{Label: "Invoice", Value: "Invoice"},
				{Label: "Quote", Value: "Quote"},
				{Label: "Tax Invoice", Value: "Tax Invoice"},
				{Label: "Proforma Invoice", Value: "Proforma Invoice"},
			}, Group: "Settings"},
			{Key: "currency", Label: "Currency", Type: types.FieldSelect, Default: "AUD", Options: currencyOptions, Group: "Settings"},
			{Key: "taxRate", Label: "Tax Rate (%)", Type: types.FieldNumber, Default: float64(10), Min: num(0), Max: num(100), Group: "Settings"},
			{Key: "taxLabel", Label: "Tax Label", Type: types.FieldText, Default: "GST", Placeholder: "GST / VAT / Tax", Group: "Settings"},
			{Key: "lineItems", Label: "Number of Line Item Rows", Type: types.FieldNumber, Default: float64(10), Min: num(3), Max: num(30), Group: "Settings"},
			{Key: "paymentTerms", Label: "Payment Terms", Type: types.FieldText, Default: "Net 30 days", Group: "Settings"},
			{Key: "bankDetails", Label: "Bank / Payment Details", Type: types.FieldTextarea, Default: "BSB: 123-456  Account: 123456789\nBank: Commonwealth Bank of Australia", Group: "Settings"},
			{Key: "notes", Label: "Notes / Terms", Type: types.FieldTextarea, Default: "Thank you for your business. Please reference the invoice number when making payment.", Group: "Settings"},
		},
	},
	{
		ID:          "gantt",
		Name:        "Project Timeline / Gantt",
		Description: "Visual project timeline with phases, tasks, milestones, and a weekly/monthly grid.",
		Category:    "project",
		Icon:        "📅",
		Tags:        []string{"project", "gantt", "timeline", "planning"},
		Fields: []types.ConfigField{
			{Key: "projectName", Label: "Project Name", Type: types.FieldText, Default: "Azure Migration Project", Group: "Project"},
			{Key: "companyName", Label: "Company / Client", Type: types.FieldText, Default: "Acme Corp", Group: "Project"},
			{Key: "projectManager", Label: "Project Manager", Type: types.FieldText, Default: "Jane Smith", Group: "Project"},
			{Key: "headerColor", Label: "Header Colour", Type: types.FieldColor, Default: "#1E3A5F", Group: "Branding"},
			{Key: "accentColor", Label: "Milestone Colour", Type: types.FieldColor, Default: "#E74C3C", Group: "Branding"},
			{Key: "taskColor", Label: "Task Bar Colour", Type: types.FieldColor, Default: "#2E86AB", Group: "Branding"},
			{Key: "completedColor", Label: "Completed Bar Colour", Type: types.FieldColor, Default: "#27AE60", Group: "Branding"},
			{Key: "weeks", Label: "Project Duration (weeks)", Type: types.FieldNumber, Default: float64(12), Min: num(4), Max: num(52), Group: "Settings"},
			{Key: "taskRows", Label: "Number of Task Rows", Type: types.FieldNumber, Default: float64(15), Min: num(5), Max: num(50), Group: "Settings"},
			{Key: "phases", Label: "Project Phases", Type: types.FieldTags, Default: []string{"Initiation", "Planning", "Execution", "Monitoring", "Closure"}, Group: "Settings"},
			{Key: "showRaci", Label: "Include RACI Column", Type: types.FieldToggle, Default: true, Group: "Settings"},
			{Key: "showStatus", Label: "Include Status Column", Type: types.FieldToggle, Default: true, Group: "Settings"},
		},
	},
	{
		ID:          "rbac",
		Name:        "RBAC Matrix",
		Description: "Role-Based Access Control matrix mapping roles to resources/permissions. Great for Azure IAM and application security design.",
		Category:    "consulting",
		Icon:        "🔐",
		Tags:        []string{"rbac", "security", "azure", "iam", "permissions", "consulting"},
		Fields: []types.ConfigField{
			{Key: "projectName", Label: "Project / System Name", Type: types.FieldText, Default: "Azure Platform RBAC", Group: "Project"},
			{Key: "companyName", Label: "Organisation", Type: types.FieldText, Default: "Acme Corp", Group: "Project"},
			{Key: "headerColor", Label: "Header Colour", Type: types.FieldColor, Default: "#0078D4", Group: "Branding"},
			{Key: "accentColor", Label: "Accent Colour", Type: types.FieldColor, Default: "#50E6FF", Group: "Branding"},
			{Key: "roles", Label: "Roles", Type: types.FieldTags, Default: []string{"Owner", "Contributor", "Reader", "Security Admin", "Network Contributor", "Billing Reader", "DevOps Engineer", "Helpdesk"}, Group: "RBAC"},
			{Key: "resourceGroups", Label: "Resource Groups / Scopes", Type: types.FieldTags, Default: []string{"Production", "Development", "Staging", "Shared Services", "Network Hub", "Security"}, Group: "RBAC"},
			{Key: "permissionValues", Label: "Permission Key", Type: types.FieldSelect, Default: "CRUD", Options: []types.SelectOption{
				{Label: "CRUD (C/R/U/D)", Value: "CRUD"},
				{Label: "Allow/Deny (✓/✗)", Value: "AllowDeny"},
				{Label: "Access Levels (Full/Read/None)", Value: "Levels"},
				{Label: "Azure Built-in Roles (Owner/Contributor/Reader)", Value: "Azure"},
			}, Group: "Settings"},
			{Key: "includeDescription", Label: "Include Role Descriptions", Type: types.FieldToggle, Default: true, Group: "Settings"},
			{Key: "includeJustification", Label: "Include Justification Column", Type: types.FieldToggle, Default: true, Group: "Settings"},
			{Key: "azureEnvironment", Label: "Azure Environment", Type: types.FieldSelect, Default: "All", Options: []types.SelectOption{
				{Label: "All Environments", Value: "All"},
				{Label: "Production Only", Value: "Production"},
				{Label: "Non-Production", Value: "NonProd"},
			}, Group: "Settings"},
		},
	},
	{
		ID:          "azure-calculator",
		Name:        "Azure Platform Calculator",
		Description: "Azure resource cost estimation template with resource types, SKUs, regions, and monthly/annual cost projections.",
		Category:    "azure",
		Icon:        "☁️",
		Tags:        []string{"azure", "cloud", "cost", "calculator", "infrastructure"},
		Fields: []types.ConfigField{
			{Key: "projectName", Label: "Project / Initiative Name", Type: types.FieldText, Default: "Azure Platform Modernisation", Group: "Project"},
			{Key: "companyName", Label: "Organisation", Type: types.FieldText, Default: "Acme Corp", Group: "Project"},
			{Key: "currency", Label: "Currency", Type: types.FieldSelect, Default: "AUD", Options: []types.SelectOption{
				{Label: "AUD ($)", Value: "AUD"},
				{Label: "USD ($)", Value: "USD"},
				{Label: "GBP (£)", Value: "GBP"},
			}, Group: "Project"},
			{Key: "headerColor", Label: "Header Colour", Type: types.FieldColor, Default: "#0078D4", Group: "Branding"},
			{Key: "accentColor", Label: "Accent Colour", Type: types.FieldColor, Default: "#50E6FF", Group: "Branding"},
			{Key: "region", Label: "Primary Azure Region", Type: types.FieldSelect, Default: "australiaeast", Options: []types.SelectOption{
				{Label: "Australia East", Value: "australiaeast"},
				{Label: "Australia Southeast", Value: "australiasoutheast"},
				{Label: "East US", Value: "eastus"},
				{Label: "West Europe", Value: "westeurope"},
				{Label: "UK South", Value: "uksouth"},
				{Label: "Southeast Asia", Value: "southeastasia"},
			}, Group: "Settings"},
			{Key: "environments", Label: "Environments", Type: types.FieldTags, Default: []string{"Production", "Development", "UAT"}, Group: "Settings"},
			{Key: "resourceCategories", Label: "Resource Categories", Type: types.FieldTags, Default: []string{"Compute", "Storage", "Networking", "Databases", "AI & ML", "Security", "Monitoring"}, Group: "Settings"},
			{Key: "contingencyPct", Label: "Contingency (%)", Type: types.FieldNumber, Default: float64(15), Min: num(0), Max: num(50), Group: "Settings"},
			{Key: "includeReserved", Label: "Include Reserved Instance Savings", Type: types.FieldToggle, Default: true, Group: "Settings"},
			{Key: "includePricingReference", Label: "Include Pricing Reference Sheet", Type: types.FieldToggle, Default: true, Group: "Settings"},
		},
	},
	{
		ID:          "user-stories",
		Name:        "User Stories & Personas",
		Description: "Agile user story backlog with persona cards, acceptance criteria, story points, and priority tracking.",
		Category:    "consulting",
		Icon:        "👤",
		Tags:        []string{"agile", "user stories", "personas", "backlog", "consulting"},
		Fields: []types.ConfigField{
			{Key: "projectName", Label: "Project Name", Type: types.FieldText, Default: "Digital Transformation", Group: "Project"},
			{Key: "companyName", Label: "Organisation", Type: types.FieldText, Default: "Acme Corp", Group: "Project"},
			{Key: "headerColor", Label: "Header Colour", Type: types.FieldColor, Default: "#6C3483", Group: "Branding"},
			{Key: "accentColor", Label: "Accent Colour", Type: types.FieldColor, Default: "#A569BD", Group: "Branding"},
			{Key: "epicNames", Label: "Epics", Type: types.FieldTags, Default: []string{"User Management", "Reporting & Analytics", "Notifications", "Integrations", "Administration"}, Group: "Backlog"},
			{Key: "personas", Label: "Personas", Type: types.FieldTags, Default: []string{"End User", "Administrator", "Manager", "External Partner", "Developer"}, Group: "Personas"},
			{Key: "storyCount", Label: "Number of Story Rows", Type: types.FieldNumber, Default: float64(20), Min: num(5), Max: num(100), Group: "Backlog"},
			{Key: "storyPointScale", Label: "Story Point Scale", Type: types.FieldSelect, Default: "Fibonacci", Options: []types.SelectOption{
				{Label: "Fibonacci (1,2,3,5,8,13,21)", Value: "Fibonacci"},
				{Label: "T-Shirt (XS,S,M,L,XL)", Value: "TShirt"},
				{Label: "Linear (1-10)", Value: "Linear"},
			}, Group: "Backlog"},
			{Key: "includePersonaSheet", Label: "Include Persona Profiles Sheet", Type: types.FieldToggle, Default: true, Group: "Personas"},
			{Key: "includeMoSCoW", Label: "Include MoSCoW Prioritisation", Type: types.FieldToggle, Default: true, Group: "Backlog"},
		},
	},
}

// Definitions returns all templates in display order.
func Definitions() []Definition {
	return definitions
}

// Lookup finds a template definition by id.
func Lookup(id string) (Definition, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Validate checks cfg against the template's schema and returns the
// completed config with defaults applied.
func Validate(id string, cfg types.TemplateConfig) (types.TemplateConfig, error) {
	def, ok := Lookup(id)
	if !ok {
		return nil, errors.NotFound("template", id)
	}
	return validateConfig(def.Fields, cfg)
}

// Generate validates cfg against the template's schema and builds the
// workbook with placeholder rows.
func Generate(id string, cfg types.TemplateConfig) (*excelize.File, error) {
	return GenerateWithResources(id, cfg, nil)
}

// GenerateWithResources is Generate plus an optional resolved resource
// list. Only the Azure calculator consumes resources; other templates
// reject them.
func GenerateWithResources(id string, cfg types.TemplateConfig, resources []types.AzureResource) (*excelize.File, error) {
	def, ok := Lookup(id)
	if !ok {
		return nil, errors.NotFound("template", id)
	}
	if len(resources) > 0 && id != "azure-calculator" {
		return nil, errors.Inputf("template %q does not accept resolved resources", id)
	}

	validated, err := validateConfig(def.Fields, cfg)
	if err != nil {
		return nil, err
	}

	switch id {
	case "budget":
		return buildBudget(validated)
	case "invoice":
		return buildInvoice(validated)
	case "gantt":
		return buildGantt(validated)
	case "rbac":
		return buildRbac(validated)
	case "azure-calculator":
		return buildAzureCalculator(validated, resources)
	case "user-stories":
		return buildUserStories(validated)
	}
	return nil, errors.NotFound("template", id)
}
