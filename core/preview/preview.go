// Package preview renders the simplified grid a client shows before
// generating the full workbook. Previews are a fixed handful of sample
// rows styled from the template config; they carry no formulas and cap
// list-driven content so the grid stays small.
package preview

import (
	"fmt"

	"sheetforge/core/types"
	"sheetforge/internal/errors"
)

// Rows returns the preview grid for a template id using an already
// validated config.
func Rows(id string, cfg types.TemplateConfig) ([]types.PreviewRow, error) {
	switch id {
	case "budget":
		return budgetPreview(cfg), nil
	case "invoice":
		return invoicePreview(cfg), nil
	case "gantt":
		return ganttPreview(cfg), nil
	case "rbac":
		return rbacPreview(cfg), nil
	case "azure-calculator":
		return azurePreview(cfg), nil
	case "user-stories":
		return storiesPreview(cfg), nil
	}
	return nil, errors.NotFound("template", id)
}

func banner(value string, span int, bg string) types.PreviewCell {
	return types.PreviewCell{Value: value, ColSpan: span, Style: &types.PreviewStyle{Background: bg, Color: "#fff", Bold: true, Align: "center"}}
}

func head(value, bg, align string) types.PreviewCell {
	st := &types.PreviewStyle{Background: bg, Color: "#fff", Bold: true}
	if align != "" {
		st.Align = align
	}
	return types.PreviewCell{Value: value, IsHeader: true, Style: st}
}

func plain(value string) types.PreviewCell {
	return types.PreviewCell{Value: value, Style: &types.PreviewStyle{}}
}

func aligned(value, align string) types.PreviewCell {
	return types.PreviewCell{Value: value, Style: &types.PreviewStyle{Align: align}}
}

func budgetPreview(cfg types.TemplateConfig) []types.PreviewRow {
	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	sym := types.CurrencySymbol(cfg.String("currency"))
	cats := cfg.Tags("categories")
	if len(cats) > 4 {
		cats = cats[:4]
	}

	rows := []types.PreviewRow{
		{banner(cfg.String("companyName"), 4, hdr)},
		{banner(cfg.String("reportTitle"), 4, acc)},
		{head("Category", hdr, ""), head("Jan", hdr, "center"), head("Feb", hdr, "center"), head("Total", hdr, "center")},
	}
	for _, cat := range cats {
		dash := sym + " -"
		rows = append(rows, types.PreviewRow{
			aligned(cat, "left"), aligned(dash, "right"), aligned(dash, "right"), aligned(dash, "right"),
		})
	}
	zero := types.PreviewCell{Value: sym + " 0", Style: &types.PreviewStyle{Background: "#e8f4f8", Bold: true, Align: "right"}}
	rows = append(rows, types.PreviewRow{
		{Value: "TOTAL", Style: &types.PreviewStyle{Background: acc, Color: "#fff", Bold: true}},
		zero, zero, zero,
	})
	return rows
}

func invoicePreview(cfg types.TemplateConfig) []types.PreviewRow {
	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	sym := types.CurrencySymbol(cfg.String("currency"))

	accCell := func(value, align string) types.PreviewCell {
		st := &types.PreviewStyle{Background: acc}
		if value != "" {
			st.Color = "#fff"
			st.Bold = true
			st.Align = align
		}
		return types.PreviewCell{Value: value, Style: st}
	}

	return []types.PreviewRow{
		{banner(cfg.String("companyName"), 4, hdr)},
		{banner(cfg.String("documentType"), 4, acc)},
		{head("Description", hdr, ""), head("Qty", hdr, "center"), head("Rate", hdr, "right"), head("Amount", hdr, "right")},
		{plain("Consulting Services"), aligned("8", "center"), aligned(sym+"150.00", "right"), aligned(sym+"1,200.00", "right")},
		{plain("Project Management"), aligned("4", "center"), aligned(sym+"200.00", "right"), aligned(sym+"800.00", "right")},
		{plain("Subtotal"), plain(""), plain(""), {Value: sym + "2,000.00", Style: &types.PreviewStyle{Bold: true, Align: "right"}}},
		{plain(fmt.Sprintf("%s (%v%%)", cfg.String("taxLabel"), cfg.Number("taxRate"))), plain(""), plain(""), aligned(sym+"200.00", "right")},
		{
			{Value: "TOTAL DUE", Style: &types.PreviewStyle{Background: acc, Color: "#fff", Bold: true}},
			accCell("", ""), accCell("", ""), accCell(sym+"2,200.00", "right"),
		},
	}
}

func ganttPreview(cfg types.TemplateConfig) []types.PreviewRow {
	hdr := cfg.String("headerColor")
	task := cfg.String("taskColor")

	bar := types.PreviewCell{Value: "█", Style: &types.PreviewStyle{Background: task, Color: task, Align: "center"}}
	phase := func(name string) types.PreviewRow {
		return types.PreviewRow{{Value: "▶ " + name, ColSpan: 5, Style: &types.PreviewStyle{Background: "#34495E", Color: "#fff", Bold: true}}}
	}

	return []types.PreviewRow{
		{banner(cfg.String("projectName"), 5, hdr)},
		{head("Task / Milestone", hdr, ""), head("Owner", hdr, "center"), head("Wk 1", hdr, "center"), head("Wk 2", hdr, "center"), head("Status", hdr, "center")},
		phase("Initiation"),
		{plain("  Project Kickoff"), aligned("Jane S.", "center"), bar, plain(""), aligned("Done", "center")},
		{plain("  Stakeholder Mapping"), aligned("Jane S.", "center"), bar, bar, aligned("In Progress", "center")},
		phase("Planning"),
		{plain("  Requirements Gathering"), aligned("Team", "center"), plain(""), bar, aligned("Pending", "center")},
	}
}

func rbacPreview(cfg types.TemplateConfig) []types.PreviewRow {
	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	roles := cfg.Tags("roles")
	if len(roles) > 4 {
		roles = roles[:4]
	}

	header := types.PreviewRow{head("Resource / Scope", hdr, "")}
	for _, role := range roles {
		header = append(header, head(role, hdr, "center"))
	}

	perm := func(value, bg, color string, bold bool) types.PreviewCell {
		return types.PreviewCell{Value: value, Style: &types.PreviewStyle{Background: bg, Color: color, Bold: bold, Align: "center"}}
	}

	return []types.PreviewRow{
		{banner(cfg.String("projectName"), len(roles)+1, hdr)},
		header,
		{
			{Value: "Production", Style: &types.PreviewStyle{Background: "#F0F7FF", Bold: true}},
			perm("Owner", "#FFE9E9", "#C0392B", true),
			perm("Contributor", "#E9F7EF", "#27AE60", true),
			perm("Reader", "#EBF5FB", "", false),
			perm("None", "#F5F5F5", "#888", false),
		},
		{
			plain("Development"),
			perm("Owner", "#FFE9E9", "#C0392B", true),
			perm("Owner", "#FFE9E9", "#C0392B", true),
			perm("Contributor", "#E9F7EF", "#27AE60", false),
			perm("Reader", "#EBF5FB", "", false),
		},
		{
			{Value: "Legend:", Style: &types.PreviewStyle{Bold: true}},
			perm("Owner = Full", "#FFE9E9", "#C0392B", false),
			perm("Contrib.", "#E9F7EF", "#27AE60", false),
			perm("Reader", "#EBF5FB", "", false),
			perm(acc, acc, "", false),
		},
	}
}

func azurePreview(cfg types.TemplateConfig) []types.PreviewRow {
	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")
	sym := types.CurrencySymbol(cfg.String("currency"))

	band := func(name string) types.PreviewRow {
		return types.PreviewRow{{Value: "▶ " + name, ColSpan: 5, Style: &types.PreviewStyle{Background: "#034078", Color: "#fff", Bold: true}}}
	}

	return []types.PreviewRow{
		{banner(cfg.String("projectName"), 5, hdr)},
		{{Value: "Azure Cost Estimate", ColSpan: 5, Style: &types.PreviewStyle{Background: acc, Color: "#003087", Bold: true, Align: "center"}}},
		{head("Resource", hdr, ""), head("SKU", hdr, "center"), head("Qty", hdr, "center"), head("Monthly", hdr, "right"), head("Annual", hdr, "right")},
		band("Compute"),
		{plain("App Service Plan"), aligned("P2v3", "center"), aligned("2", "center"), aligned(sym+"580", "right"), aligned(sym+"6,960", "right")},
		band("Storage"),
		{plain("Storage Account (LRS)"), aligned("Standard", "center"), aligned("1", "center"), aligned(sym+"42", "right"), aligned(sym+"504", "right")},
		{
			{Value: "TOTAL (excl. contingency)", ColSpan: 4, Style: &types.PreviewStyle{Background: acc, Color: "#003087", Bold: true}},
			{Value: sym + "7,464", Style: &types.PreviewStyle{Background: acc, Color: "#003087", Bold: true, Align: "right"}},
		},
	}
}

func storiesPreview(cfg types.TemplateConfig) []types.PreviewRow {
	hdr := cfg.String("headerColor")
	acc := cfg.String("accentColor")

	must := &types.PreviewStyle{Background: "#FFE9E9", Color: "#C0392B", Align: "center"}
	should := &types.PreviewStyle{Background: "#FFF3CD", Color: "#856404", Align: "center"}

	return []types.PreviewRow{
		{banner(cfg.String("projectName"), 5, hdr)},
		{banner("User Story Backlog", 5, acc)},
		{head("ID", hdr, "center"), head("As a...", hdr, ""), head("I want to...", hdr, ""), head("Points", hdr, "center"), head("Priority", hdr, "center")},
		{aligned("US-001", "center"), plain("End User"), plain("log in securely"), aligned("3", "center"), {Value: "Must Have", Style: must}},
		{aligned("US-002", "center"), plain("Administrator"), plain("manage user accounts"), aligned("5", "center"), {Value: "Must Have", Style: must}},
		{aligned("US-003", "center"), plain("Manager"), plain("view dashboard reports"), aligned("8", "center"), {Value: "Should Have", Style: should}},
	}
}
