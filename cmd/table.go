// file: cmd/table.go
// version: 1.0.0
// guid: 3f0b9e51-7a7c-4c55-93a8-2b7f1c0d7e44

package cmd

import (
	"github.com/jdfalk/isbn-renamer/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var planHeaders = table.Row{"FILE", "ISBN", "DESTINATION"}

// renderPlan formats dry-run results, one row per input file
func renderPlan(records []models.Record) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(planHeaders)
	for _, row := range planRows(records) {
		tw.AppendRow(table.Row{row[0], row[1], row[2]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
