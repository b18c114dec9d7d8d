package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// reportPreview converts the sheet array into printable headers and rows.
// Count columns are right-aligned; identity columns stay left-aligned.
func reportPreview(array [][]any) (headers []string, rows [][]string, aligns []columnAlignment) {
	if len(array) == 0 {
		return nil, nil, nil
	}

	headers = make([]string, len(array[0]))
	aligns = make([]columnAlignment, len(array[0]))
	for i, cell := range array[0] {
		headers[i] = formatCell(cell)
		if i >= 2 {
			aligns[i] = alignRight
		}
	}

	rows = make([][]string, 0, len(array)-1)
	for _, dataRow := range array[1:] {
		row := make([]string, len(dataRow))
		for i, cell := range dataRow {
			row[i] = formatCell(cell)
		}
		rows = append(rows, row)
	}
	return headers, rows, aligns
}

func formatCell(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}
