// Package sheet exports plots to an Excel workbook, one worksheet per plot.
package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rewired-gh/plotbot/internal/chart"
)

const maxSheetName = 31

// SheetName is the worksheet name used for a chart: its id and title with
// the characters Excel forbids removed.
func SheetName(c chart.Chart) string {
	name := fmt.Sprintf("%d %s", c.Info().ID, c.Title())
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, name)
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return strings.TrimSpace(name)
}

// Write builds a workbook with a summary sheet followed by one sheet per
// chart and writes it to w.
func Write(w io.Writer, charts []chart.Chart) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Plots"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}
	if err := f.SetSheetRow(summary, "A1", &[]interface{}{"ID", "Title", "Kind", "Creator", "Points"}); err != nil {
		return err
	}

	for i, c := range charts {
		row := []interface{}{c.Info().ID, c.Title(), string(c.Kind()), c.Info().Creator.String(), c.Len()}
		if err := f.SetSheetRow(summary, cell(1, i+2), &row); err != nil {
			return err
		}
		if err := writeChart(f, c); err != nil {
			return fmt.Errorf("plot %d: %w", c.Info().ID, err)
		}
	}

	if err := f.SetColWidth(summary, "B", "B", 30); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeChart(f *excelize.File, c chart.Chart) error {
	name := SheetName(c)
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	switch p := c.(type) {
	case chart.XYChart:
		if err := f.SetSheetRow(name, "A1", &[]interface{}{"Label", "X", "Y", "X error", "Y error"}); err != nil {
			return err
		}
		for i, pt := range p.Points() {
			row := []interface{}{pt.Label, pt.X, pt.Y, pt.ErrX, pt.ErrY}
			if err := f.SetSheetRow(name, cell(1, i+2), &row); err != nil {
				return err
			}
		}
	case *chart.Radar:
		header := []interface{}{"Label"}
		for _, a := range p.Axes {
			header = append(header, a)
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
		for i, v := range p.Vectors.Vectors() {
			row := []interface{}{v.Label}
			for _, x := range v.Values {
				row = append(row, x)
			}
			if err := f.SetSheetRow(name, cell(1, i+2), &row); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported plot kind %s", c.Kind())
	}
	return f.SetColWidth(name, "A", "A", 24)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
