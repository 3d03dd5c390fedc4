package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/parcelgen/internal/region"
)

// Sheet names used by ExportXLSX.
const (
	SheetLots    = "Lots"
	SheetRegions = "Regions"
	SheetRoads   = "Roads"
)

// ExportXLSX writes a workbook with one row per lot, region and road.
func ExportXLSX(path string, plan *region.Plan) error {
	if plan == nil || len(plan.Regions) == 0 {
		return fmt.Errorf("no regions to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetLots); err != nil {
		return err
	}
	for _, name := range []string{SheetRegions, SheetRoads} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	lotRows := [][]interface{}{
		{"Region", "Lot", "ID", "Area", "Width", "Height", "Aspect", "Centroid X", "Centroid Y", "Vertices", "Iteration"},
	}
	for _, l := range plan.Lots() {
		lotRows = append(lotRows, []interface{}{
			l.Region, l.Name, l.ID,
			roundTo(l.Area, 3), roundTo(l.Width, 3), roundTo(l.Height, 3), roundTo(l.AspectRatio(), 3),
			roundTo(l.Centroid.X, 3), roundTo(l.Centroid.Y, 3),
			len(l.Boundary), l.Iteration,
		})
	}

	regionRows := [][]interface{}{
		{"Region", "Points", "Area", "Lots", "Splits", "Degenerate", "Malformed"},
	}
	for _, r := range plan.Regions {
		regionRows = append(regionRows, []interface{}{
			r.Spec.Name, len(r.Boundary), roundTo(r.Root.Area(), 3), len(r.Lots),
			r.Report.Splits, r.Report.DegenerateSplits, r.Report.MalformedBoundaries,
		})
	}

	roadRows := [][]interface{}{
		{"From", "To", "Start X", "Start Y", "End X", "End Y", "Length"},
	}
	for _, road := range plan.Roads {
		roadRows = append(roadRows, []interface{}{
			road.From, road.To,
			roundTo(road.Start.X, 3), roundTo(road.Start.Y, 3),
			roundTo(road.End.X, 3), roundTo(road.End.Y, 3),
			roundTo(road.Length, 3),
		})
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetLots:    lotRows,
		SheetRegions: regionRows,
		SheetRoads:   roadRows,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if err := f.SetColWidth(sheet, "A", "K", 14); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}
