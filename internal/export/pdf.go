// Package export writes subdivision plans to PDF, DXF and XLSX files and
// prints QR-coded lot labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/parcelgen/internal/model"
	"github.com/piwi3910/parcelgen/internal/region"
)

// lotColor represents an RGB fill color for a lot.
type lotColor struct {
	R, G, B int
}

var lotColors = []lotColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 10.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// plotFrame maps world coordinates into a page rectangle, flipping Y.
type plotFrame struct {
	min     model.Point2D
	scale   float64
	offsetX float64
	offsetY float64
	height  float64
}

func newPlotFrame(min, max model.Point2D, x, y, w, h float64) plotFrame {
	ww, wh := math.Max(max.X-min.X, 1e-9), math.Max(max.Y-min.Y, 1e-9)
	scale := math.Min(w/ww, h/wh)
	return plotFrame{
		min:     min,
		scale:   scale,
		offsetX: x + (w-ww*scale)/2,
		offsetY: y,
		height:  wh * scale,
	}
}

func (f plotFrame) point(p model.Point2D) fpdf.PointType {
	return fpdf.PointType{
		X: f.offsetX + (p.X-f.min.X)*f.scale,
		Y: f.offsetY + f.height - (p.Y-f.min.Y)*f.scale,
	}
}

func (f plotFrame) polygon(o model.Outline) []fpdf.PointType {
	pts := make([]fpdf.PointType, len(o))
	for i, p := range o {
		pts[i] = f.point(p)
	}
	return pts
}

// ExportPDF generates a PDF document for a plan: an overview page with all
// regions and roads, one page per region with its lots, and a summary page.
func ExportPDF(path string, plan *region.Plan, settings model.SubdivisionSettings) error {
	if plan == nil || len(plan.Regions) == 0 {
		return fmt.Errorf("no regions to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderOverviewPage(pdf, plan)

	for i, r := range plan.Regions {
		pdf.AddPage()
		renderRegionPage(pdf, r, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan, settings)

	return pdf.OutputFileAndClose(path)
}

func planBounds(plan *region.Plan) (min, max model.Point2D) {
	var all model.Outline
	for _, r := range plan.Regions {
		all = append(all, r.Boundary...)
	}
	return all.BoundingBox()
}

// renderOverviewPage draws every region outline and the roads between them.
func renderOverviewPage(pdf *fpdf.Fpdf, plan *region.Plan) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Plan Overview", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Regions: %d | Lots: %d | Roads: %d", len(plan.Regions), len(plan.Lots()), len(plan.Roads))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	min, max := planBounds(plan)
	frame := newPlotFrame(min, max, marginLeft, drawAreaTop,
		pageWidth-marginLeft-marginRight, pageHeight-drawAreaTop-marginBottom-statsHeight)

	for i, r := range plan.Regions {
		col := lotColors[i%len(lotColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.4)
		pdf.Polygon(frame.polygon(r.Boundary), "FD")

		c := frame.point(r.Boundary.Centroid())
		pdf.SetFont("Helvetica", "B", 8)
		w := pdf.GetStringWidth(r.Spec.Name)
		pdf.SetXY(c.X-w/2, c.Y-2)
		pdf.CellFormat(w, 4, r.Spec.Name, "", 0, "C", false, 0, "")
	}

	pdf.SetDrawColor(90, 90, 90)
	pdf.SetLineWidth(0.8)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	for _, road := range plan.Roads {
		a, b := frame.point(road.Start), frame.point(road.End)
		pdf.Line(a.X, a.Y, b.X, b.Y)
	}
	pdf.SetDashPattern([]float64{}, 0)
}

// renderRegionPage draws a single region's lots on the current PDF page.
func renderRegionPage(pdf *fpdf.Fpdf, r region.Region, regionNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Region %d: %s", regionNum, r.Spec.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Lots: %d | Area: %s | Splits: %d | Anomalies: %d",
		len(r.Lots), formatFixed(r.Root.Area(), 2), r.Report.Splits, len(r.Report.Anomalies))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	min, max := r.Boundary.BoundingBox()
	frame := newPlotFrame(min, max, marginLeft, drawAreaTop,
		pageWidth-marginLeft-marginRight, pageHeight-drawAreaTop-marginBottom-statsHeight)

	for i, lot := range r.Lots {
		col := lotColors[i%len(lotColors)]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Polygon(frame.polygon(lot.Boundary), "FD")

		c := frame.point(lot.Centroid)
		pdf.SetFillColor(0, 0, 0)
		pdf.Circle(c.X, c.Y, 0.6, "F")

		size := lot.Height * frame.scale
		if size > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(size))
			pdf.SetTextColor(0, 0, 0)
			w := pdf.GetStringWidth(lot.Name)
			pdf.SetXY(c.X-w/2, c.Y+1)
			pdf.CellFormat(w, 3, lot.Name, "", 0, "C", false, 0, "")
		}
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.6)
	pdf.Polygon(frame.polygon(r.Boundary), "D")
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan *region.Plan, settings model.SubdivisionSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Subdivision Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	lots := plan.Lots()
	totalArea := 0.0
	for _, l := range lots {
		totalArea += l.Area
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Regions", fmt.Sprintf("%d", len(plan.Regions))},
		{"Lots", fmt.Sprintf("%d", len(lots))},
		{"Total Lot Area", formatFixed(totalArea, 2)},
		{"Roads", fmt.Sprintf("%d", len(plan.Roads))},
		{"Degenerate Splits", fmt.Sprintf("%d", plan.Report.DegenerateSplits)},
		{"Malformed Boundaries", fmt.Sprintf("%d", plan.Report.MalformedBoundaries)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Region Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{50, 25, 25, 45, 45, 40}
	headers := []string{"Region", "Points", "Lots", "Area", "Mean Lot Area", "Anomalies"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range plan.Regions {
		mean := 0.0
		if len(r.Lots) > 0 {
			mean = r.Root.Area() / float64(len(r.Lots))
		}
		rowData := []string{
			r.Spec.Name,
			fmt.Sprintf("%d", len(r.Boundary)),
			fmt.Sprintf("%d", len(r.Lots)),
			formatFixed(r.Root.Area(), 2),
			formatFixed(mean, 2),
			fmt.Sprintf("%d", len(r.Report.Anomalies)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
		if y > pageHeight-marginBottom-40 {
			break
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Depth", fmt.Sprintf("%d", settings.Depth)},
		{"Intersection Test", string(settings.Intersection)},
		{"Point Tolerance", fmt.Sprintf("%g", settings.PointTolerance)},
		{"Max Road Distance", formatFixed(settings.MaxRoadDistance, 1)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by parcelgen", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns a font size for a lot whose short side spans size mm.
func labelFontSize(size float64) float64 {
	switch {
	case size > 40:
		return 8
	case size > 20:
		return 7
	default:
		return 6
	}
}
