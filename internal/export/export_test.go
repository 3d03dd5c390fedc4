package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/parcelgen/internal/importer"
	"github.com/piwi3910/parcelgen/internal/model"
	"github.com/piwi3910/parcelgen/internal/region"
)

func square(name string, x, size float64) model.RegionSpec {
	spec := model.NewRegionSpec(name, model.Point2D{X: x + size/2, Y: size / 2}, 0, 0)
	spec.Boundary = model.Outline{{X: x, Y: 0}, {X: x + size, Y: 0}, {X: x + size, Y: size}, {X: x, Y: size}}
	return spec
}

// buildTestPlan creates two 10x10 regions split into four lots each and
// joined by one road.
func buildTestPlan(t *testing.T) (*region.Plan, model.SubdivisionSettings) {
	t.Helper()
	settings := model.DefaultSettings()
	settings.Depth = 2
	plan, err := region.BuildPlan(region.NewRNG(1), []model.RegionSpec{
		square("North", 0, 10),
		square("South", 20, 10),
	}, settings)
	require.NoError(t, err)
	require.Len(t, plan.Lots(), 8)
	require.Len(t, plan.Roads, 1)
	return plan, settings
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.235, roundTo(1.23456, 3))
	assert.Equal(t, 2.0, roundTo(1.9999, 2))
	assert.Equal(t, "25.00", formatFixed(25, 2))
	assert.Equal(t, "0.33", formatFixed(1.0/3, 2))
}

func TestExportPDF(t *testing.T) {
	plan, settings := buildTestPlan(t)
	path := filepath.Join(t.TempDir(), "plan.pdf")

	require.NoError(t, ExportPDF(path, plan, settings))
	requireNonEmptyFile(t, path)
}

func TestExportPDF_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")
	assert.Error(t, ExportPDF(path, nil, model.DefaultSettings()))
	assert.Error(t, ExportPDF(path, &region.Plan{}, model.DefaultSettings()))
}

func TestLabelFontSize(t *testing.T) {
	assert.Equal(t, 8.0, labelFontSize(50))
	assert.Equal(t, 7.0, labelFontSize(30))
	assert.Equal(t, 6.0, labelFontSize(10))
}

func TestPlotFrame_FlipsY(t *testing.T) {
	f := newPlotFrame(model.Point2D{}, model.Point2D{X: 10, Y: 10}, 0, 0, 100, 100)
	p := f.point(model.Point2D{X: 0, Y: 0})
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 100.0, p.Y, 1e-9)
	p = f.point(model.Point2D{X: 10, Y: 10})
	assert.InDelta(t, 100.0, p.X, 1e-9)
	assert.InDelta(t, 0.0, p.Y, 1e-9)
}

func TestCollectLabelInfos(t *testing.T) {
	plan, _ := buildTestPlan(t)
	labels := CollectLabelInfos(plan.Lots())

	require.Len(t, labels, 8)
	for _, l := range labels {
		assert.InDelta(t, 25.0, l.Area, 1e-3)
		assert.NotEmpty(t, l.LotID)
	}
	assert.Equal(t, "North", labels[0].Region)
	assert.Equal(t, "South", labels[7].Region)
}

func TestExportLabels(t *testing.T) {
	plan, _ := buildTestPlan(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, plan.Lots()))
	requireNonEmptyFile(t, path)
}

func TestExportLabels_MultiplePages(t *testing.T) {
	lot := model.Lot{ID: "l", Name: "0-0-0", Region: "R", Area: 1, Width: 1, Height: 1}
	lots := make([]model.Lot, labelsPerPage+5)
	for i := range lots {
		lots[i] = lot
	}
	path := filepath.Join(t.TempDir(), "labels.pdf")
	require.NoError(t, ExportLabels(path, lots))
	requireNonEmptyFile(t, path)
}

func TestExportLabels_NoLots(t *testing.T) {
	assert.Error(t, ExportLabels(filepath.Join(t.TempDir(), "labels.pdf"), nil))
}

func TestExportXLSX(t *testing.T) {
	plan, _ := buildTestPlan(t)
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, ExportXLSX(path, plan))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{SheetLots, SheetRegions, SheetRoads}, f.GetSheetList())

	rows, err := f.GetRows(SheetLots)
	require.NoError(t, err)
	require.Len(t, rows, 9)
	assert.Equal(t, "Region", rows[0][0])
	assert.Equal(t, "North", rows[1][0])
	assert.Equal(t, "25", rows[1][3])

	rows, err = f.GetRows(SheetRoads)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "North", rows[1][0])
	assert.Equal(t, "South", rows[1][1])
	assert.Equal(t, "10", rows[1][6])
}

func TestExportDXF_RoundTrip(t *testing.T) {
	plan, _ := buildTestPlan(t)
	path := filepath.Join(t.TempDir(), "plan.dxf")
	require.NoError(t, ExportDXF(path, plan))

	result := importer.ImportDXF(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Regions, len(plan.Regions)+len(plan.Lots()))
	assert.InDelta(t, 100.0, result.Regions[0].Boundary.Area(), 1e-3)
	assert.InDelta(t, 25.0, result.Regions[2].Boundary.Area(), 1e-3)
}

func TestExportDXF_EmptyPlan(t *testing.T) {
	assert.Error(t, ExportDXF(filepath.Join(t.TempDir(), "plan.dxf"), &region.Plan{}))
}

func TestExportJSON(t *testing.T) {
	plan, _ := buildTestPlan(t)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, ExportJSON(path, plan))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc PlanDocument
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Len(t, doc.Regions, 2)
	assert.Len(t, doc.Lots, 8)
	assert.Len(t, doc.Roads, 1)
	assert.Equal(t, 100.0, doc.Regions[0].Area)
	assert.Equal(t, map[string]int{"split": 3, "leaf": 4}, doc.Regions[0].Outcomes)
}
