// Package importer provides CSV and Excel import of region boundaries given
// as point lists. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/parcelgen/internal/model"
)

// DefaultRegionName is used for rows without a region column.
const DefaultRegionName = "Region 1"

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Regions  []model.RegionSpec
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Region int
	X      int
	Y      int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"region": {"region", "name", "parcel", "polygon", "block", "district", "id"},
	"x":      {"x", "easting", "east", "e", "lon", "longitude"},
	"y":      {"y", "northing", "north", "n", "lat", "latitude"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a positional
// mapping and false if no header was found. Positional rows are region,x,y
// with three or more cells and x,y with two.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Region: -1, X: -1, Y: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "region":
					if mapping.Region == -1 {
						mapping.Region = i
					}
				case "x":
					if mapping.X == -1 {
						mapping.X = i
					}
				case "y":
					if mapping.Y == -1 {
						mapping.Y = i
					}
				}
			}
		}
	}

	if !isHeader {
		if len(row) == 2 {
			return ColumnMapping{Region: -1, X: 0, Y: 1}, false
		}
		return ColumnMapping{Region: 0, X: 1, Y: 2}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a region name and point from a row.
// Returns the region, point and any error message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (string, model.Point2D, string) {
	region := getCell(row, mapping.Region)
	if region == "" {
		region = DefaultRegionName
	}

	xStr := getCell(row, mapping.X)
	if xStr == "" {
		return "", model.Point2D{}, fmt.Sprintf("%s: Missing x value", rowLabel)
	}
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		return "", model.Point2D{}, fmt.Sprintf("%s: Invalid x '%s'", rowLabel, xStr)
	}

	yStr := getCell(row, mapping.Y)
	if yStr == "" {
		return "", model.Point2D{}, fmt.Sprintf("%s: Missing y value", rowLabel)
	}
	y, err := strconv.ParseFloat(yStr, 64)
	if err != nil {
		return "", model.Point2D{}, fmt.Sprintf("%s: Invalid y '%s'", rowLabel, yStr)
	}

	p := model.Point2D{X: x, Y: y}
	if !p.IsFinite() {
		return "", model.Point2D{}, fmt.Sprintf("%s: Coordinates must be finite", rowLabel)
	}
	return region, p, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports region boundaries from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports region boundaries from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports region boundaries from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Points are grouped by region name in first-seen order; each group becomes
// one boundary ring in row order.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 2 {
		if _, err := strconv.ParseFloat(getCell(rows[0], mapping.X), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	var order []string
	points := map[string]model.Outline{}
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		region, p, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if _, seen := points[region]; !seen {
			order = append(order, region)
		}
		points[region] = append(points[region], p)
	}

	for _, name := range order {
		boundary := points[name]
		if len(boundary) < 3 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped region '%s' with fewer than 3 points", name))
			continue
		}
		result.Regions = append(result.Regions, boundaryRegion(name, boundary))
	}

	if len(result.Regions) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No regions found")
	}

	return result
}

// boundaryRegion wraps an imported ring as a region spec.
func boundaryRegion(name string, boundary model.Outline) model.RegionSpec {
	min, max := boundary.BoundingBox()
	spec := model.NewRegionSpec(name, boundary.Centroid(), max.Sub(min).Scale(0.5).Distance(model.Point2D{}), len(boundary))
	spec.Boundary = boundary
	return spec
}
