package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetCompanyInfo    = "Company Info"
	SheetNetworkTargets = "Network Targets"
	SheetSuppliers      = "Suppliers"
	SheetWarehouses     = "Warehouses"
	SheetCustomers      = "Customers"
	SheetConnections    = "Connections"
)

// ErrMissingSheet is returned when a required sheet is absent from the workbook
var ErrMissingSheet = errors.New("missing sheet")

// row is one data line keyed by normalized header
type row map[string]string

// normalizeHeader lowercases and keeps only [a-z0-9], so "Supply Capacity",
// "supply_capacity" and "supplyCapacity" all map to "supplycapacity"
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasSheet(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// readSheet returns the data rows of a sheet. The first row is the header.
// Fully blank rows are skipped.
func readSheet(f *excelize.File, name string) ([]row, error) {
	if !hasSheet(f, name) {
		return nil, fmt.Errorf("%w: %q", ErrMissingSheet, name)
	}

	lines, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", name, err)
	}
	if len(lines) == 0 {
		return []row{}, nil
	}

	headers := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		headers[i] = normalizeHeader(h)
	}

	rows := make([]row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		r := row{}
		blank := true
		for i, cell := range line {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				blank = false
			}
			r[headers[i]] = cell
		}
		if !blank {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (r row) str(key string) string {
	return r[key]
}

// num parses a numeric cell. Blank, unparsable and zero cells yield fallback.
func (r row) num(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(r[key], ",", ""), 64)
	if err != nil || v == 0 {
		return fallback
	}
	return v
}

// list splits a comma separated cell, dropping empty entries
func (r row) list(key string) []string {
	out := []string{}
	for _, part := range strings.Split(r[key], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
