// Package export renders contact and member lists as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"tagcrm/pkg/domain"
)

// Column describes one exported column.
type Column[T any] struct {
	Header string
	Width  float64
	Value  func(T) any
}

// ContactColumns are written by Contacts. BusinessName must already be
// resolved.
var ContactColumns = []Column[domain.Contact]{
	{"Id", 8, func(c domain.Contact) any { return c.ID }},
	{"Name", 28, func(c domain.Contact) any { return c.DisplayName() }},
	{"Business", 32, func(c domain.Contact) any { return c.BusinessName }},
	{"Member Id", 12, func(c domain.Contact) any { return c.MemberID }},
	{"Email", 30, func(c domain.Contact) any { return c.Email }},
	{"Phone", 18, func(c domain.Contact) any { return c.Phone }},
	{"Job Role", 20, func(c domain.Contact) any { return c.JobRole }},
	{"Active", 8, func(c domain.Contact) any { return yesNo(c.Active) }},
	{"Subscribed", 12, func(c domain.Contact) any { return yesNo(c.EmailSubscribed) }},
}

// MemberColumns are written by Members.
var MemberColumns = []Column[domain.Member]{
	{"Id", 8, func(m domain.Member) any { return m.ID }},
	{"Member Id", 14, func(m domain.Member) any { return m.MemberID }},
	{"Business Name", 32, func(m domain.Member) any { return m.BusinessName }},
	{"Legal Name", 32, func(m domain.Member) any { return m.LegalName }},
	{"ABN", 16, func(m domain.Member) any { return m.ABN }},
	{"Email", 30, func(m domain.Member) any { return m.Email }},
	{"Phone", 18, func(m domain.Member) any { return m.Phone }},
	{"City", 18, func(m domain.Member) any { return m.BusinessCity }},
	{"State", 8, func(m domain.Member) any { return m.BusinessState }},
	{"Regions", 14, func(m domain.Member) any { return joinInts(m.Regions) }},
	{"Membership End", 16, func(m domain.Member) any { return m.MembershipEnd }},
	{"Active", 8, func(m domain.Member) any { return yesNo(m.Active) }},
}

// Contacts renders rows on a "Contacts" sheet.
func Contacts(rows []domain.Contact) ([]byte, error) {
	return Workbook("Contacts", ContactColumns, rows)
}

// Members renders rows on a "Members" sheet.
func Members(rows []domain.Member) ([]byte, error) {
	return Workbook("Members", MemberColumns, rows)
}

// Workbook renders rows as a single-sheet workbook with a bold, frozen
// header row.
func Workbook[T any](sheet string, cols []Column[T], rows []T) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if c.Width > 0 {
			if err := f.SetColWidth(sheet, name, name, c.Width); err != nil {
				return nil, fmt.Errorf("column width: %w", err)
			}
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("header row: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for r, row := range rows {
		values := make([]any, len(cols))
		for i, c := range cols {
			values[i] = c.Value(row)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("row %d: %w", r+2, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func joinInts(v []int) string {
	var b bytes.Buffer
	for i, n := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
