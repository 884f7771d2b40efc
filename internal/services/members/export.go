package members

import (
	"context"
	"fmt"
	"strings"

	"github.com/asbbic/membership/internal/repository"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const (
	exportDateFormat     = "2006-01-02"
	exportDateTimeFormat = "2006-01-02 15:04:05"

	xlsxSheetName = "Members"
)

var exportHeader = []string{
	"Member ID", "Full Name", "Email", "Phone", "ID Number",
	"Activity", "Birth Date", "Birth Place", "Status", "Created At",
}

func exportRow(row repository.Member) []string {
	birthDate := ""
	if row.BirthDate.Valid {
		birthDate = row.BirthDate.Time.Format(exportDateFormat)
	}

	return []string{
		row.MemberID,
		row.FullName,
		row.Email,
		row.Phone,
		row.IDNumber,
		row.Activity,
		birthDate,
		row.BirthPlace,
		row.Status,
		row.CreatedAt.Format(exportDateTimeFormat),
	}
}

// ExportCSV dumps the whole collection, newest first. Every field is
// quoted with internal quotes doubled, including the header row.
func (m *Member) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := m.MemberRepository.List(ctx, repository.MemberRepositoryFilter{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for export: %w", err)
	}

	var sb strings.Builder
	writeCSVRow(&sb, exportHeader)
	for _, row := range rows {
		writeCSVRow(&sb, exportRow(row))
	}

	m.Metrics.IncExport("csv")
	return []byte(sb.String()), nil
}

func writeCSVRow(sb *strings.Builder, fields []string) {
	quoted := lo.Map(fields, func(field string, _ int) string {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	})
	sb.WriteString(strings.Join(quoted, ","))
	sb.WriteString("\n")
}

// ExportXLSX writes the same projection as a spreadsheet with a styled
// header row.
func (m *Member) ExportXLSX(ctx context.Context) ([]byte, error) {
	rows, err := m.MemberRepository.List(ctx, repository.MemberRepositoryFilter{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(xlsxSheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range exportRow(row) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %w", err)
	}

	m.Metrics.IncExport("xlsx")
	return buf.Bytes(), nil
}
