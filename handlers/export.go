package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/camden-git/policeportal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheetColumn struct {
	Header string
	Width  float64
}

// buildWorkbook renders one sheet with a styled, frozen header row.
func buildWorkbook(sheetName string, columns []sheetColumn, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, col.Width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWorkbook(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func userName(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Name
}

var caseColumns = []sheetColumn{
	{"Case Number", 18}, {"Title", 32}, {"Status", 14}, {"Priority", 12},
	{"Category", 14}, {"Location", 24}, {"Incident Date", 20},
	{"Assigned Officer", 22}, {"Created By", 22}, {"Evidence Files", 14}, {"Created At", 20},
}

func caseRows(cases []models.Case) [][]interface{} {
	rows := make([][]interface{}, 0, len(cases))
	for _, c := range cases {
		incident := ""
		if c.IncidentDate != nil {
			incident = c.IncidentDate.Format(time.DateTime)
		}
		rows = append(rows, []interface{}{
			c.CaseNumber, c.Title, string(c.Status), string(c.Priority),
			string(c.Category), deref(c.Location), incident,
			userName(c.AssignedOfficer), userName(c.Creator), len(c.EvidenceFiles),
			c.CreatedAt.Format(time.DateTime),
		})
	}
	return rows
}

var personnelColumns = []sheetColumn{
	{"Badge Number", 16}, {"Full Name", 26}, {"Email", 30}, {"Phone", 16},
	{"Rank", 14}, {"Department", 22}, {"Status", 12}, {"Hire Date", 14}, {"Documents", 12},
}

func personnelRows(people []models.Personnel) [][]interface{} {
	rows := make([][]interface{}, 0, len(people))
	for _, p := range people {
		rows = append(rows, []interface{}{
			p.BadgeNumber, p.FullName(), p.Email, deref(p.Phone),
			string(p.Rank), p.Department, string(p.Status),
			time.Time(p.HireDate).Format(time.DateOnly), len(p.Documents),
		})
	}
	return rows
}

// ExportCases handles GET /cases/export with the listing filters.
func (h *CaseHandler) ExportCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.Cases.ListAll(r.Context(), caseFilters(r.URL.Query()))
	if err != nil {
		writeError(w, h.Log, err, "Cases")
		return
	}
	data, err := buildWorkbook("Cases", caseColumns, caseRows(cases))
	if err != nil {
		writeError(w, h.Log, err, "Export")
		return
	}
	writeWorkbook(w, "cases-export.xlsx", data)
}

// ExportPersonnel handles GET /personnel/export with the listing filters.
func (h *PersonnelHandler) ExportPersonnel(w http.ResponseWriter, r *http.Request) {
	people, err := h.Personnel.ListAll(r.Context(), personnelFilters(r.URL.Query()))
	if err != nil {
		writeError(w, h.Log, err, "Personnel")
		return
	}
	data, err := buildWorkbook("Personnel", personnelColumns, personnelRows(people))
	if err != nil {
		writeError(w, h.Log, err, "Export")
		return
	}
	writeWorkbook(w, "personnel-export.xlsx", data)
}
