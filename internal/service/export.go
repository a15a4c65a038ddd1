package service

import (
	"EmployeeManager/internal/model"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExportColumns — заголовок выгрузки; порядок совпадает с exportRow.
var ExportColumns = []string{
	"Employee ID", "Name", "Age", "Department", "Salary",
	"Hire Date", "Status", "Skills", "Created At", "Updated At",
}

const exportSheet = "Employees"

// ExportFileName возвращает имя файла выгрузки вида employees_export_YYYYMMDD_HHMMSS.<ext>.
func ExportFileName(now time.Time, ext string) string {
	return fmt.Sprintf("employees_export_%s.%s", now.UTC().Format("20060102_150405"), ext)
}

func exportRow(e model.Employee) []string {
	salary := ""
	if e.Salary != nil {
		salary = strconv.Itoa(*e.Salary)
	}
	hireDate := ""
	if e.HireDate != nil {
		hireDate = *e.HireDate
	}
	return []string{
		e.EmployeeID,
		e.Name,
		strconv.Itoa(e.Age),
		e.Department,
		salary,
		hireDate,
		e.Status,
		strings.Join(e.Skills, ", "),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteCSV пишет заголовок и по строке на сотрудника. Заголовок пишется и для пустого списка.
func WriteCSV(w io.Writer, employees []model.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, e := range employees {
		if err := cw.Write(exportRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX пишет те же колонки листом Excel.
func WriteXLSX(w io.Writer, employees []model.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	header := make([]any, len(ExportColumns))
	for i, c := range ExportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(ExportColumns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		return err
	}

	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := xlsxRow(e)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// xlsxRow — как exportRow, но числа остаются числами.
func xlsxRow(e model.Employee) []any {
	cols := exportRow(e)
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	row[2] = e.Age
	if e.Salary != nil {
		row[4] = *e.Salary
	}
	return row
}
