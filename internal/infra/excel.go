package infra

import (
	"fmt"
	"io"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/xuri/excelize/v2"
)

// WriteMovimientosXLSX streams the cash ledger as an xlsx workbook, one row
// per posting, for download from the reports endpoint.
func WriteMovimientosXLSX(w io.Writer, movimientos []model.MovimientoCaja) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Movimientos"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Fecha", "Tipo", "Concepto", "Monto", "Usuario"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, m := range movimientos {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), m.CreatedAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), m.Tipo)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), m.Concepto)
		monto, _ := m.Monto.Float64()
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), monto)
		if m.Usuario != nil {
			f.SetCellValue(sheet, "E"+fmt.Sprint(row), *m.Usuario)
		}
	}

	return f.Write(w)
}

// WriteOrdenesXLSX streams a work-order listing with its financials.
func WriteOrdenesXLSX(w io.Writer, ordenes []model.OrdenTrabajo) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ordenes"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Numero", "Fecha", "Estado", "Cliente", "Placa", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, o := range ordenes {
		row := i + 2
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), o.Numero)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), o.Fecha.Format("2006-01-02"))
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), o.Estado)
		if o.Cliente != nil {
			f.SetCellValue(sheet, "D"+fmt.Sprint(row), o.Cliente.Nombre)
		}
		if o.Vehiculo != nil {
			f.SetCellValue(sheet, "E"+fmt.Sprint(row), o.Vehiculo.Placa)
		}
		total, _ := o.Total.Float64()
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), total)
	}

	return f.Write(w)
}
