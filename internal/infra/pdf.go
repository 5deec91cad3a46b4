package infra

// pdf.go — internal PDF generation using go-pdf/fpdf.
// Two documents are produced here:
//   - the work-order receipt handed to the client at pickup
//   - the payroll receipt for a paid mechanic settlement
//
// Output files are saved under storagePath.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrdenPDF renders a closed work order as an A5 receipt. Returns the
// absolute path to the generated file.
func GenerateOrdenPDF(orden *model.OrdenTrabajo, tallerNombre, tallerTelefono, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orden_%d.pdf", orden.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tallerNombre, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Tel: "+tallerTelefono, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Orden de trabajo N° %d", orden.Numero), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Fecha: "+orden.Fecha.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if orden.Cliente != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+orden.Cliente.Nombre, "", 1, "L", false, 0, "")
	}
	if orden.Vehiculo != nil {
		pdf.CellFormat(contentW, 5,
			fmt.Sprintf("Vehículo: %s %s (%s)", orden.Vehiculo.Marca, orden.Vehiculo.Modelo, orden.Vehiculo.Placa),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.55
	col2 := contentW * 0.15
	col3 := contentW * 0.30

	// ── Service lines ────────────────────────────────────────────────────────
	if len(orden.Servicios) > 0 {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col1, 5, "Servicio", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, d := range orden.Servicios {
			nombre := ""
			if d.Servicio != nil {
				nombre = d.Servicio.Nombre
			}
			pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 5, "$"+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	// ── Consumption lines ────────────────────────────────────────────────────
	if len(orden.Insumos) > 0 {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col1, 5, "Insumo", "B", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, d := range orden.Insumos {
			nombre := ""
			if d.Item != nil {
				nombre = d.Item.Nombre
			}
			pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, "x"+d.Cantidad.StringFixed(0), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 5, "$"+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+orden.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write orden: %w", err)
	}
	return filePath, nil
}

// GenerateNominaPDF renders the payroll receipt for a paid settlement.
func GenerateNominaPDF(liq *model.Liquidacion, tallerNombre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("nomina_%s.pdf", liq.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tallerNombre, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Recibo de nómina", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8)
	if liq.Mecanico != nil {
		pdf.CellFormat(contentW, 5, "Técnico: "+liq.Mecanico.NombreCompleto(), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5,
		fmt.Sprintf("Período: %s a %s (%s)",
			liq.FechaInicio.Format("02/01/2006"), liq.FechaFin.Format("02/01/2006"), liq.Frecuencia),
		"", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.40
	col2 := contentW * 0.30
	col3 := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Orden", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Base", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 5, "Comisión", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	for _, d := range liq.Detalles {
		pdf.CellFormat(col1, 5, d.OrdenID.String()[:8], "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, "$"+d.BaseCalculo.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+d.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2, 6, "TOTAL A PAGAR:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+liq.TotalPagado.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write nomina: %w", err)
	}
	return filePath, nil
}
