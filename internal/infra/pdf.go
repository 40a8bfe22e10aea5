package infra

// pdf.go: receipt rendering using go-pdf/fpdf.
// Generates narrow thermal-receipt tickets with:
//   - Store name header
//   - Sale id and timestamp
//   - Item table (product, warehouse, quantity, subtotal)
//   - Discount line (if applicable)
//   - Bold total and payment method
//   - Optional note

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pdv/internal/model"

	"github.com/go-pdf/fpdf"
)

// RenderReceipt writes a PDF receipt for sale to w.
func RenderReceipt(w io.Writer, sale *model.Sale, storeName string) error {
	// 74mm x 160mm, close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 160},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, tr(storeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, tr("Comprovante de venda"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW, 4, shortID(sale.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.Date.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := []rune(item.Name)
		if len(name) > 22 {
			name = append(name[:21], '.')
		}
		pdf.CellFormat(col1, 5, tr(string(name)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+item.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "I", 6)
		pdf.CellFormat(contentW, 3, tr(item.WarehouseName), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 7)
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	if !sale.Discount.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Subtotal:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "R$ "+sale.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2, 5, "Desconto:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-R$ "+sale.Discount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "R$ "+sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	if sale.PaymentMethod != "" {
		pdf.CellFormat(contentW, 4, tr("Pagamento: "+sale.PaymentMethod), "", 1, "L", false, 0, "")
	}
	if sale.Note != "" {
		pdf.MultiCell(contentW, 4, tr("Obs.: "+sale.Note), "", "L", false)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, tr("Obrigado pela preferência!"), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

// WriteReceiptFile renders the receipt into dir/receipt_<id>.pdf and returns the path.
func WriteReceiptFile(sale *model.Sale, storeName, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	var buf bytes.Buffer
	if err := RenderReceipt(&buf, sale, storeName); err != nil {
		return "", fmt.Errorf("pdf: render: %w", err)
	}
	path := filepath.Join(dir, "receipt_"+sale.ID+".pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return "Venda " + id[:8]
	}
	return "Venda " + id
}
