// Package receipt lays out and writes the fixed-size donation receipt card.
package receipt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/lokesh-sivakumar/hope-trust/config"
)

// Data is one fully validated donation ready to print.
type Data struct {
	ReceiptNo string
	Date      string // dd-mm-yyyy, display format
	Name      string
	Amount    float64
	Address   string
	Pan       string
	OrgPan    string
	Purpose   string
}

// NewData fills in the fixed organization fields.
func NewData(receiptNo, date, name string, amount float64, address, pan string) Data {
	return Data{
		ReceiptNo: receiptNo,
		Date:      date,
		Name:      name,
		Amount:    amount,
		Address:   address,
		Pan:       pan,
		OrgPan:    config.OrgPan,
		Purpose:   config.DefaultPurpose,
	}
}

// Page geometry: a small landscape card, not a standard paper size.
const (
	pageW = 140.0 // mm
	pageH = 108.0 // mm

	xMargin = 8.0
	bandH   = pageH * 0.20 // header and footer bands
)

// Renderer draws receipt cards. All fields are optional asset paths; a
// missing image degrades to a drawn placeholder so rendering depends only
// on the record data.
type Renderer struct {
	LogoPath      string
	SignaturePath string
	QRCodePath    string
}

// NewRenderer picks up the deployment's asset paths.
func NewRenderer() *Renderer {
	return &Renderer{
		LogoPath:      config.LogoPath(),
		SignaturePath: config.SignaturePath(),
		QRCodePath:    config.QRCodePath(),
	}
}

// Render writes {outputDir}/{receiptNo}.pdf and returns its path. If the
// file already exists it is returned untouched: a prior attempt produced
// the artifact and regenerating it would race the recovery flow. The card
// is drawn into a temp file first and moved into place only on success, so
// an interrupted render never leaves a half-written PDF under the final
// name.
func (r *Renderer) Render(data Data, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	finalPath := filepath.Join(outputDir, data.ReceiptNo+".pdf")
	if _, err := os.Stat(finalPath); err == nil {
		return finalPath, nil
	}

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("tmp_%s_%d.pdf", data.ReceiptNo, os.Getpid()))

	if err := r.draw(data, tempPath); err != nil {
		os.Remove(tempPath)
		return "", err
	}

	if err := moveFile(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("move receipt into place: %w", err)
	}

	return finalPath, nil
}

func (r *Renderer) draw(data Data, path string) error {
	// Empty fields fall back to the receipt-book placeholders.
	name := data.Name
	if name == "" {
		name = "Donor"
	}
	address := data.Address
	if address == "" {
		address = config.DefaultAddress
	}
	pan := data.Pan
	if pan == "" {
		pan = config.DefaultPan
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(xMargin, 0, xMargin)
	pdf.AddPage()

	contentW := pageW - 2*xMargin

	// Band backgrounds
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, pageW, pageH, "F")
	pdf.SetFillColor(176, 176, 176)
	pdf.Rect(0, 0, pageW, bandH, "F")
	pdf.Rect(0, pageH-bandH, pageW, bandH, "F")

	// === HEADER ===
	sec1W := contentW * 0.20
	sec2W := contentW * 0.60
	sec2X := xMargin + sec1W
	sec3X := sec2X + sec2W

	logoSize := 16.0
	r.drawImage(pdf, r.LogoPath, xMargin+(sec1W-logoSize)/2, (bandH-logoSize)/2, logoSize, logoSize, "LOGO")

	pdf.SetFont("Arial", "B", 28)
	pdf.SetTextColor(44, 44, 44)
	pdf.SetXY(sec2X, bandH/2-8)
	pdf.CellFormat(sec2W, 10, config.OrgName, "", 0, "C", false, 0, "")

	pdf.SetFont("Arial", "", 5)
	pdf.SetTextColor(96, 96, 96)
	pdf.SetXY(sec2X, bandH/2+2.5)
	pdf.CellFormat(sec2W, 3, config.OrgRecognition, "", 0, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 6)
	pdf.SetTextColor(44, 44, 44)
	pdf.SetXY(sec2X, bandH/2+5.5)
	pdf.CellFormat(sec2W, 3, config.OrgRegistration, "", 0, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(96, 96, 96)
	pdf.SetXY(sec3X, bandH/2-5)
	pdf.CellFormat(sec1W, 4, "RECEIPT NO:", "", 0, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(224, 82, 82)
	pdf.SetXY(sec3X, bandH/2)
	pdf.CellFormat(sec1W, 5, strings.ToUpper(data.ReceiptNo), "", 0, "C", false, 0, "")

	pdf.SetDrawColor(208, 208, 208)
	pdf.SetLineWidth(0.5)
	pdf.Line(xMargin, bandH, pageW-xMargin, bandH)

	// === MAIN CONTENT ===
	y := bandH + 7
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(46, 125, 50)
	pdf.SetXY(xMargin, y)
	pdf.CellFormat(contentW, 5, "DONATION RECEIPT", "", 0, "C", false, 0, "")

	y += 8
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(224, 82, 82)
	pdf.SetXY(xMargin, y)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("DEAR, %s!", strings.ToUpper(name)), "", 0, "L", false, 0, "")

	y += 6
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(96, 96, 96)
	pdf.SetXY(xMargin, y)
	pdf.CellFormat(contentW, 4, "WE SINCERELY APPRECIATE YOUR CONTRIBUTION FOR OUR MISSION.", "", 0, "L", false, 0, "")

	y += 10
	col1X := xMargin
	col2X := xMargin + contentW/2
	lineH := 6.0

	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(44, 44, 44)
	pdf.Text(col1X, y, "DONOR DETAILS")
	pdf.Text(col2X, y, "RECEIPT DETAILS")
	y += lineH

	r.detailRow(pdf, col1X, y, "ADDRESS", strings.ToUpper(address))
	r.detailRow(pdf, col2X, y, "RECEIPT NO", strings.ToUpper(data.ReceiptNo))
	y += lineH

	r.detailRow(pdf, col1X, y, "PAN", strings.ToUpper(pan))
	r.detailRow(pdf, col2X, y, "PAYMENT DATE", strings.ToUpper(data.Date))
	y += lineH

	r.detailRow(pdf, col1X, y, "PURPOSE", strings.ToUpper(data.Purpose))
	y += lineH

	r.detailRow(pdf, col1X, y, "AMOUNT", fmt.Sprintf("RS. %.2f", data.Amount))
	y += lineH

	// Whole rupees only; paise are not spelled out on the printed card.
	words := fmt.Sprintf("%s RUPEES ONLY.", strings.ToUpper(AmountInWords(int64(data.Amount))))
	r.detailRow(pdf, col1X, y, "IN WORDS", words)
	y += lineH

	pdf.Line(xMargin, y, pageW-xMargin, y)

	// === FOOTER ===
	footerTop := pageH - bandH
	sigW, sigH := 30.0, bandH-8
	r.drawImage(pdf, r.SignaturePath, xMargin, footerTop+2, sigW, sigH, "SIGN")
	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(96, 96, 96)
	pdf.SetXY(xMargin, footerTop+2+sigH)
	pdf.CellFormat(sigW, 3, "AUTHORISED SIGNATORY", "", 0, "C", false, 0, "")

	qrSize := bandH - 8
	qrX := pageW - xMargin - qrSize
	r.drawImage(pdf, r.QRCodePath, qrX, footerTop+2, qrSize, qrSize, "QR")
	pdf.SetXY(qrX, footerTop+2+qrSize)
	pdf.CellFormat(qrSize, 3, "SCAN ME", "", 0, "C", false, 0, "")

	textX := xMargin + sigW + 4
	textW := qrX - textX - 4
	pdf.SetXY(textX, footerTop+4)
	pdf.SetFont("Arial", "", 7)
	pdf.MultiCell(textW, 3.2, "THIS IS A COMPUTER-GENERATED RECEIPT.", "", "C", false)
	pdf.SetX(textX)
	pdf.SetFont("Arial", "B", 7)
	pdf.SetTextColor(44, 44, 44)
	pdf.MultiCell(textW, 3.2, fmt.Sprintf("ORG PAN: %s", strings.ToUpper(data.OrgPan)), "", "C", false)
	pdf.SetX(textX)
	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(96, 96, 96)
	pdf.MultiCell(textW, 3.2, "ALL DONATIONS ARE ELIGIBLE FOR TAX EXEMPTION UNDER SECTION 80G.", "", "C", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("render %s: %w", data.ReceiptNo, err)
	}

	return nil
}

func (r *Renderer) detailRow(pdf *gofpdf.Fpdf, x, y float64, label, value string) {
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(96, 96, 96)
	pdf.Text(x, y, label)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(44, 44, 44)
	pdf.Text(x+25, y, ":  "+value)
}

// drawImage places the asset if it exists, otherwise a bordered placeholder
// with the given caption.
func (r *Renderer) drawImage(pdf *gofpdf.Fpdf, path string, x, y, w, h float64, caption string) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			pdf.ImageOptions(path, x, y, w, h, false, gofpdf.ImageOptions{}, 0, "")
			return
		}
	}

	pdf.SetDrawColor(208, 208, 208)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "D")
	pdf.SetFont("Arial", "", 6)
	pdf.SetTextColor(96, 96, 96)
	pdf.SetXY(x, y+h/2-1.5)
	pdf.CellFormat(w, 3, caption, "", 0, "C", false, 0, "")
}

// moveFile renames src to dst, falling back to copy+remove when the temp
// dir sits on a different filesystem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Remove(src)
}
