// Package config holds the fixed organization details and receipt-number
// markers shared by every entry surface. It is env-only on purpose: nothing
// here touches the databases or the JWT secret, so pure domain packages can
// import it freely.
package config

import "os"

// Fixed organization details printed on every receipt.
const (
	OrgName         = "HOPE TRUST"
	OrgPan          = "AAATH7141M"
	OrgRegistration = "REG. NO: 174/2017 | PH. NO: 7397271881"
	OrgRecognition  = "RECOGNIZED BY GOVT. OF TAMIL NADU"
	DefaultPurpose  = "Education"
)

// Placeholders substituted when a donor record arrives without the field.
const (
	DefaultAddress = "Tamil Nadu"
	DefaultPan     = "xxxxx1234x"
)

// Receipt number markers understood across the entry surfaces.
// Receipts from the physical book carry the R7- prefix, rows already judged
// duplicates by the data-entry team are marked DUM, and numbers allocated by
// the database contain ONL.
const (
	PhysicalReceiptPrefix = "R7-"
	DuplicateMarker       = "DUM"
	OnlineMarker          = "ONL"
)

// BasePDFOutputDir returns the directory under which per-session receipt
// directories are created.
func BasePDFOutputDir() string {
	if dir := os.Getenv("PDF_OUTPUT_DIR"); dir != "" {
		return dir
	}
	return "generated_receipts"
}

// AssetPath resolves an image or font shipped with the deployment. The
// renderer tolerates missing assets, so an unset variable is not fatal.
func AssetPath(envKey, fallback string) string {
	if p := os.Getenv(envKey); p != "" {
		return p
	}
	return fallback
}

func LogoPath() string      { return AssetPath("RECEIPT_LOGO_PATH", "assets/logo.png") }
func SignaturePath() string { return AssetPath("RECEIPT_SIGNATURE_PATH", "assets/signature.png") }
func QRCodePath() string    { return AssetPath("RECEIPT_QR_PATH", "assets/qr_code.png") }
