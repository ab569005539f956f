package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// These run with an empty environment on purpose: the domain packages that
// import this one must never need a secret or a database to test.

func TestBasePDFOutputDir(t *testing.T) {
	t.Setenv("PDF_OUTPUT_DIR", "")
	assert.Equal(t, "generated_receipts", BasePDFOutputDir())

	t.Setenv("PDF_OUTPUT_DIR", "/srv/receipts")
	assert.Equal(t, "/srv/receipts", BasePDFOutputDir())
}

func TestAssetPathFallback(t *testing.T) {
	t.Setenv("RECEIPT_LOGO_PATH", "")
	assert.Equal(t, "assets/logo.png", LogoPath())

	t.Setenv("RECEIPT_LOGO_PATH", "/opt/assets/logo.png")
	assert.Equal(t, "/opt/assets/logo.png", LogoPath())
}
