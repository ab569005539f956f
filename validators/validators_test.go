package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr error
	}{
		{name: "plain integer", raw: "500", want: 500},
		{name: "decimal", raw: "1250.50", want: 1250.50},
		{name: "explicit plus sign", raw: "+75", want: 75},
		{name: "surrounding whitespace", raw: " 300 ", want: 300},
		{name: "empty", raw: "", wantErr: ErrEmptyValue},
		{name: "whitespace only", raw: "   ", wantErr: ErrEmptyValue},
		{name: "not a number", raw: "five hundred", wantErr: ErrInvalidFormat},
		{name: "comma separated", raw: "1,500", wantErr: ErrInvalidFormat},
		{name: "zero", raw: "0", wantErr: ErrNotPositive},
		{name: "negative", raw: "-100", wantErr: ErrNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateAmount(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePan(t *testing.T) {
	// PAN is optional, so empty input is valid.
	assert.NoError(t, ValidatePan(""))
	assert.NoError(t, ValidatePan("   "))

	assert.NoError(t, ValidatePan("ABCDE1234F"))
	// Case is normalized before the check.
	assert.NoError(t, ValidatePan("abcde1234f"))

	assert.ErrorIs(t, ValidatePan("ABCDE1234"), ErrInvalidPanFormat)
	assert.ErrorIs(t, ValidatePan("ABCDE12345F"), ErrInvalidPanFormat)
	assert.ErrorIs(t, ValidatePan("1BCDE1234F"), ErrInvalidPanFormat)
	assert.ErrorIs(t, ValidatePan("ABCDE1234FX"), ErrInvalidPanFormat)
	assert.ErrorIs(t, ValidatePan("xxxxx1234x "+"junk"), ErrInvalidPanFormat)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Sathish Kumar.S"))
	// Dots, digits and parentheses are all legitimate in donor names.
	assert.NoError(t, ValidateName("Aravind.S(HT)"))

	assert.ErrorIs(t, ValidateName(""), ErrEmptyValue)
	assert.ErrorIs(t, ValidateName("   "), ErrEmptyValue)
}

func TestValidateDate(t *testing.T) {
	got, err := ValidateDate("29.02.24")
	require.NoError(t, err, "2024 is a leap year")
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), got)

	_, err = ValidateDate("31.04.25")
	assert.ErrorIs(t, err, ErrInvalidDateFormat, "April has 30 days")

	_, err = ValidateDate("")
	assert.ErrorIs(t, err, ErrEmptyValue)

	_, err = ValidateDate("2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	// Century pivot: 00-68 resolve to 20xx, 69-99 to 19xx.
	got, err = ValidateDate("01.01.68")
	require.NoError(t, err)
	assert.Equal(t, 2068, got.Year())

	got, err = ValidateDate("01.01.69")
	require.NoError(t, err)
	assert.Equal(t, 1969, got.Year())
}
