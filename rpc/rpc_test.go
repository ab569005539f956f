package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAllocation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AllocationResult
	}{
		{
			name: "fresh online number",
			raw:  "HT-ONL-1042",
			want: AllocationResult{Kind: Created, ReceiptNo: "HT-ONL-1042"},
		},
		{
			name: "duplicate without number (single mode)",
			raw:  "exists",
			want: AllocationResult{Kind: Duplicate},
		},
		{
			name: "duplicate with number (bulk mode)",
			raw:  "exists:HT-ONL-0881",
			want: AllocationResult{Kind: Duplicate, ReceiptNo: "HT-ONL-0881"},
		},
		{
			name: "surrounding whitespace",
			raw:  "  HT-ONL-7\n",
			want: AllocationResult{Kind: Created, ReceiptNo: "HT-ONL-7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAllocation(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAllocationUnrecognized(t *testing.T) {
	for _, raw := range []string{"", "ok", "HT-1042", "error: boom"} {
		_, err := ParseAllocation(raw)
		require.Error(t, err, "raw %q", raw)

		var unrec *UnrecognizedResponseError
		require.ErrorAs(t, err, &unrec)
		// The verbatim payload must survive for operator diagnosis.
		assert.Equal(t, raw, unrec.Raw)
	}
}
