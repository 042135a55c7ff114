package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBillNumber(t *testing.T) {
	issued := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		template string
		seq      int64
		want     string
	}{
		{DefaultBillNumberTemplate, 1000, "INV-01000"},
		{DefaultBillNumberTemplate, 123456, "INV-123456"},
		{"{YYYY}{MM}{DD}-{SEQ}", 7, "20240309-7"},
		{"B/{YY}/{SEQ3}", 42, "B/24/042"},
	}
	for _, tc := range cases {
		got, err := FormatBillNumber(tc.template, issued, tc.seq)
		require.NoError(t, err, tc.template)
		assert.Equal(t, tc.want, got)
	}
}

func TestFormatBillNumberRejectsBadInput(t *testing.T) {
	now := time.Now()

	_, err := FormatBillNumber("", now, 1)
	assert.Error(t, err)

	_, err = FormatBillNumber("INV-{SEQ}", now, 0)
	assert.Error(t, err)

	_, err = FormatBillNumber("INV-{SEQ}-{BRANCH}", now, 1)
	assert.Error(t, err)
}
