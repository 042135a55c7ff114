package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

const DefaultBillNumberTemplate = "INV-{SEQ5}"

// FormatBillNumber renders a bill number from template, the bill
// timestamp and its sequence. Supported tokens: {YYYY} {YY} {MM} {DD}
// {SEQ} and {SEQn} for a zero-padded sequence of width n.
func FormatBillNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", fmt.Errorf("bill number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid bill sequence: %d", seq)
	}

	out := strings.NewReplacer(
		"{YYYY}", issuedAt.Format("2006"),
		"{YY}", issuedAt.Format("06"),
		"{MM}", issuedAt.Format("01"),
		"{DD}", issuedAt.Format("02"),
		"{SEQ}", strconv.FormatInt(seq, 10),
	).Replace(template)

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in bill number format: %s", out)
	}
	return out, nil
}
