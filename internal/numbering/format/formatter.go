// Package format computes invoice numbers from rule templates.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Recognized template placeholders.
const (
	TokenClient   = "{nom_client}"
	TokenYear     = "{annee}"
	TokenMonth    = "{mois}"
	TokenSequence = "{numero}"
)

// Next formats the next invoice number for a rule template.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic
//
// lastSeq is the highest sequence already issued for the same client within
// the calendar year and month of ref, or nil when none exists. Each token is
// substituted at its first occurrence only; unrecognized tokens are left
// verbatim. The sequence is zero-padded to 3 digits but never truncated.
func Next(template string, ref time.Time, clientLabel string, lastSeq *int) string {
	seq := 1
	if lastSeq != nil {
		seq = *lastSeq + 1
	}

	out := template
	out = strings.Replace(out, TokenClient, clientLabel, 1)
	out = strings.Replace(out, TokenYear, ref.Format("2006"), 1)
	out = strings.Replace(out, TokenMonth, ref.Format("01"), 1)
	out = strings.Replace(out, TokenSequence, fmt.Sprintf("%03d", seq), 1)

	return out
}
