package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// Result is the outcome of one ingestion: the typed records in source order,
// the delimiter the whole file was parsed with, and the diagnostic warnings
// accumulated across detection attempts. Only one record slice is populated,
// matching Kind.
type Result struct {
	Kind      Kind
	Delimiter rune
	Warnings  []string

	Items         []entity.InventoryItem
	Sellthru      []entity.SellthruUpdate
	Transactions  []entity.Transaction
	Distributions []entity.DistributionRecord
}

// Count returns the number of ingested records.
func (r *Result) Count() int {
	return len(r.Items) + len(r.Sellthru) + len(r.Transactions) + len(r.Distributions)
}

func (r *Result) reset() {
	r.Items = nil
	r.Sellthru = nil
	r.Transactions = nil
	r.Distributions = nil
}

// Ingest parses raw file text into typed records for the given kind.
func Ingest(text string, kind Kind) (*Result, error) {
	return IngestAt(text, kind, time.Now())
}

// IngestAt is Ingest with an injected ingestion timestamp (defaults and
// expiry dates derive from it).
//
// Delimiters are tried in priority order and the first one yielding at least
// one valid row wins; for the distribution kind a blind positional pass with
// semicolon then comma runs after every named attempt failed. On failure the
// returned Result still carries the accumulated warnings for diagnosis.
func IngestAt(text string, kind Kind, now time.Time) (*Result, error) {
	res := &Result{Kind: kind}

	text = strings.TrimPrefix(text, "\uFEFF")
	lines := splitLines(text)
	if len(lines) == 0 {
		return res, domain.ErrEmptyInput
	}

	for _, d := range delimiters {
		n := res.attempt(lines, d, kind, now, false)
		res.Warnings = append(res.Warnings, fmt.Sprintf("delimiter %q: %d valid rows", string(d), n))
		if n > 0 {
			res.Delimiter = d
			return res, nil
		}
	}

	// Distribution files from Adisti exports sometimes carry headers no
	// synonym list recognizes at all; a blind pass assumes the fixed layout.
	if kind == KindDistribution {
		for _, d := range []rune{';', ','} {
			n := res.attempt(lines, d, kind, now, true)
			res.Warnings = append(res.Warnings, fmt.Sprintf("blind positional parse with %q: %d valid rows", string(d), n))
			if n > 0 {
				res.Delimiter = d
				return res, nil
			}
		}
	}

	return res, domain.ErrNoValidRows
}

// attempt parses every data row with one delimiter and returns how many rows
// normalized successfully. Row 0 is always the header, also in blind mode.
// A failed attempt leaves no records behind.
func (r *Result) attempt(lines []string, delim rune, kind Kind, now time.Time, blind bool) int {
	r.reset()

	var cols columnMap
	if blind {
		cols = positionalColumns(kind)
	} else {
		header := splitDelimited(lines[0], delim)
		// A delimiter that does not even split the header cannot be the
		// file's delimiter; without this check the positional fallback would
		// accept the first candidate on every single-column split.
		if len(header) < 2 {
			return 0
		}
		var fellBack bool
		cols, fellBack = mapColumns(header, kind)
		if fellBack {
			r.Warnings = append(r.Warnings, fmt.Sprintf("delimiter %q: %s column not found by name, using positional layout", string(delim), primaryField(kind)))
		}
	}

	count := 0
	for _, line := range lines[1:] {
		fields := splitDelimited(line, delim)
		if r.normalizeInto(fields, cols, kind, now) {
			count++
		}
	}
	if count == 0 {
		r.reset()
	}
	return count
}

// normalizeInto appends one normalized record to the kind's slice.
func (r *Result) normalizeInto(fields []string, cols columnMap, kind Kind, now time.Time) bool {
	switch kind {
	case KindItem:
		item, ok := normalizeItem(fields, cols, now)
		if ok {
			r.Items = append(r.Items, item)
		}
		return ok
	case KindSellthru:
		upd, ok := normalizeSellthru(fields, cols, now)
		if ok {
			r.Sellthru = append(r.Sellthru, upd)
		}
		return ok
	case KindTopup, KindBucket:
		trx, ok := normalizeTransaction(fields, cols, kind, now)
		if ok {
			r.Transactions = append(r.Transactions, trx)
		}
		return ok
	case KindDistribution:
		rec, ok := normalizeDistribution(fields, cols, now)
		if ok {
			r.Distributions = append(r.Distributions, rec)
		}
		return ok
	}
	return false
}

// splitLines splits on \r\n, \n or \r and drops blank lines entirely. A
// consequence: quoted fields with embedded newlines are not supported, the
// continuation ends up parsed as its own row or dropped.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
