package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/digipos/sellthru-api/internal/domain/entity"
)

// minSNLength: serial numbers at or below this length are treated as noise
// and the row is discarded. Known data-quality tolerance carried over from
// production uploads; legitimately short serials would be dropped too.
const minSNLength = 5

// itemExpiryDays: default expiry horizon for freshly ingested stock.
const itemExpiryDays = 30

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
}

// cleanField strips surrounding whitespace and one pair of surrounding
// double- or single-quotes from a raw field.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return strings.TrimSpace(s)
}

// digitsOnly keeps the decimal digits of s, dropping currency symbols,
// separators and whatever else upload files carry in amount columns.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseAmount strips non-digits and parses the rest. ok is false when no
// digits remain.
func parseAmount(s string) (int64, bool) {
	d := digitsOnly(s)
	if d == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// valueAt returns the cleaned field at idx, or "" when the row is short.
func valueAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return cleanField(fields[idx])
}

// value looks a field up by name only.
func (c columnMap) value(fields []string, name string) string {
	idx, ok := c[name]
	if !ok {
		return ""
	}
	return valueAt(fields, idx)
}

// valueOrPos looks a field up by name, then by the kind's fixed positional
// index. Transaction kinds use this for every field: an absent named column
// falls back to its documented position instead of a placeholder.
func (c columnMap) valueOrPos(fields []string, name string, kind Kind) string {
	if idx, ok := c[name]; ok {
		return valueAt(fields, idx)
	}
	return valueAt(fields, positionalIndex(kind, name))
}

// normalizeItem turns one tokenized row into an inventory item. Rows without
// a usable serial number are discarded; every other missing field gets its
// fixed placeholder. Surrogate id and timestamps are assigned at persist time.
func normalizeItem(fields []string, cols columnMap, now time.Time) (entity.InventoryItem, bool) {
	sn := cols.value(fields, fSN)
	if len(sn) <= minSNLength {
		return entity.InventoryItem{}, false
	}
	return entity.InventoryItem{
		SNNumber:       sn,
		Flag:           defaultStr(cols.value(fields, fFlag), "-"),
		ProductName:    defaultStr(cols.value(fields, fProduct), "Unknown"),
		SubCategory:    defaultStr(cols.value(fields, fSubCategory), "General"),
		Warehouse:      defaultStr(cols.value(fields, fWarehouse), "Gudang Utama"),
		SalesforceName: defaultStr(cols.value(fields, fSalesforce), "-"),
		TapArea:        defaultStr(cols.value(fields, fTap), "-"),
		ReferenceNo:    defaultStr(cols.value(fields, fReference), "-"),
		Status:         entity.StatusReady,
		Price:          decimal.Zero,
		ExpiryDate:     now.AddDate(0, 0, itemExpiryDays),
	}, true
}

// normalizeSellthru turns one row into a sellthru patch. The price keeps only
// its digits (empty result becomes 0); a missing or unparseable date defaults
// to the ingestion date.
func normalizeSellthru(fields []string, cols columnMap, now time.Time) (entity.SellthruUpdate, bool) {
	sn := cols.value(fields, fSN)
	if sn == "" {
		return entity.SellthruUpdate{}, false
	}
	price, _ := parseAmount(cols.value(fields, fPrice))
	saleDate := now
	if t, ok := parseDate(cols.value(fields, fDate)); ok {
		saleDate = t
	}
	return entity.SellthruUpdate{
		SNNumber:      sn,
		SaleDate:      saleDate,
		OutletID:      cols.value(fields, fOutletID),
		OutletName:    cols.value(fields, fOutletName),
		Price:         decimal.NewFromInt(price),
		TransactionID: cols.value(fields, fTransactionID),
	}, true
}

// normalizeTransaction turns one row into a topup/bucket transaction. The
// row is discarded when the amount has no digits left after stripping.
func normalizeTransaction(fields []string, cols columnMap, kind Kind, now time.Time) (entity.Transaction, bool) {
	amount, ok := parseAmount(cols.valueOrPos(fields, fAmount, kind))
	if !ok {
		return entity.Transaction{}, false
	}
	date := now
	if t, parsed := parseDate(cols.valueOrPos(fields, fDate, kind)); parsed {
		date = t
	}
	return entity.Transaction{
		Date:       date,
		Sender:     cols.valueOrPos(fields, fSender, kind),
		Receiver:   cols.valueOrPos(fields, fReceiver, kind),
		Type:       cols.valueOrPos(fields, fType, kind),
		Amount:     decimal.NewFromInt(amount),
		Currency:   cols.valueOrPos(fields, fCurrency, kind),
		Remarks:    cols.valueOrPos(fields, fRemarks, kind),
		Salesforce: cols.valueOrPos(fields, fSalesforce, kind),
		Tap:        cols.valueOrPos(fields, fTap, kind),
		OutletID:   cols.valueOrPos(fields, fOutletID, kind),
		OutletName: cols.valueOrPos(fields, fOutletName, kind),
	}, true
}

// normalizeDistribution turns one row into an Adisti distribution record.
func normalizeDistribution(fields []string, cols columnMap, now time.Time) (entity.DistributionRecord, bool) {
	sn := cols.value(fields, fSN)
	if len(sn) <= minSNLength {
		return entity.DistributionRecord{}, false
	}
	created := now
	if t, ok := parseDate(cols.value(fields, fCreatedDate)); ok {
		created = t
	}
	return entity.DistributionRecord{
		CreatedDate:    created,
		SNNumber:       sn,
		Warehouse:      defaultStr(cols.value(fields, fWarehouse), "-"),
		ProductName:    defaultStr(cols.value(fields, fProduct), "-"),
		SalesforceName: defaultStr(cols.value(fields, fSalesforce), "-"),
		ReferenceNo:    defaultStr(cols.value(fields, fReference), "-"),
		OutletID:       defaultStr(cols.value(fields, fOutletID), "-"),
		OutletName:     defaultStr(cols.value(fields, fOutletName), "-"),
		TapArea:        defaultStr(cols.value(fields, fTap), "-"),
	}, true
}
