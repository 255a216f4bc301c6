package ingest

import "strings"

// Canonical field names used by the column maps and positional layouts.
const (
	fSN            = "sn"
	fFlag          = "flag"
	fProduct       = "product"
	fSubCategory   = "sub_category"
	fWarehouse     = "warehouse"
	fSalesforce    = "salesforce"
	fTap           = "tap"
	fReference     = "reference"
	fDate          = "date"
	fOutletID      = "outlet_id"
	fOutletName    = "outlet_name"
	fPrice         = "price"
	fTransactionID = "transaction_id"
	fSender        = "sender"
	fReceiver      = "receiver"
	fType          = "type"
	fAmount        = "amount"
	fCurrency      = "currency"
	fRemarks       = "remarks"
	fCreatedDate   = "created_date"
)

// Candidate delimiters in fixed priority order. The first one that yields at
// least one valid normalized row wins, even if a later one would yield more.
var delimiters = []rune{';', ',', '\t', '|'}

// Header synonyms per field, in normalized form (lower-cased, underscores
// stripped). Grown from the header variants seen in uploads from the field.
var synonyms = map[string][]string{
	fSN:            {"sn", "snnumber", "nosn", "notrsn", "serialnumber", "serial"},
	fFlag:          {"flag", "flags", "flagproduct"},
	fProduct:       {"product", "productname", "namaproduct", "produk"},
	fSubCategory:   {"subcategory", "subcat", "category", "kategori"},
	fWarehouse:     {"warehouse", "warehousename", "gudang"},
	fSalesforce:    {"salesforce", "salesforcename", "namasf", "sf"},
	fTap:           {"tap", "taparea", "area"},
	fReference:     {"reference", "referenceno", "refno", "noref"},
	fDate:          {"date", "saledate", "transdate", "tanggal", "tgl"},
	fOutletID:      {"outletid", "idoutlet", "iddigipos", "outletdigipos"},
	fOutletName:    {"outletname", "namaoutlet", "outlet"},
	fPrice:         {"price", "harga", "nominal"},
	fTransactionID: {"transactionid", "trxid", "idtransaksi", "notrx"},
	fSender:        {"sender", "pengirim", "from"},
	fReceiver:      {"receiver", "penerima", "to", "msisdn"},
	fType:          {"type", "trxtype", "jenis"},
	fAmount:        {"amount", "nominal", "jumlah", "harga"},
	fCurrency:      {"currency", "curr", "matauang"},
	fRemarks:       {"remarks", "remark", "keterangan", "note", "notes"},
	fCreatedDate:   {"createddate", "created", "date", "tanggal"},
}

// Fixed positional layouts per kind, used when the primary column cannot be
// found by name and during the blind distribution fallback.
var positionalLayout = map[Kind][]string{
	KindItem:         {fSN, fFlag, fProduct, fSubCategory, fWarehouse, fSalesforce, fTap, fReference},
	KindSellthru:     {fSN, fDate, fOutletID, fOutletName, fPrice, fTransactionID},
	KindTopup:        {fDate, fSender, fReceiver, fType, fAmount, fCurrency, fRemarks, fSalesforce, fTap, fOutletID, fOutletName},
	KindBucket:       {fDate, fSender, fReceiver, fType, fAmount, fCurrency, fRemarks, fSalesforce, fTap, fOutletID, fOutletName},
	KindDistribution: {fCreatedDate, fSN, fWarehouse, fProduct, fSalesforce, fReference, fOutletID, fOutletName, fTap},
}

// primaryField is the column a row must carry to count as valid: the amount
// for transaction kinds, the serial number for everything else.
func primaryField(kind Kind) string {
	if kind.IsTransaction() {
		return fAmount
	}
	return fSN
}

// columnMap maps canonical field names to column indexes for one file.
type columnMap map[string]int

// positionalColumns builds the fixed layout mapping for a kind.
func positionalColumns(kind Kind) columnMap {
	layout := positionalLayout[kind]
	cols := make(columnMap, len(layout))
	for i, f := range layout {
		cols[f] = i
	}
	return cols
}

// positionalIndex returns the fixed column index of a field within the kind's
// layout, or -1 if the layout does not carry it.
func positionalIndex(kind Kind, field string) int {
	for i, f := range positionalLayout[kind] {
		if f == field {
			return i
		}
	}
	return -1
}

// mapColumns matches header tokens against the synonym lists. When the
// primary column cannot be found by name the whole mapping falls back to the
// kind's positional layout; the second return reports that fallback.
func mapColumns(header []string, kind Kind) (columnMap, bool) {
	cols := make(columnMap)
	for i, tok := range header {
		norm := normalizeHeader(cleanField(tok))
		if norm == "" {
			continue
		}
		for _, field := range positionalLayout[kind] {
			if _, taken := cols[field]; taken {
				continue
			}
			if matchesSynonym(field, norm) {
				cols[field] = i
				break
			}
		}
	}
	if _, ok := cols[primaryField(kind)]; !ok {
		return positionalColumns(kind), true
	}
	return cols, false
}

func matchesSynonym(field, norm string) bool {
	for _, s := range synonyms[field] {
		if s == norm {
			return true
		}
	}
	return false
}

// normalizeHeader lower-cases a header token and strips underscores.
func normalizeHeader(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "")
}

// splitDelimited tokenizes one line with quote-aware splitting: a quoted
// field may contain the delimiter, and a doubled "" resolves to a literal ".
func splitDelimited(line string, delim rune) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				b.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == delim && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	fields = append(fields, b.String())
	return fields
}
