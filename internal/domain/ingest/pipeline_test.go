package ingest_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/ingest"
)

var testNow = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

func TestIngest_ItemSemicolonHappyPath(t *testing.T) {
	text := "sn_number;flag;product_name;sub_category;warehouse;salesforce_name;tap_area;reference_no\n" +
		"123456789;HVC;Widget;;;SF One;Tap A;REF1\n" +
		"987654321;REG;Orbit Modem;Modem;Gudang B;SF Two;Tap B;REF2\n"

	res, err := ingest.IngestAt(text, ingest.KindItem, testNow)
	require.NoError(t, err)

	assert.Equal(t, ';', int32(res.Delimiter))
	require.Len(t, res.Items, 2)

	first := res.Items[0]
	assert.Equal(t, "123456789", first.SNNumber)
	assert.Equal(t, "HVC", first.Flag)
	assert.Equal(t, "Widget", first.ProductName)
	assert.Equal(t, "General", first.SubCategory, "empty sub-category gets its placeholder")
	assert.Equal(t, "Gudang Utama", first.Warehouse, "empty warehouse gets its placeholder")
	assert.Equal(t, "SF One", first.SalesforceName)
	assert.Equal(t, "Tap A", first.TapArea)
	assert.Equal(t, testNow.AddDate(0, 0, 30), first.ExpiryDate)

	// First delimiter succeeded, so exactly one attempt was logged.
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, `delimiter ";": 2 valid rows`, res.Warnings[0])
}

func TestIngest_ShortSerialNumbersDiscarded(t *testing.T) {
	text := "sn;flag\n" +
		"123456789;HVC\n" +
		"12345;HVC\n" + // exactly the noise threshold, dropped
		";HVC\n"

	res, err := ingest.IngestAt(text, ingest.KindItem, testNow)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "123456789", res.Items[0].SNNumber)
}

func TestIngest_UnrecognizedHeadersFallBackToPositions(t *testing.T) {
	text := "a;b;c;d;e;f;g;h\n" +
		"869000111222;HVC;Orbit;Modem;Gudang A;SF One;Tap A;REF1\n"

	res, err := ingest.IngestAt(text, ingest.KindItem, testNow)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, "869000111222", item.SNNumber)
	assert.Equal(t, "Orbit", item.ProductName)
	assert.Equal(t, "Tap A", item.TapArea)

	require.Len(t, res.Warnings, 2)
	assert.Equal(t, `delimiter ";": sn column not found by name, using positional layout`, res.Warnings[0])
	assert.Equal(t, `delimiter ";": 1 valid rows`, res.Warnings[1])
}

func TestIngest_FirstSucceedingDelimiterWins(t *testing.T) {
	// Semicolon cannot split the header, so it fails; comma is tried next and
	// wins even though only one row parses under it.
	text := "sn,flag\n" +
		"123456789,HVC\n"

	res, err := ingest.IngestAt(text, ingest.KindSellthru, testNow)
	require.NoError(t, err)

	assert.Equal(t, ',', int32(res.Delimiter))
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, `delimiter ";": 0 valid rows`, res.Warnings[0])
	assert.Equal(t, `delimiter ",": 1 valid rows`, res.Warnings[1])
}

func TestIngest_EarlierDelimiterWinsOverBetterLaterOne(t *testing.T) {
	// Under comma only one row carries a usable serial number; under tab all
	// ten would (the tab tokens are long enough, the comma ones are not).
	// Comma sits earlier in the candidate order, so it wins with its single
	// row and tab is never tried.
	var b strings.Builder
	b.WriteString("sn,extra\tcol\n")
	b.WriteString("869000111000,x\t12345\n")
	for i := 1; i < 10; i++ {
		fmt.Fprintf(&b, "12345,x\t8690001110%02d\n", i)
	}

	res, err := ingest.IngestAt(b.String(), ingest.KindItem, testNow)
	require.NoError(t, err)

	assert.Equal(t, ',', int32(res.Delimiter))
	require.Len(t, res.Items, 1)
	assert.Equal(t, "869000111000", res.Items[0].SNNumber)
	assert.Contains(t, res.Warnings, `delimiter ",": 1 valid rows`)
}

func TestIngest_ShuffledColumnsMatchCanonicalOrder(t *testing.T) {
	canonical := "sn;date;outlet_id;outlet_name;price;transaction_id\n" +
		"869000111222;2024-05-01;OUT1;Toko Jaya;150000;TRX1\n"
	shuffled := "transaction_id;price;sn;date;outlet_id;outlet_name\n" +
		"TRX1;150000;869000111222;2024-05-01;OUT1;Toko Jaya\n"

	a, err := ingest.IngestAt(canonical, ingest.KindSellthru, testNow)
	require.NoError(t, err)
	b, err := ingest.IngestAt(shuffled, ingest.KindSellthru, testNow)
	require.NoError(t, err)

	assert.Equal(t, a.Sellthru, b.Sellthru, "column order must not change the parsed records")
}

func TestIngest_SellthruPriceAndDateDefaults(t *testing.T) {
	text := "sn;date;price\n" +
		"869000111222;2024-05-01;Rp 150.000\n" +
		"869000111223;;\n" +
		"869000111224;bad-date;abc\n"

	res, err := ingest.IngestAt(text, ingest.KindSellthru, testNow)
	require.NoError(t, err)
	require.Len(t, res.Sellthru, 3)

	assert.True(t, res.Sellthru[0].Price.Equal(decimal.NewFromInt(150000)), "currency noise is stripped")
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), res.Sellthru[0].SaleDate)

	assert.True(t, res.Sellthru[1].Price.IsZero(), "empty price becomes zero")
	assert.Equal(t, testNow, res.Sellthru[1].SaleDate, "missing date defaults to the ingestion date")

	assert.True(t, res.Sellthru[2].Price.IsZero(), "non-numeric price becomes zero")
	assert.Equal(t, testNow, res.Sellthru[2].SaleDate)
}

func TestIngest_QuotedFieldsKeepDelimiterAndEscapedQuotes(t *testing.T) {
	text := "sn;date;outlet_name\n" +
		"869000111222;2024-05-01;\"Toko \"\"Jaya\"\"; Pusat\"\n"

	res, err := ingest.IngestAt(text, ingest.KindSellthru, testNow)
	require.NoError(t, err)
	require.Len(t, res.Sellthru, 1)
	assert.Equal(t, `Toko "Jaya"; Pusat`, res.Sellthru[0].OutletName)
}

func TestIngest_TopupAmountRequiredAndPerFieldPositions(t *testing.T) {
	// Only the amount column is recognizable by name; the remaining fields
	// resolve through their fixed positions.
	text := "x1;x2;x3;x4;amount;x6;x7\n" +
		"2024-05-01;0811111;0822222;TOPUP;50.000;IDR;ok\n" +
		"2024-05-02;0811111;0822222;TOPUP;;IDR;no amount\n"

	res, err := ingest.IngestAt(text, ingest.KindTopup, testNow)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1, "rows without an amount are discarded")

	trx := res.Transactions[0]
	assert.True(t, trx.Amount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), trx.Date)
	assert.Equal(t, "0811111", trx.Sender)
	assert.Equal(t, "0822222", trx.Receiver)
	assert.Equal(t, "TOPUP", trx.Type)
	assert.Equal(t, "IDR", trx.Currency)
}

func TestIngest_DistributionBlindFallback(t *testing.T) {
	// The header carries no delimiter at all, so every named attempt fails and
	// the blind positional pass kicks in.
	text := "EXPORT_ADISTI_REPORT\n" +
		"2024-05-01;869123456789;Gudang A;Orbit;SF One;REF9;OUT1;Outlet Satu;TAP1\n"

	res, err := ingest.IngestAt(text, ingest.KindDistribution, testNow)
	require.NoError(t, err)

	assert.Equal(t, ';', int32(res.Delimiter))
	require.Len(t, res.Distributions, 1)
	rec := res.Distributions[0]
	assert.Equal(t, "869123456789", rec.SNNumber)
	assert.Equal(t, "Gudang A", rec.Warehouse)
	assert.Equal(t, "Orbit", rec.ProductName)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rec.CreatedDate)

	// Four named attempts plus the successful blind pass, in order.
	require.Len(t, res.Warnings, 5)
	assert.Equal(t, `delimiter ";": 0 valid rows`, res.Warnings[0])
	assert.Equal(t, `blind positional parse with ";": 1 valid rows`, res.Warnings[4])
}

func TestIngest_BlindFallbackOnlyForDistribution(t *testing.T) {
	text := "EXPORT\n" +
		"2024-05-01;869123456789;Gudang A\n"

	res, err := ingest.IngestAt(text, ingest.KindItem, testNow)
	require.ErrorIs(t, err, domain.ErrNoValidRows)
	assert.Len(t, res.Warnings, 4, "every delimiter attempt is reported")
	assert.Equal(t, 0, res.Count())
}

func TestIngest_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "\n\n", "  \n\t\n"} {
		res, err := ingest.IngestAt(text, ingest.KindItem, testNow)
		require.ErrorIs(t, err, domain.ErrEmptyInput)
		assert.Empty(t, res.Warnings)
	}
}

func TestIngest_HeaderOnlyIsNoValidRows(t *testing.T) {
	res, err := ingest.IngestAt("sn;flag;product\n", ingest.KindItem, testNow)
	require.ErrorIs(t, err, domain.ErrNoValidRows)
	assert.Len(t, res.Warnings, 4)
}

func TestIngest_ByteOrderMarkStripped(t *testing.T) {
	text := "\uFEFFsn;flag\n869000111222;HVC\n"

	res, err := ingest.IngestAt(text, ingest.KindItem, testNow)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "869000111222", res.Items[0].SNNumber, "the BOM must not poison the first header token")
}

func TestIngest_MixedLineEndingsAndBlankLines(t *testing.T) {
	text := "sn;flag\r\n869000111222;HVC\r\n\r\n869000111223;REG\r"

	res, err := ingest.IngestAt(text, ingest.KindItem, testNow)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
}

func TestIngest_SameInputSameOutput(t *testing.T) {
	text := "sn;date;price\n869000111222;2024-05-01;150000\n869000111223;;\n"

	a, err := ingest.IngestAt(text, ingest.KindSellthru, testNow)
	require.NoError(t, err)
	b, err := ingest.IngestAt(text, ingest.KindSellthru, testNow)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
