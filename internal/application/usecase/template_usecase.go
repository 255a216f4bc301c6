package usecase

import (
	"strings"

	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/ingest"
)

// CSV upload templates: one fixed header line and one example row per kind,
// offered as a downloadable file so the field teams fill the right columns.
var templates = map[ingest.Kind]struct {
	header  []string
	example []string
}{
	ingest.KindItem: {
		header:  []string{"sn_number", "flag", "product_name", "sub_category", "warehouse", "salesforce", "tap", "reference_no"},
		example: []string{"8962100000001", "HVC", "Perdana 10K", "General", "Gudang Utama", "SF Jaya", "TAP-01", "REF-001"},
	},
	ingest.KindSellthru: {
		header:  []string{"sn_number", "sale_date", "outlet_id", "outlet_name", "price", "transaction_id"},
		example: []string{"8962100000001", "2024-01-31", "OUT-001", "Counter Maju", "12000", "TRX-0001"},
	},
	ingest.KindTopup: {
		header:  []string{"date", "sender", "receiver", "type", "amount", "currency", "remarks", "salesforce", "tap", "outlet_id", "outlet_name"},
		example: []string{"2024-01-31", "628110000001", "628110000002", "TOPUP", "100000", "IDR", "-", "SF Jaya", "TAP-01", "OUT-001", "Counter Maju"},
	},
	ingest.KindBucket: {
		header:  []string{"date", "sender", "receiver", "type", "amount", "currency", "remarks", "salesforce", "tap", "outlet_id", "outlet_name"},
		example: []string{"2024-01-31", "628110000001", "628110000002", "BUCKET", "50000", "IDR", "-", "SF Jaya", "TAP-01", "OUT-001", "Counter Maju"},
	},
	ingest.KindDistribution: {
		header:  []string{"created_date", "sn_number", "warehouse", "product_name", "salesforce", "reference_no", "outlet_id", "outlet_name", "tap"},
		example: []string{"2024-01-31", "8962100000001", "Gudang Utama", "Perdana 10K", "SF Jaya", "REF-001", "OUT-001", "Counter Maju", "TAP-01"},
	},
}

const templateDelimiter = ";"

// TemplateUseCase builds the downloadable upload templates.
type TemplateUseCase struct{}

// NewTemplateUseCase builds the use case.
func NewTemplateUseCase() *TemplateUseCase {
	return &TemplateUseCase{}
}

// Build returns the template file name and content for a kind.
func (uc *TemplateUseCase) Build(kind ingest.Kind) (filename, content string, err error) {
	t, ok := templates[kind]
	if !ok {
		return "", "", domain.ErrInvalidInput
	}
	content = strings.Join(t.header, templateDelimiter) + "\n" + strings.Join(t.example, templateDelimiter) + "\n"
	return "template_" + string(kind) + ".csv", content, nil
}
