package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digipos/sellthru-api/internal/application/usecase"
	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/internal/domain/ingest"
)

func TestTemplateBuild_EveryKindHasATemplate(t *testing.T) {
	uc := usecase.NewTemplateUseCase()

	kinds := []ingest.Kind{
		ingest.KindItem,
		ingest.KindSellthru,
		ingest.KindTopup,
		ingest.KindBucket,
		ingest.KindDistribution,
	}
	for _, kind := range kinds {
		filename, content, err := uc.Build(kind)
		require.NoError(t, err, "kind %s", kind)

		assert.Equal(t, "template_"+string(kind)+".csv", filename)
		lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
		require.Len(t, lines, 2, "one header line plus one example row")
		assert.Equal(t,
			strings.Count(lines[0], ";"), strings.Count(lines[1], ";"),
			"the example row must line up with the header")
	}
}

func TestTemplateBuild_TemplatesRoundTripThroughIngest(t *testing.T) {
	uc := usecase.NewTemplateUseCase()

	for kind := range map[ingest.Kind]struct{}{
		ingest.KindItem:         {},
		ingest.KindSellthru:     {},
		ingest.KindTopup:        {},
		ingest.KindBucket:       {},
		ingest.KindDistribution: {},
	} {
		_, content, err := uc.Build(kind)
		require.NoError(t, err)

		res, err := ingest.Ingest(content, kind)
		require.NoError(t, err, "the published template for %s must parse", kind)
		assert.Equal(t, 1, res.Count())
	}
}

func TestTemplateBuild_UnknownKind(t *testing.T) {
	uc := usecase.NewTemplateUseCase()

	_, _, err := uc.Build(ingest.Kind("refund"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
