package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"
)

func TestMergeUnion_DeduplicatesAcrossChunks(t *testing.T) {
	results := []core.PartialResult{
		{
			ChunkIndex: 0,
			Companies:  []string{"Ecopetrol", "ISA"},
			Persons:    []string{"Juan Pérez"},
			Events:     []string{"Audiencia pública"},
		},
		{
			ChunkIndex: 1,
			Companies:  []string{" ecopetrol ", "EPM"},
			Persons:    []string{"juan pérez", "Ana Gómez"},
			Events:     []string{"audiencia pública"},
		},
	}

	merged := MergeUnion(results)

	assert.Equal(t, []string{"Ecopetrol", "ISA", "EPM"}, merged.Companies)
	assert.Equal(t, []string{"Juan Pérez", "Ana Gómez"}, merged.Persons)
	assert.Equal(t, []string{"Audiencia pública"}, merged.Events)
	assert.Empty(t, merged.Summary)
}

func TestMergeUnion_SkipsFailedChunks(t *testing.T) {
	results := []core.PartialResult{
		{ChunkIndex: 0, Companies: []string{"ISA"}},
		{ChunkIndex: 1, Companies: []string{"Enel"}, Failed: true},
		{ChunkIndex: 2, Companies: []string{"EPM"}},
	}

	merged := MergeUnion(results)

	assert.Equal(t, []string{"ISA", "EPM"}, merged.Companies)
}

func TestMergeUnion_DropsBlankEntries(t *testing.T) {
	results := []core.PartialResult{
		{ChunkIndex: 0, Persons: []string{"", "  ", "María Ríos", " María Ríos"}},
	}

	merged := MergeUnion(results)

	assert.Equal(t, []string{"María Ríos"}, merged.Persons)
}

func TestMergeUnion_Empty(t *testing.T) {
	merged := MergeUnion(nil)

	assert.Empty(t, merged.Companies)
	assert.Empty(t, merged.Persons)
	assert.Empty(t, merged.Events)
	assert.NotNil(t, merged.Companies)
}

func TestMergeUnion_Idempotent(t *testing.T) {
	results := []core.PartialResult{
		{ChunkIndex: 0, Companies: []string{"Ecopetrol", "ecopetrol", "ISA"}, Events: []string{"Subasta"}},
		{ChunkIndex: 1, Companies: []string{"Isa"}, Events: []string{" subasta "}},
	}

	first := MergeUnion(results)
	second := MergeUnion([]core.PartialResult{{
		ChunkIndex: 0,
		Companies:  first.Companies,
		Persons:    first.Persons,
		Events:     first.Events,
	}})

	assert.Equal(t, first, second)
}
