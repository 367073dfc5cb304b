package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, file FileModel, existing []byte) string {
	t.Helper()
	out, err := Render(file, existing)
	require.NoError(t, err)
	return string(out)
}

func TestRenderClassWithMetricAndPredicate(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes: []ClassModel{{
			Name:            "Cell_C100",
			CombinationCode: "C100",
			MetricVariable:  "VAR2",
			Conjuncts: []ConjunctModel{
				{Variable: "VAR1", Codes: []string{"A", "B"}},
				{Variable: "VAR3", Codes: []string{"C"}},
			},
			Products: []string{"loans_table"},
		}},
	}

	out := renderString(t, file, nil)

	assert.Contains(t, out, "class Cell_C100:")
	assert.Contains(t, out, "total += row.VAR2")
	assert.Contains(t, out, "return (row.VAR1 == 'A' or row.VAR1 == 'B') and row.VAR3 == 'C'")
	assert.Contains(t, out, "for row in context.loans_table.rows:")
}

func TestRenderCountingMetric(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes:  []ClassModel{{Name: "Cell_C1", CombinationCode: "C1", Products: []string{"loans_table"}}},
	}

	out := renderString(t, file, nil)
	assert.Contains(t, out, "return len(self.rows)")
}

func TestRenderWildcardOnlyPredicateIsTrue(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes: []ClassModel{{
			Name:            "Cell_C1",
			CombinationCode: "C1",
			Conjuncts:       []ConjunctModel{{Variable: "VAR1", Wildcard: true}},
			Products:        []string{"loans_table"},
		}},
	}

	out := renderString(t, file, nil)
	assert.Contains(t, out, "def filter(self, row):\n        return True")
}

func TestRenderNeverMatch(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes: []ClassModel{{
			Name:            "Cell_C1",
			CombinationCode: "C1",
			NeverMatch:      true,
			Conjuncts:       []ConjunctModel{{Variable: "VAR1"}},
			Products:        []string{"loans_table"},
		}},
	}

	out := renderString(t, file, nil)
	assert.Contains(t, out, "def filter(self, row):\n        return False")
}

func TestRenderUnresolvedProductStub(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes:  []ClassModel{{Name: "Cell_C1", CombinationCode: "C1"}},
	}

	out := renderString(t, file, nil)
	assert.Contains(t, out, "def init(self, context):\n        # no product tables resolved for this cell\n        return")
}

func TestRenderStubsAppendOnly(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes:  []ClassModel{{Name: "Cell_C1", CombinationCode: "C1", Products: []string{"loans_table"}}},
		Stubs:    []string{"is_a", "is_b"},
	}

	first := renderString(t, file, nil)
	assert.Equal(t, 1, strings.Count(first, "def is_a(row):"))
	assert.Equal(t, 1, strings.Count(first, "def is_b(row):"))

	// A second run over the previous output must not duplicate stubs.
	second := renderString(t, file, []byte(first))
	assert.Equal(t, 1, strings.Count(second, "def is_a(row):"))
	assert.Equal(t, 1, strings.Count(second, "def is_b(row):"))
	assert.Equal(t, first, second)
}

func TestRenderKeepsEditedStubsAndAppendsNew(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes:  []ClassModel{{Name: "Cell_C1", CombinationCode: "C1", Products: []string{"loans_table"}}},
		Stubs:    []string{"is_a"},
	}
	first := renderString(t, file, nil)

	// A human fills in the stub body; the next run keeps the edit.
	edited := strings.Replace(first, "def is_a(row):\n    return False",
		"def is_a(row):\n    return row.kind == 'a'", 1)

	file.Stubs = []string{"is_a", "is_new"}
	second := renderString(t, file, []byte(edited))

	assert.Contains(t, second, "return row.kind == 'a'")
	assert.NotContains(t, second, "def is_a(row):\n    return False")
	assert.Equal(t, 1, strings.Count(second, "def is_new(row):"))
}

func TestRenderIsDeterministic(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes: []ClassModel{{
			Name:            "Cell_C1",
			CombinationCode: "C1",
			Conjuncts:       []ConjunctModel{{Variable: "VAR1", Codes: []string{"A"}}},
			Products:        []string{"loans_table", "deposits_table"},
		}},
		Stubs: []string{"is_a"},
	}

	first := renderString(t, file, nil)
	second := renderString(t, file, nil)
	assert.Equal(t, first, second)
}

func TestRenderEscapesQuotes(t *testing.T) {
	file := FileModel{
		Template: "T1",
		Classes: []ClassModel{{
			Name:            "Cell_C1",
			CombinationCode: "C1",
			Conjuncts:       []ConjunctModel{{Variable: "VAR1", Codes: []string{"O'NEIL"}}},
			Products:        []string{"loans_table"},
		}},
	}

	out := renderString(t, file, nil)
	assert.Contains(t, out, `row.VAR1 == 'O\'NEIL'`)
}
