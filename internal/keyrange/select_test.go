package keyrange

import (
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyspacesDoc = `
{
  "cell": "zone1",
  "keyspaces": [
    {"name": "commerce", "ShardingColumnType": 0},
    {"name": "customer", "ShardingColumnType": 1,
     "Partitions": [{"ServedType": 2, "ShardReferences": [{"Name": "-80"}, {"Name": "80-"}]}]}
  ]
}
`

func TestSelect(t *testing.T) {
	doc, err := oj.ParseString(keyspacesDoc)
	require.NoError(t, err)

	t.Run("root", func(t *testing.T) {
		recs, err := Select(doc, "")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "zone1", recs[0]["cell"])
	})

	t.Run("list of objects", func(t *testing.T) {
		recs, err := Select(doc, "$.keyspaces[*]")
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "commerce", recs[0]["name"])
		assert.Equal(t, "customer", recs[1]["name"])
	})

	t.Run("primitive", func(t *testing.T) {
		_, err := Select(doc, "$.cell")
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := Select(doc, "$.keyspaces[1")
		assert.Error(t, err)
	})
}

func TestTranslateAll(t *testing.T) {
	doc, err := oj.ParseString(keyspacesDoc)
	require.NoError(t, err)

	require.NoError(t, TranslateAll(doc, "$.keyspaces[*]"))

	recs, err := Select(doc, "$.keyspaces[*]")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "", recs[0]["ShardingColumnType"])
	assert.Equal(t, "uint64", recs[1]["ShardingColumnType"])
	assert.Equal(t, map[string]any{
		"master": map[string]any{
			"ShardReferences": []any{
				map[string]any{"Name": "-80"},
				map[string]any{"Name": "80-"},
			},
		},
	}, recs[1]["Partitions"])
}

func TestTranslateAll_ReportsRecordIndex(t *testing.T) {
	doc, err := oj.ParseString(`[{"ServedFrom": []}, {"ServedFrom": [{"TabletType": 42, "Keyspace": "x"}]}]`)
	require.NoError(t, err)

	err = TranslateAll(doc, "$[*]")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRoleCode)
	assert.Contains(t, err.Error(), "record 1")
}

func TestTranslateAll_NoPartialUpdate(t *testing.T) {
	doc, err := oj.ParseString(`[{"ShardingColumnType": 1}, {"ServedFrom": [{"TabletType": 99, "Keyspace": "x"}]}]`)
	require.NoError(t, err)

	err = TranslateAll(doc, "$[*]")
	assert.ErrorIs(t, err, ErrUnknownRoleCode)

	recs, err := Select(doc, "$[*]")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(1), recs[0]["ShardingColumnType"], "earlier records must not be rewritten")
	assert.IsType(t, []any{}, recs[1]["ServedFrom"])
}
