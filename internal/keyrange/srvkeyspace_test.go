package keyrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func TestTranslate(t *testing.T) {
	refs := []ShardReference{
		{Name: "-80", KeyRange: &KeyRange{End: []byte{0x80}}},
		{Name: "80-", KeyRange: &KeyRange{Start: []byte{0x80}}},
	}
	sk := &SrvKeyspace{
		ShardingColumnName: "keyspace_id",
		ShardingColumnType: int64p(KeyspaceIDTypeBytes),
		ServedFrom: []ServedFrom{
			{TabletType: 2, Keyspace: "ks1"},
		},
		Partitions: []Partition{
			{ServedType: 3, ShardReferences: refs},
		},
	}

	out, err := Translate(sk)
	require.NoError(t, err)

	require.NotNil(t, out.ShardingColumnType)
	assert.Equal(t, KitBytes, *out.ShardingColumnType)
	assert.Equal(t, "keyspace_id", out.ShardingColumnName)
	assert.Equal(t, map[string]string{"master": "ks1"}, out.ServedFrom)
	assert.Equal(t, map[string]LegacyPartition{"replica": {ShardReferences: refs}}, out.Partitions)
}

func TestTranslate_AbsentFields(t *testing.T) {
	out, err := Translate(&SrvKeyspace{})
	require.NoError(t, err)
	assert.Nil(t, out.ShardingColumnType)
	assert.Nil(t, out.ServedFrom)
	assert.Nil(t, out.Partitions)

	out, err = Translate(&SrvKeyspace{ServedFrom: []ServedFrom{}})
	require.NoError(t, err)
	assert.NotNil(t, out.ServedFrom)
	assert.Empty(t, out.ServedFrom)
}

func TestTranslate_ExplicitZeroIsUnset(t *testing.T) {
	out, err := Translate(&SrvKeyspace{ShardingColumnType: int64p(0)})
	require.NoError(t, err)
	require.NotNil(t, out.ShardingColumnType)
	assert.Equal(t, KitUnset, *out.ShardingColumnType)
}

func TestTranslate_UnknownRoleCode(t *testing.T) {
	_, err := Translate(&SrvKeyspace{
		Partitions: []Partition{{ServedType: 99}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRoleCode)
	assert.Contains(t, err.Error(), "Partitions")
	assert.Contains(t, err.Error(), "99")

	_, err = Translate(nil)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestLookupTables(t *testing.T) {
	assert.Equal(t, 12, NumTabletTypes)

	for code := int64(0); code < int64(NumTabletTypes); code++ {
		name, err := TabletTypeName(code)
		require.NoError(t, err)

		back, ok := TabletTypeCode(name)
		require.True(t, ok, name)
		assert.Equal(t, code, back)
	}

	name, err := TabletTypeName(5)
	require.NoError(t, err)
	assert.Equal(t, "spare", name)

	_, err = TabletTypeName(-1)
	assert.ErrorIs(t, err, ErrUnknownRoleCode)
	_, err = TabletTypeName(12)
	assert.ErrorIs(t, err, ErrUnknownRoleCode)

	_, ok := TabletTypeCode("primary")
	assert.False(t, ok)

	assert.Equal(t, KitUnset, KeyspaceIDTypeName(0))
	assert.Equal(t, KitUint64, KeyspaceIDTypeName(1))
	assert.Equal(t, KitBytes, KeyspaceIDTypeName(2))
	assert.Equal(t, KitUnset, KeyspaceIDTypeName(3))
}
