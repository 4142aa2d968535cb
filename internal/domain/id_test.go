package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	assert.True(t, ParseID("  ").IsZero())
	assert.Equal(t, "7", ParseID(" 7 ").String())
	assert.True(t, ParseID("7").Equal(NumericID(7)))
	assert.Equal(t, "sku-1", ParseID("sku-1").String())
}

func TestIDJSONKeepsKind(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`[7, "abc", null, "7"]`), &ids))
	require.Len(t, ids, 4)

	assert.True(t, ids[0].Equal(NumericID(7)))
	assert.Equal(t, "abc", ids[1].String())
	assert.True(t, ids[2].IsZero())
	assert.True(t, ids[3].Equal(ids[0]))

	out, err := json.Marshal(ids)
	require.NoError(t, err)
	assert.JSONEq(t, `[7, "abc", null, "7"]`, string(out))
}
