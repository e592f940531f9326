package criteria

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTermMarshalsToNamedEnvelope(t *testing.T) {
	assert := require.New(t)

	data, err := json.Marshal(&Term{Field: `name`, Value: `alice`})
	assert.NoError(err)

	var decoded map[string]interface{}
	assert.NoError(json.Unmarshal(data, &decoded))

	term, ok := decoded[`term`].(map[string]interface{})
	assert.True(ok)
	assert.Equal(`alice`, term[`name`])
}

func TestRangeMarshalsAllBounds(t *testing.T) {
	assert := require.New(t)

	r := NewRange(`age`, GE, 18)
	r.Specs[LT] = 65

	data, err := json.Marshal(r)
	assert.NoError(err)

	var decoded map[string]interface{}
	assert.NoError(json.Unmarshal(data, &decoded))

	rangePayload, ok := decoded[`range`].(map[string]interface{})
	assert.True(ok)

	bounds, ok := rangePayload[`age`].(map[string]interface{})
	assert.True(ok)
	assert.EqualValues(18, bounds[`ge`])
	assert.EqualValues(65, bounds[`lt`])
}

func TestAndMarshalsFiltersList(t *testing.T) {
	assert := require.New(t)

	and := &And{Children: []Criterion{
		&Term{Field: `a`, Value: 1},
		&Term{Field: `b`, Value: 2},
	}}

	data, err := json.Marshal(and)
	assert.NoError(err)

	var decoded map[string]interface{}
	assert.NoError(json.Unmarshal(data, &decoded))

	payload, ok := decoded[`and`].(map[string]interface{})
	assert.True(ok)

	filters, ok := payload[`filters`].([]interface{})
	assert.True(ok)
	assert.Len(filters, 2)
}

func TestConstCriteriaSingletons(t *testing.T) {
	assert := require.New(t)

	assert.True(IsTrue(True))
	assert.False(IsTrue(False))
	assert.True(IsFalse(False))
	assert.False(IsFalse(True))
}
