package gz

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompress(t *testing.T) {
	data := []byte(`<mjloggm ver="2.3"><GO type="169"/></mjloggm>`)

	packed, err := Compress(data)
	require.NoError(t, err)
	assert.NotEqual(t, data, packed)

	unpacked, err := Decompress(packed)
	require.NoError(t, err)
	assert.Equal(t, data, unpacked)
}

func TestDecompress_NotGzip(t *testing.T) {
	_, err := Decompress([]byte("plain text"))
	assert.Error(t, err)
}

func TestReadAll_Truncated(t *testing.T) {
	packed, err := Compress(bytes.Repeat([]byte("INIT "), 1000))
	require.NoError(t, err)

	_, err = ReadAll(bytes.NewReader(packed[:len(packed)/2]))
	assert.Error(t, err)
}
