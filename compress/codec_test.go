package compress

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/softmag/format"
)

// materialPayload builds a representative payload: float64-heavy JSON-like
// text with long runs of digits, the shape of real material records.
func materialPayload(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		mu := 8000.0 * math.Exp(-float64(i)/200.0)
		fmt.Fprintf(&buf, `{"knot":%d,"value":%.15g}`, i*10, mu)
	}

	return buf.Bytes()
}

func TestRoundTripAllCodecs(t *testing.T) {
	payload := materialPayload(500)

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			codec, err := GetCodec(compression)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestCompressibleDataShrinks(t *testing.T) {
	payload := materialPayload(2000)

	for _, compression := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(compression)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), "%s", compression)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(compression)
		require.NoError(t, err)

		compressed, err := codec.Compress(nil)
		require.NoError(t, err)
		restored, err := codec.Decompress(compressed)
		require.NoError(t, err)
		require.Empty(t, restored)
	}
}

func TestGetCodecUnknownType(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestDecompressCorruptedInput(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}

	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	_, err = codec.Decompress(garbage)
	require.Error(t, err)

	codec, err = GetCodec(format.CompressionS2)
	require.NoError(t, err)
	_, err = codec.Decompress(garbage)
	require.Error(t, err)
}
