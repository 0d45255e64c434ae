package matfile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/softmag/bhcurve"
	"github.com/arloliu/softmag/endian"
	"github.com/arloliu/softmag/errs"
	"github.com/arloliu/softmag/format"
	"github.com/arloliu/softmag/internal/hash"
	"github.com/arloliu/softmag/ironloss"
	"github.com/arloliu/softmag/material"
	"github.com/arloliu/softmag/quantity"
	"github.com/arloliu/softmag/section"
)

func testMaterial(t *testing.T, name string) *material.Material {
	t.Helper()

	curve, err := bhcurve.FromPermeabilityAtField(
		[]quantity.FieldStrength{
			quantity.AmperesPerMeter(100),
			quantity.AmperesPerMeter(1000),
			quantity.AmperesPerMeter(10000),
		},
		[]float64{8000, 3000, 200},
	)
	require.NoError(t, err)

	model, err := ironloss.New(quantity.WattsPerKilogram(1.5), quantity.WattsPerKilogram(0.9))
	require.NoError(t, err)

	m, err := material.New(name,
		material.WithPermeability(material.CurvePermeability(curve)),
		material.WithLosses(material.JordanLosses(model)),
		material.WithDensity(quantity.KilogramsPerCubicMeter(7700)),
	)
	require.NoError(t, err)

	return m
}

func appendChecksum(body []byte) []byte {
	data := append([]byte(nil), body...)

	return endian.GetLittleEndianEngine().AppendUint64(data, hash.Sum(data))
}

func encodeLibrary(t *testing.T, materials []*material.Material, opts ...Option) []byte {
	t.Helper()

	encoder, err := NewEncoder(opts...)
	require.NoError(t, err)
	for _, m := range materials {
		require.NoError(t, encoder.Add(m))
	}
	data, err := encoder.Finish()
	require.NoError(t, err)

	return data
}

func TestRoundTripAllCodecs(t *testing.T) {
	orig := testMaterial(t, "M400-50A")

	for _, compression := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(compression.String(), func(t *testing.T) {
			data := encodeLibrary(t, []*material.Material{orig}, WithCompression(compression))

			decoder, err := NewDecoder(data)
			require.NoError(t, err)
			require.Equal(t, 1, decoder.MaterialCount())
			require.Equal(t, compression, decoder.Compression())

			restored, err := decoder.Material("M400-50A")
			require.NoError(t, err)

			// Evaluation must survive the round trip bit-exactly.
			for _, h := range []float64{0, 200, 5000, 1e6} {
				want, err := orig.Permeability().AtField(quantity.AmperesPerMeter(h))
				require.NoError(t, err)
				got, err := restored.Permeability().AtField(quantity.AmperesPerMeter(h))
				require.NoError(t, err)
				require.Equal(t, want, got, "H=%g A/m", h)
			}

			want, err := orig.Losses().At(quantity.Hertz(200), quantity.Teslas(1.3))
			require.NoError(t, err)
			got, err := restored.Losses().At(quantity.Hertz(200), quantity.Teslas(1.3))
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestLookupAmongMany(t *testing.T) {
	var materials []*material.Material
	for i := 0; i < 50; i++ {
		materials = append(materials, testMaterial(t, fmt.Sprintf("steel-%02d", i)))
	}
	data := encodeLibrary(t, materials, WithCompression(format.CompressionS2))

	decoder, err := NewDecoder(data)
	require.NoError(t, err)
	require.Equal(t, 50, decoder.MaterialCount())

	m, err := decoder.Material("steel-37")
	require.NoError(t, err)
	require.Equal(t, "steel-37", m.Name())

	_, err = decoder.Material("steel-99")
	require.ErrorIs(t, err, errs.ErrMaterialNotFound)

	all, err := decoder.Materials()
	require.NoError(t, err)
	require.Len(t, all, 50)
	require.Equal(t, "steel-00", all[0].Name())
	require.Equal(t, "steel-49", all[49].Name())
}

func TestBigEndianRoundTrip(t *testing.T) {
	data := encodeLibrary(t, []*material.Material{testMaterial(t, "steel")}, WithBigEndian())

	decoder, err := NewDecoder(data)
	require.NoError(t, err)

	m, err := decoder.Material("steel")
	require.NoError(t, err)
	require.Equal(t, "steel", m.Name())
}

func TestNativeEndianRoundTrip(t *testing.T) {
	data := encodeLibrary(t, []*material.Material{testMaterial(t, "steel")}, WithNativeEndian())

	decoder, err := NewDecoder(data)
	require.NoError(t, err)

	header, err := section.ParseHeader(data)
	require.NoError(t, err)
	require.Equal(t, endian.IsNativeBigEndian(), header.Flag.IsBigEndian())

	m, err := decoder.Material("steel")
	require.NoError(t, err)
	require.Equal(t, "steel", m.Name())
}

func TestDuplicateName(t *testing.T) {
	encoder, err := NewEncoder()
	require.NoError(t, err)
	require.NoError(t, encoder.Add(testMaterial(t, "steel")))

	err = encoder.Add(testMaterial(t, "steel"))
	require.ErrorIs(t, err, errs.ErrDuplicateMaterial)
	require.ErrorIs(t, err, errs.ErrInvalidData)
}

func TestEmptyEncoder(t *testing.T) {
	encoder, err := NewEncoder()
	require.NoError(t, err)

	_, err = encoder.Finish()
	require.ErrorIs(t, err, errs.ErrNoMaterialsAdded)
}

func TestEncoderInvalidCompression(t *testing.T) {
	_, err := NewEncoder(WithCompression(format.CompressionType(0xFF)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestDecoderRejectsCorruption(t *testing.T) {
	valid := encodeLibrary(t, []*material.Material{testMaterial(t, "steel")})

	t.Run("too short", func(t *testing.T) {
		_, err := NewDecoder(valid[:section.HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[1] ^= 0xF0
		_, err := NewDecoder(data)
		require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
	})

	t.Run("payload corruption", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[len(data)-section.ChecksumSize-3] ^= 0xFF
		_, err := NewDecoder(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated index", func(t *testing.T) {
		// Cut the file inside the index and re-append a valid checksum, so
		// the structural check fires rather than the checksum.
		body := valid[:section.HeaderSize+section.IndexEntrySize/2]
		data := appendChecksum(body)
		_, err := NewDecoder(data)
		require.ErrorIs(t, err, errs.ErrTruncatedFile)
	})

	t.Run("checksum corruption", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[len(data)-1] ^= 0x01
		_, err := NewDecoder(data)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})
}

func BenchmarkDecoderLookup(b *testing.B) {
	var materials []*material.Material
	for i := 0; i < 100; i++ {
		m, err := material.New(fmt.Sprintf("steel-%03d", i))
		if err != nil {
			b.Fatal(err)
		}
		materials = append(materials, m)
	}

	encoder, err := NewEncoder()
	if err != nil {
		b.Fatal(err)
	}
	for _, m := range materials {
		if err := encoder.Add(m); err != nil {
			b.Fatal(err)
		}
	}
	data, err := encoder.Finish()
	if err != nil {
		b.Fatal(err)
	}
	decoder, err := NewDecoder(data)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = decoder.Material("steel-050")
	}
}
