package reedsolomon

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allFields = map[string]*Field{
	"QR":          QRField256,
	"DataMatrix":  DataMatrixField256,
	"AztecParam":  AztecParam,
	"AztecData6":  AztecData6,
	"AztecData10": AztecData10,
	"AztecData12": AztecData12,
}

func TestFieldExpLogRoundTrip(t *testing.T) {
	for name, field := range allFields {
		t.Run(name, func(t *testing.T) {
			for x := 1; x < field.Size(); x++ {
				require.Equal(t, x, field.Exp(field.Log(x)), "exp(log(%d))", x)
			}
			for i := 0; i < 2*(field.Size()-1); i++ {
				require.Equal(t, i%(field.Size()-1), field.Log(field.Exp(i)), "log(exp(%d))", i)
			}
		})
	}
}

func TestFieldMultiplyInverse(t *testing.T) {
	for name, field := range allFields {
		t.Run(name, func(t *testing.T) {
			for a := 1; a < field.Size(); a++ {
				require.Equal(t, 1, field.Multiply(a, field.Inverse(a)), "a=%d", a)
			}
			rng := rand.New(rand.NewSource(11))
			for i := 0; i < 200; i++ {
				a := 1 + rng.Intn(field.Size()-1)
				b := 1 + rng.Intn(field.Size()-1)
				require.Equal(t, field.Multiply(a, b), field.Multiply(b, a))
			}
			assert.Equal(t, 0, field.Multiply(0, 7))
			assert.Equal(t, 0, field.Multiply(7, 0))
			assert.Panics(t, func() { field.Inverse(0) })
			assert.Panics(t, func() { field.Log(0) })
		})
	}
}

func TestAddOrSubtract(t *testing.T) {
	assert.Equal(t, 0, AddOrSubtract(42, 42))
	assert.Equal(t, 7, AddOrSubtract(3, 4))
	assert.Equal(t, AddOrSubtract(9, 5), AddOrSubtract(5, 9))
}

func TestSharedFieldInstances(t *testing.T) {
	assert.Same(t, DataMatrixField256, AztecData8)
	assert.Same(t, AztecData6, MaxiCodeField64)
	assert.Equal(t, 0, QRField256.GeneratorBase())
	assert.Equal(t, 1, DataMatrixField256.GeneratorBase())
}

func TestPolyNormalization(t *testing.T) {
	field := QRField256

	zero := NewPoly(field, []int{0, 0, 0})
	assert.True(t, zero.IsZero())
	assert.Equal(t, 0, zero.Degree())
	assert.Equal(t, []int{0}, zero.Coefficients())

	p := NewPoly(field, []int{0, 0, 5, 1})
	assert.Equal(t, 1, p.Degree())
	assert.Equal(t, 5, p.Coefficient(1))
	assert.Equal(t, 1, p.Coefficient(0))

	assert.Panics(t, func() { NewPoly(field, nil) })
	assert.Panics(t, func() { p.MultiplyByMonomial(-1, 1) })
}

func TestPolyEvaluateAt(t *testing.T) {
	field := QRField256
	// p(x) = 2x + 3
	p := NewPoly(field, []int{2, 3})
	assert.Equal(t, 3, p.EvaluateAt(0))
	// In characteristic 2: p(1) = 2 ^ 3 = 1
	assert.Equal(t, 1, p.EvaluateAt(1))
	// p(2) = 2*2 ^ 3 = 4 ^ 3 = 7
	assert.Equal(t, 7, p.EvaluateAt(2))
}

func randomPoly(field *Field, rng *rand.Rand, degree int) *Poly {
	coefficients := make([]int, degree+1)
	coefficients[0] = 1 + rng.Intn(field.Size()-1)
	for i := 1; i <= degree; i++ {
		coefficients[i] = rng.Intn(field.Size())
	}
	return NewPoly(field, coefficients)
}

func TestPolyDivideIdentity(t *testing.T) {
	field := QRField256
	rng := rand.New(rand.NewSource(23))
	for i := 0; i < 200; i++ {
		degA := 1 + rng.Intn(20)
		degB := 1 + rng.Intn(degA)
		a := randomPoly(field, rng, degA)
		b := randomPoly(field, rng, degB)

		q, r := a.Divide(b)
		if !r.IsZero() {
			require.Less(t, r.Degree(), b.Degree())
		}
		// a == q*b + r
		recombined := q.MultiplyPoly(b).AddOrSubtractPoly(r)
		require.Equal(t, a.Coefficients(), recombined.Coefficients(), "iteration %d", i)
	}
	assert.Panics(t, func() {
		randomPoly(field, rng, 3).Divide(field.Zero())
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	field := QRField256
	dataSize := 10
	ecSize := 7
	block := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		block[i] = i + 1
	}

	NewEncoder(field).Encode(block, ecSize)
	for i := 0; i < dataSize; i++ {
		require.Equal(t, i+1, block[i], "encoding must not disturb the data part")
	}

	received := make([]int, len(block))
	copy(received, block)
	received[0] = 0
	received[3] = 200
	received[6] = 100

	corrected, err := NewDecoder(field).Decode(received, ecSize)
	require.NoError(t, err)
	assert.Equal(t, 3, corrected)
	assert.Equal(t, block, received)
}

func TestDecodeNoErrors(t *testing.T) {
	field := QRField256
	block := []int{10, 20, 30, 40, 50, 0, 0, 0, 0}
	NewEncoder(field).Encode(block, 4)

	corrected, err := NewDecoder(field).Decode(block, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, corrected)
}

func TestDecodeBeyondCapacity(t *testing.T) {
	field := QRField256
	block := []int{10, 20, 30, 40, 50, 0, 0, 0, 0}
	NewEncoder(field).Encode(block, 4)

	original := make([]int, len(block))
	copy(original, block)

	// 3 errors against a capacity of 2: decoding must not silently return
	// the original codeword.
	block[0] = 0
	block[1] = 0
	block[2] = 0

	_, err := NewDecoder(field).Decode(block, 4)
	if err == nil {
		assert.NotEqual(t, original, block, "a miscorrection may not reproduce the true codeword")
	}
}

func TestEncodeDecodeDataMatrixField(t *testing.T) {
	// generatorBase 1 exercises the corrective Forney multiplication.
	field := DataMatrixField256
	dataSize := 8
	ecSize := 6
	block := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		block[i] = (i * 37) % 256
	}
	NewEncoder(field).Encode(block, ecSize)

	received := make([]int, len(block))
	copy(received, block)
	received[2] ^= 0x55
	received[9] ^= 0x0F

	corrected, err := NewDecoder(field).Decode(received, ecSize)
	require.NoError(t, err)
	assert.Equal(t, 2, corrected)
	assert.Equal(t, block, received)
}

func TestDecodeFuzz(t *testing.T) {
	// QR version 1-M block geometry: 16 data codewords, 10 parity.
	field := QRField256
	dataSize := 16
	ecSize := 10
	maxErrors := ecSize / 2

	enc := NewEncoder(field)
	dec := NewDecoder(field)
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 1000; trial++ {
		block := make([]int, dataSize+ecSize)
		for i := 0; i < dataSize; i++ {
			block[i] = rng.Intn(256)
		}
		enc.Encode(block, ecSize)

		received := make([]int, len(block))
		copy(received, block)
		numErrors := rng.Intn(maxErrors + 1)
		positions := rng.Perm(len(received))[:numErrors]
		for _, pos := range positions {
			received[pos] ^= 1 + rng.Intn(255)
		}

		corrected, err := dec.Decode(received, ecSize)
		require.NoError(t, err, "trial %d (%d errors)", trial, numErrors)
		require.Equal(t, block, received, "trial %d", trial)
		require.Equal(t, numErrors, corrected, "trial %d", trial)
	}
}
