package videostream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// padded builds a plane of height rows, each rowBytes of value v followed by
// pad bytes of 0xEE.
func padded(width, height, channels, pad int, v byte) Plane {
	rowBytes := width * channels
	stride := rowBytes + pad
	data := make([]byte, 0, stride*height)
	for y := 0; y < height; y++ {
		data = append(data, bytes.Repeat([]byte{v}, rowBytes)...)
		data = append(data, bytes.Repeat([]byte{0xEE}, pad)...)
	}
	return Plane{Data: data, Stride: stride, Width: width, Height: height}
}

func TestPackContiguousIsCopy(t *testing.T) {
	data := make([]byte, 4*3*3)
	for i := range data {
		data[i] = byte(i)
	}
	p := Plane{Data: data, Stride: 12, Width: 4, Height: 3}

	out := Pack(p, 3)
	require.Equal(t, data, out)

	out[0] = 0xFF
	assert.Equal(t, byte(0), data[0], "result must not alias the plane")
}

func TestPackRemovesPadding(t *testing.T) {
	tests := []struct {
		name                  string
		width, height, ch, pd int
	}{
		{"rgb 2x2 pad 2", 2, 2, 3, 2},
		{"rgb 64x48 pad 64", 64, 48, 3, 64},
		{"rgba 5x3 pad 12", 5, 3, 4, 12},
		{"gray 50x4 pad 14", 50, 4, 1, 14},
		{"gray 1x1 pad 31", 1, 1, 1, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Pack(padded(tt.width, tt.height, tt.ch, tt.pd, 0x42), tt.ch)
			require.Len(t, out, PackedSize(tt.width, tt.height, tt.ch))
			assert.NotContains(t, out, byte(0xEE))
			assert.Equal(t, bytes.Repeat([]byte{0x42}, len(out)), out)
		})
	}
}

func TestPackKeepsRowOrder(t *testing.T) {
	// 2x2 RGB, stride 8: row 0 is 1..6, row 1 is 11..16.
	p := Plane{
		Data:   []byte{1, 2, 3, 4, 5, 6, 0, 0, 11, 12, 13, 14, 15, 16, 0, 0},
		Stride: 8, Width: 2, Height: 2,
	}
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 11, 12, 13, 14, 15, 16}, Pack(p, 3))
}

func TestPackLastRowWithoutPadding(t *testing.T) {
	// Decoders may end the buffer right after the last row's pixels.
	p := padded(3, 2, 1, 5, 7)
	p.Data = p.Data[:len(p.Data)-5]
	assert.Equal(t, []byte{7, 7, 7, 7, 7, 7}, Pack(p, 1))
}

func TestPackZeroDimensions(t *testing.T) {
	for _, p := range []Plane{
		{},
		{Width: 0, Height: 10, Stride: 32},
		{Width: 10, Height: 0, Stride: 32},
	} {
		out := Pack(p, 3)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	}
}

func TestPackInvalidPlanes(t *testing.T) {
	// stride shorter than a row
	assert.Nil(t, Pack(Plane{Data: make([]byte, 100), Stride: 5, Width: 4, Height: 2}, 3))

	// data ends before the last row: the result is short, not padded out
	short := padded(4, 3, 3, 4, 1)
	short.Data = short.Data[:short.Stride*2]
	assert.Len(t, Pack(short, 3), 2*12)
}

func TestPackedSize(t *testing.T) {
	assert.Equal(t, 9216, PackedSize(64, 48, 3))
	assert.Equal(t, 3072, PackedSize(64, 48, 1))
	assert.Equal(t, 12288, PackedSize(64, 48, 4))
	assert.Zero(t, PackedSize(0, 48, 4))
}
