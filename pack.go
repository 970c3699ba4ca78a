package videostream

// Plane is one strided plane of pixel data.
type Plane struct {
	// Data starts at the first pixel of row 0. It may alias memory owned by
	// a Converter and is only valid until that converter's next call.
	Data []byte
	// Stride is the distance in bytes between the starts of two rows. It is
	// at least Width times the bytes per pixel.
	Stride int
	Width  int
	Height int
}

// PackedSize is the length of a packed buffer of width x height pixels with
// channels bytes each.
func PackedSize(width, height, channels int) int {
	return width * height * channels
}

// Pack copies p into a new buffer holding its rows back to back with the
// row padding removed. channels is the bytes per pixel.
//
// A plane whose stride is shorter than a row of pixels yields nil. A plane
// whose Data ends before its last row yields a buffer shorter than
// PackedSize, which callers must check.
func Pack(p Plane, channels int) []byte {
	rowBytes := p.Width * channels
	if p.Width <= 0 || p.Height <= 0 || channels <= 0 {
		return []byte{}
	}

	switch {
	case p.Stride == rowBytes:
		n := min(rowBytes*p.Height, len(p.Data))
		out := make([]byte, n)
		copy(out, p.Data[:n])
		return out
	case p.Stride < rowBytes:
		return nil
	}

	out := make([]byte, 0, rowBytes*p.Height)
	for row := 0; row < p.Height; row++ {
		start := row * p.Stride
		end := start + rowBytes
		if end > len(p.Data) {
			break
		}
		out = append(out, p.Data[start:end]...)
	}
	return out
}
