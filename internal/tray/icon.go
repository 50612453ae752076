package tray

// getIcon returns a 16x16 32-bit ICO: a black frame around a small square
func getIcon() []byte {
	const size = 16
	pixels := size * size * 4
	mask := size * 4 // 1bpp AND mask, rows padded to 32 bits
	dib := 40 + pixels + mask

	icon := make([]byte, 6+16+dib)
	// ICO header: reserved, type=1, count=1
	copy(icon[0:6], []byte{0x00, 0x00, 0x01, 0x00, 0x01, 0x00})
	// Directory entry
	copy(icon[6:22], []byte{
		size, size, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
		byte(dib), byte(dib >> 8), 0x00, 0x00,
		0x16, 0x00, 0x00, 0x00,
	})
	// BITMAPINFOHEADER, height doubled for the mask
	copy(icon[22:62], []byte{
		0x28, 0x00, 0x00, 0x00,
		size, 0x00, 0x00, 0x00,
		size * 2, 0x00, 0x00, 0x00,
		0x01, 0x00,
		0x20, 0x00,
		0x00, 0x00, 0x00, 0x00,
		byte(pixels), byte(pixels >> 8), 0x00, 0x00,
	})

	px := icon[62 : 62+pixels]
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			border := x < 2 || y < 2 || x >= size-2 || y >= size-2
			lens := x >= 5 && x < 11 && y >= 5 && y < 11
			if border || lens {
				px[i+3] = 0xFF // opaque black, BGRA
			}
		}
	}
	return icon
}
