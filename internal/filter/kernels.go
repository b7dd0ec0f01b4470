package filter

// Kernel presets. Each call returns a fresh slice the caller may modify.

// Identity3 returns the 3x3 kernel that copies the center pixel.
func Identity3() []float32 {
	return []float32{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}
}

// Box returns a side×side averaging kernel.
func Box(side int) []float32 {
	k := make([]float32, side*side)
	for i := range k {
		k[i] = 1 / float32(side*side)
	}
	return k
}

// Gaussian5 returns the 5x5 Gaussian kernel with sigma ≈ 1.4, normalized by
// its integer sum of 273:
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
func Gaussian5() []float32 {
	weights := []float32{
		1, 4, 7, 4, 1,
		4, 16, 26, 16, 4,
		7, 26, 41, 26, 7,
		4, 16, 26, 16, 4,
		1, 4, 7, 4, 1,
	}
	for i := range weights {
		weights[i] /= 273
	}
	return weights
}

// SobelX returns the horizontal Sobel gradient kernel.
func SobelX() []float32 {
	return []float32{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
}

// SobelY returns the vertical Sobel gradient kernel.
func SobelY() []float32 {
	return []float32{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	}
}

// Laplacian returns the 4-neighbour Laplacian kernel.
func Laplacian() []float32 {
	return []float32{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}
}
