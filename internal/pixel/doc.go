// Package pixel defines the data model shared by every transform in the
// engine: the stored Pixel, the Packed 24-bit color returned by spatial
// operations, and the dimension checks applied to flat row-major buffers.
//
// # Channel Order
//
// Pixels are stored blue, green, red (index 0, 1, 2). Packed colors are
// always (R<<16)|(G<<8)|B, so packing reads the stored channels in reverse.
// Filters that weight channels do the same, which keeps the packed output
// of an identity transform equal to Pack of its input.
//
// # Buffers
//
// An image of width W and height H is a slice of exactly W*H samples in
// row-major order: sample (x, y) lives at index y*W+x. CheckDimensions
// enforces this before any windowed or spectral operation runs.
package pixel
