// Package pointops implements single-pass color remaps: every output pixel
// depends only on the matching input pixel and, for the histogram-based
// operations, on image-wide statistics. None of them need the image
// dimensions.
package pointops
