// Package filter implements sliding-window transforms over row-major pixel
// buffers: linear convolution with an arbitrary N×N kernel, order-statistic
// reductions (median, min, max, midpoint) and Sobel gradient magnitude.
//
// # Valid Region
//
// No padding or edge extension is performed. A filter of side N drops a
// border of N/2 pixels on every edge, so the output covers
//
//	[N/2, width-N/2) × [N/2, height-N/2)
//
// in row-major order and holds (width-2*(N/2)) * (height-2*(N/2)) packed
// colors. A window that leaves no valid region is rejected with
// ErrInvalidKernel.
//
// # Channel Order
//
// Kernel weights and window samples are applied to the stored channels
// from index 2 down to 0. With the B, G, R storage order of package pixel
// this produces R, G, B output slots, so an identity kernel reproduces
// pixel.Pack of the input.
//
// # Thread Safety
//
// All functions are pure: inputs are never modified and every call
// allocates its own output.
package filter
