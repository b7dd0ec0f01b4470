// Package server exposes the kayn image engines as MCP (Model Context
// Protocol) tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Images on the Wire
//
// Images travel inline as "pixels" (row-major 0xRRGGBB integers) plus
// "width" and "height". Results use the same shape. Window filters return
// only the valid region, so their width and height are smaller than the
// input's.
//
// # Available Tools
//
// Point operations:
//   - kayn_grayscale, kayn_negative, kayn_normalize
//   - kayn_equalize, kayn_equalize_hsl, kayn_gray_to_color_scale
//   - kayn_dynamic_compression, kayn_split_color_channel, kayn_resize_nn
//
// Window filters:
//   - kayn_convolve, kayn_sobel
//   - kayn_median, kayn_noise_reduction_min, kayn_noise_reduction_max,
//     kayn_noise_reduction_midpoint, kayn_order_stat
//
// Thresholding:
//   - kayn_otsu_threshold, kayn_binarize, kayn_limiarize
//
// Frequency domain:
//   - kayn_dct, kayn_idct
//   - kayn_freq_lowpass, kayn_freq_highpass, kayn_freq_normalize
//   - kayn_spectrum_evict
//
// # Spectrum Store
//
// kayn_dct and the frequency masks keep their coefficient grids in a
// SpectrumStore and return a spectrum_id. Later calls pass the id instead of
// resending the coefficients. Spectra live until evicted or until the
// process exits.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// A panic inside a tool is recovered and reported as a -32000 error.
//
// # Usage
//
//	srv := server.New(server.Config{Workers: 4})
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
