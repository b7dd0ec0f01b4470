package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageProperties returns the schema properties shared by every tool that
// takes an image, merged with extra.
func imageProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"pixels": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 0xFFFFFF},
			"description": "Row-major pixels packed as 0xRRGGBB; length must equal width*height",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Image width in pixels",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Image height in pixels",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// imageTool builds a tool whose input is an image plus extra properties.
func imageTool(name, description string, extra map[string]interface{}, required ...string) Tool {
	return Tool{
		Name:        name,
		Description: description,
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": imageProperties(extra),
			"required":   append([]string{"pixels", "width", "height"}, required...),
		},
	}
}

// spectrumProperties returns the schema properties of tools that consume a
// spectrum, merged with extra.
func spectrumProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"spectrum_id": map[string]interface{}{
			"type":        "string",
			"description": "Id returned by kayn_dct or a frequency mask. Takes precedence over coefficients",
		},
		"coefficients": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "number"},
			"description": "Row-major DCT coefficients, used when spectrum_id is omitted",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Spectrum width, required with coefficients",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Spectrum height, required with coefficients",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

var includeCoefficients = map[string]interface{}{
	"type":        "boolean",
	"description": "Also return the coefficient array (default: false)",
	"default":     false,
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Point operations
		imageTool("kayn_grayscale",
			"Replace every pixel with its luminance, the rounded mean of its channels.", nil),
		imageTool("kayn_negative",
			"Invert every channel (255 - value).", nil),
		imageTool("kayn_normalize",
			"Stretch each channel linearly so that its minimum maps to 0 and its maximum to 255.", nil),
		imageTool("kayn_equalize",
			"Equalize the luminance histogram, producing a gray image.", nil),
		imageTool("kayn_equalize_hsl",
			"Histogram-equalize the HSL lightness, keeping hue and saturation.", nil),
		imageTool("kayn_gray_to_color_scale",
			"Map luminance to a blue-to-red pseudocolor ramp.", nil),
		imageTool("kayn_dynamic_compression",
			"Apply c * 255 * (v/255)^gamma to every channel.",
			map[string]interface{}{
				"constant": map[string]interface{}{
					"type":        "number",
					"description": "Scale factor c (default: 1)",
					"default":     1,
				},
				"gamma": map[string]interface{}{
					"type":        "number",
					"description": "Exponent (default: 1)",
					"default":     1,
				},
			}),
		imageTool("kayn_split_color_channel",
			"Keep one color channel and zero the other two.",
			map[string]interface{}{
				"channel": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"red", "green", "blue"},
					"description": "Channel to keep (default: red)",
					"default":     "red",
				},
			}),
		imageTool("kayn_resize_nn",
			"Resize with nearest-neighbour sampling.",
			map[string]interface{}{
				"new_width": map[string]interface{}{
					"type":        "integer",
					"description": "Target width",
				},
				"new_height": map[string]interface{}{
					"type":        "integer",
					"description": "Target height",
				},
			}, "new_width", "new_height"),

		// Window filters
		imageTool("kayn_convolve",
			"Convolve with an N×N kernel. The output covers only pixels whose whole window lies inside the image, so it shrinks by N-1 in each dimension.",
			map[string]interface{}{
				"kernel": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "number"},
					"description": "N*N weights in row-major order",
				},
				"preset": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"identity", "box3", "box5", "gaussian5", "sobel_x", "sobel_y", "laplacian"},
					"description": "Named kernel, instead of kernel",
				},
			}),
		imageTool("kayn_sobel",
			"Sobel gradient magnitude of the luminance, as a gray image two pixels smaller in each dimension.", nil),
		imageTool("kayn_median",
			"Median filter over a (2d+1)×(2d+1) window.", orderStatProperties()),
		imageTool("kayn_noise_reduction_min",
			"Minimum filter over a (2d+1)×(2d+1) window.", orderStatProperties()),
		imageTool("kayn_noise_reduction_max",
			"Maximum filter over a (2d+1)×(2d+1) window.", orderStatProperties()),
		imageTool("kayn_noise_reduction_midpoint",
			"Per-channel midpoint of the window minimum and maximum.", orderStatProperties()),
		imageTool("kayn_order_stat",
			"Rank filter over a (2d+1)×(2d+1) window with the named statistic.",
			namedOrderStatProperties()),

		// Thresholding
		imageTool("kayn_otsu_threshold",
			"Compute the Otsu threshold of the luminance histogram.", nil),
		imageTool("kayn_binarize",
			"Map pixels brighter than the threshold to white and the rest to black.", thresholdProperties()),
		imageTool("kayn_limiarize",
			"Keep pixels brighter than the threshold and set the rest to black.", thresholdProperties()),

		// Frequency domain
		imageTool("kayn_dct",
			"2D DCT-II of the luminance. The spectrum is kept on the server and returned as spectrum_id with a min-max normalized visual.",
			map[string]interface{}{"include_coefficients": includeCoefficients}),
		{
			Name:        "kayn_idct",
			Description: "Inverse DCT of a spectrum, returning a gray image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": spectrumProperties(nil),
			},
		},
		{
			Name:        "kayn_freq_lowpass",
			Description: "Zero every coefficient outside the radius around the DC term. The result is stored as a new spectrum.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": spectrumProperties(maskProperties()),
				"required":   []string{"radius"},
			},
		},
		{
			Name:        "kayn_freq_highpass",
			Description: "Zero every coefficient inside the radius around the DC term. The result is stored as a new spectrum.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": spectrumProperties(maskProperties()),
				"required":   []string{"radius"},
			},
		},
		{
			Name:        "kayn_freq_normalize",
			Description: "Min-max rescale spectrum coefficients to a gray image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": spectrumProperties(nil),
			},
		},
		{
			Name:        "kayn_spectrum_evict",
			Description: "Drop a stored spectrum, or all of them.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"spectrum_id": map[string]interface{}{
						"type":        "string",
						"description": "Spectrum to drop",
					},
					"all": map[string]interface{}{
						"type":        "boolean",
						"description": "Drop every stored spectrum",
						"default":     false,
					},
				},
			},
		},
	}
}

func orderStatProperties() map[string]interface{} {
	return map[string]interface{}{
		"distance": map[string]interface{}{
			"type":        "integer",
			"description": "Window half-size d (default: 1)",
			"default":     1,
			"minimum":     0,
		},
	}
}

func namedOrderStatProperties() map[string]interface{} {
	props := orderStatProperties()
	props["statistic"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"median", "min", "max", "midpoint"},
		"description": "Statistic taken from each window (default: median)",
		"default":     "median",
	}
	return props
}

func thresholdProperties() map[string]interface{} {
	return map[string]interface{}{
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance threshold 0-255 (default: Otsu)",
			"minimum":     0,
			"maximum":     255,
		},
	}
}

func maskProperties() map[string]interface{} {
	return map[string]interface{}{
		"radius": map[string]interface{}{
			"type":        "integer",
			"description": "Mask radius in coefficient units",
			"minimum":     0,
		},
		"include_coefficients": includeCoefficients,
	}
}
