package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ironsheep/kayn/internal/filter"
	"github.com/ironsheep/kayn/internal/imaging"
	"github.com/ironsheep/kayn/internal/pixel"
	"github.com/ironsheep/kayn/internal/pointops"
	"github.com/ironsheep/kayn/internal/spectral"
	"github.com/ironsheep/kayn/internal/threshold"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "kayn_convolve", "kayn_dct").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// ImageResult is the reply of every tool that produces pixels. Pixels are
// packed 0xRRGGBB values in row-major order.
type ImageResult struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Pixels []pixel.Packed `json:"pixels"`

	// Threshold is the luminance cut used by kayn_binarize and
	// kayn_limiarize.
	Threshold *uint8 `json:"threshold,omitempty"`
}

// ThresholdResult is the reply of kayn_otsu_threshold.
type ThresholdResult struct {
	Threshold uint8 `json:"threshold"`
}

// SpectrumResult is the reply of the frequency-domain tools. The spectrum is
// kept server-side under SpectrumID; Coefficients are only echoed when the
// caller asks for them.
type SpectrumResult struct {
	SpectrumID   string         `json:"spectrum_id"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Visual       []pixel.Packed `json:"visual"`
	Coefficients []float32      `json:"coefficients,omitempty"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.safeExecute(params.Name, params.Arguments)
	if s.debug {
		log.Printf("[DEBUG] %s took %v (err=%v)", params.Name, time.Since(start), err)
	}
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// ErrToolPanicked is reported when a tool handler panics. The panic is
// confined to the call; the server keeps serving.
var ErrToolPanicked = errors.New("tool panicked")

// safeExecute runs executeTool and converts a panic into an error.
func (s *Server) safeExecute(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Tool %s panicked: %v", name, r)
			result, err = nil, fmt.Errorf("%w: %s: %v", ErrToolPanicked, name, r)
		}
	}()
	return s.executeTool(name, args)
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Point operations
	case "kayn_grayscale":
		return s.handlePoint(args, pointops.Grayscale)
	case "kayn_negative":
		return s.handlePoint(args, pointops.Negative)
	case "kayn_normalize":
		return s.handlePoint(args, pointops.Normalize)
	case "kayn_equalize":
		return s.handlePoint(args, pointops.Equalize)
	case "kayn_equalize_hsl":
		return s.handlePoint(args, pointops.EqualizeHSL)
	case "kayn_gray_to_color_scale":
		return s.handlePoint(args, pointops.GrayToColorScale)
	case "kayn_dynamic_compression":
		return s.handleDynamicCompression(args)
	case "kayn_split_color_channel":
		return s.handleSplitChannel(args)
	case "kayn_resize_nn":
		return s.handleResize(args)

	// Window filters
	case "kayn_convolve":
		return s.handleConvolve(args)
	case "kayn_sobel":
		return s.handleSobel(args)
	case "kayn_median":
		return s.handleOrderStat(args, filter.Median)
	case "kayn_noise_reduction_min":
		return s.handleOrderStat(args, filter.Min)
	case "kayn_noise_reduction_max":
		return s.handleOrderStat(args, filter.Max)
	case "kayn_noise_reduction_midpoint":
		return s.handleOrderStat(args, filter.Midpoint)
	case "kayn_order_stat":
		return s.handleNamedOrderStat(args)

	// Thresholding
	case "kayn_otsu_threshold":
		return s.handleOtsu(args)
	case "kayn_binarize":
		return s.handleBinarize(args)
	case "kayn_limiarize":
		return s.handleLimiarize(args)

	// Frequency domain
	case "kayn_dct":
		return s.handleDCT(args)
	case "kayn_idct":
		return s.handleIDCT(args)
	case "kayn_freq_lowpass":
		return s.handleMask(args, spectral.LowPass)
	case "kayn_freq_highpass":
		return s.handleMask(args, spectral.HighPass)
	case "kayn_freq_normalize":
		return s.handleFreqNormalize(args)
	case "kayn_spectrum_evict":
		return s.handleSpectrumEvict(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to JSON. On marshal failure it returns
// an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// workerOptions returns the spectral options for this server's worker count.
func (s *Server) workerOptions() []spectral.Option {
	if s.workers > 0 {
		return []spectral.Option{spectral.WithWorkers(s.workers)}
	}
	return nil
}

// === Image arguments ===

// imageArgs is embedded by every tool that takes an image.
type imageArgs struct {
	Pixels []pixel.Packed `json:"pixels"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
}

// decode validates the dimensions and unpacks the pixels into storage order.
func (a *imageArgs) decode() ([]pixel.Pixel, error) {
	if err := pixel.CheckDimensions(len(a.Pixels), a.Width, a.Height); err != nil {
		return nil, err
	}
	img := make([]pixel.Pixel, len(a.Pixels))
	for i, c := range a.Pixels {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: pixel %d is %#x, above 0xFFFFFF", pixel.ErrInvalidColor, i, uint32(c))
		}
		img[i] = pixel.Unpack(c)
	}
	return img, nil
}

func decodeImageArgs(args json.RawMessage, a interface{}) error {
	if err := json.Unmarshal(args, a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Point Operation Handlers ===

func (s *Server) handlePoint(args json.RawMessage, op func([]pixel.Pixel) []pixel.Packed) (interface{}, error) {
	var a imageArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	return &ImageResult{Width: a.Width, Height: a.Height, Pixels: op(img)}, nil
}

type dynamicCompressionArgs struct {
	imageArgs
	Constant *float32 `json:"constant"`
	Gamma    *float32 `json:"gamma"`
}

func (s *Server) handleDynamicCompression(args json.RawMessage) (interface{}, error) {
	var a dynamicCompressionArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	constant, gamma := float32(1), float32(1)
	if a.Constant != nil {
		constant = *a.Constant
	}
	if a.Gamma != nil {
		gamma = *a.Gamma
	}

	out := pointops.DynamicCompression(img, constant, gamma)
	return &ImageResult{Width: a.Width, Height: a.Height, Pixels: out}, nil
}

type splitChannelArgs struct {
	imageArgs
	Channel string `json:"channel"`
}

func (s *Server) handleSplitChannel(args json.RawMessage) (interface{}, error) {
	var a splitChannelArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	var ch int
	switch a.Channel {
	case "blue", "b":
		ch = pixel.Blue
	case "green", "g":
		ch = pixel.Green
	case "red", "r", "":
		ch = pixel.Red
	default:
		return nil, fmt.Errorf("%w: %q", pointops.ErrInvalidChannel, a.Channel)
	}

	out, err := pointops.SplitChannel(img, ch)
	if err != nil {
		return nil, err
	}
	return &ImageResult{Width: a.Width, Height: a.Height, Pixels: out}, nil
}

type resizeArgs struct {
	imageArgs
	NewWidth  int `json:"new_width"`
	NewHeight int `json:"new_height"`
}

func (s *Server) handleResize(args json.RawMessage) (interface{}, error) {
	var a resizeArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	out, err := imaging.ResizeNearest(img, a.Width, a.Height, a.NewWidth, a.NewHeight)
	if err != nil {
		return nil, err
	}
	return &ImageResult{Width: a.NewWidth, Height: a.NewHeight, Pixels: out}, nil
}

// === Window Filter Handlers ===

type convolveArgs struct {
	imageArgs
	Kernel []float32 `json:"kernel"`
	Preset string    `json:"preset"`
}

// kernelPreset resolves a named kernel.
func kernelPreset(name string) ([]float32, error) {
	switch name {
	case "identity":
		return filter.Identity3(), nil
	case "box3":
		return filter.Box(3), nil
	case "box5":
		return filter.Box(5), nil
	case "gaussian5":
		return filter.Gaussian5(), nil
	case "sobel_x":
		return filter.SobelX(), nil
	case "sobel_y":
		return filter.SobelY(), nil
	case "laplacian":
		return filter.Laplacian(), nil
	default:
		return nil, fmt.Errorf("%w: unknown preset %q", filter.ErrInvalidKernel, name)
	}
}

func (s *Server) handleConvolve(args json.RawMessage) (interface{}, error) {
	var a convolveArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	kernel := a.Kernel
	if a.Preset != "" {
		if len(kernel) > 0 {
			return nil, errors.New("kernel and preset are mutually exclusive")
		}
		if kernel, err = kernelPreset(a.Preset); err != nil {
			return nil, err
		}
	}

	out, err := filter.Convolve(img, kernel, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	side, _ := filter.KernelSide(len(kernel))
	w, h := filter.OutputSize(side, a.Width, a.Height)
	return &ImageResult{Width: w, Height: h, Pixels: out}, nil
}

func (s *Server) handleSobel(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	out, err := filter.Sobel(img, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	w, h := filter.OutputSize(3, a.Width, a.Height)
	return &ImageResult{Width: w, Height: h, Pixels: out}, nil
}

type orderStatArgs struct {
	imageArgs
	Distance *int `json:"distance"`
}

func (s *Server) handleOrderStat(args json.RawMessage, stat filter.Statistic) (interface{}, error) {
	var a orderStatArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	return runOrderStat(&a, stat)
}

type namedOrderStatArgs struct {
	orderStatArgs
	Statistic string `json:"statistic"`
}

func (s *Server) handleNamedOrderStat(args json.RawMessage) (interface{}, error) {
	var a namedOrderStatArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Statistic == "" {
		a.Statistic = filter.Median.String()
	}
	stat, err := filter.ParseStatistic(a.Statistic)
	if err != nil {
		return nil, err
	}
	return runOrderStat(&a.orderStatArgs, stat)
}

func runOrderStat(a *orderStatArgs, stat filter.Statistic) (interface{}, error) {
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	distance := 1
	if a.Distance != nil {
		distance = *a.Distance
	}

	out, err := filter.OrderStat(img, distance, a.Width, a.Height, stat)
	if err != nil {
		return nil, err
	}
	// OrderStat has bounded distance by the image size, so the side cannot overflow.
	w, h := filter.OutputSize(2*distance+1, a.Width, a.Height)
	return &ImageResult{Width: w, Height: h, Pixels: out}, nil
}

// === Threshold Handlers ===

func (s *Server) handleOtsu(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	t, err := threshold.Otsu(img, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return &ThresholdResult{Threshold: t}, nil
}

type thresholdArgs struct {
	imageArgs
	// Threshold is computed with Otsu's method when omitted.
	Threshold *int `json:"threshold"`
}

// explicit returns the caller's threshold; ok is false when it was omitted.
func (a *thresholdArgs) explicit() (t uint8, ok bool, err error) {
	if a.Threshold == nil {
		return 0, false, nil
	}
	if *a.Threshold < 0 || *a.Threshold > 255 {
		return 0, false, fmt.Errorf("threshold must be in [0,255], got %d", *a.Threshold)
	}
	return uint8(*a.Threshold), true, nil
}

func (s *Server) handleBinarize(args json.RawMessage) (interface{}, error) {
	var a thresholdArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	t, ok, err := a.explicit()
	if err != nil {
		return nil, err
	}

	var out []pixel.Packed
	if ok {
		out = threshold.Binarize(img, t)
	} else if out, t, err = threshold.Auto(img, a.Width, a.Height); err != nil {
		return nil, err
	}
	return &ImageResult{Width: a.Width, Height: a.Height, Pixels: out, Threshold: &t}, nil
}

func (s *Server) handleLimiarize(args json.RawMessage) (interface{}, error) {
	var a thresholdArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}
	t, ok, err := a.explicit()
	if err != nil {
		return nil, err
	}
	if !ok {
		if t, err = threshold.Otsu(img, a.Width, a.Height); err != nil {
			return nil, err
		}
	}
	return &ImageResult{Width: a.Width, Height: a.Height, Pixels: threshold.Limiarize(img, t), Threshold: &t}, nil
}

// === Frequency Domain Handlers ===

// spectrumArgs names a spectrum either by id or inline.
type spectrumArgs struct {
	SpectrumID   string    `json:"spectrum_id"`
	Coefficients []float32 `json:"coefficients"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`

	IncludeCoefficients bool `json:"include_coefficients"`
}

// resolve returns the referenced spectrum.
func (s *Server) resolve(a *spectrumArgs) (*Spectrum, error) {
	if a.SpectrumID != "" {
		return s.store.Get(a.SpectrumID)
	}
	if err := pixel.CheckDimensions(len(a.Coefficients), a.Width, a.Height); err != nil {
		return nil, err
	}
	return &Spectrum{Width: a.Width, Height: a.Height, Coefficients: a.Coefficients}, nil
}

// keep stores a transform result and builds its reply.
func (s *Server) keep(res *spectral.Result, width, height int, echo bool) *SpectrumResult {
	id := s.store.Put(&Spectrum{Width: width, Height: height, Coefficients: res.Coefficients})
	out := &SpectrumResult{
		SpectrumID: id,
		Width:      width,
		Height:     height,
		Visual:     res.Visual,
	}
	if echo {
		out.Coefficients = res.Coefficients
	}
	return out
}

type dctArgs struct {
	imageArgs
	IncludeCoefficients bool `json:"include_coefficients"`
}

func (s *Server) handleDCT(args json.RawMessage) (interface{}, error) {
	var a dctArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := a.decode()
	if err != nil {
		return nil, err
	}

	res, err := spectral.DCT(img, a.Width, a.Height, s.workerOptions()...)
	if err != nil {
		return nil, err
	}
	return s.keep(res, a.Width, a.Height, a.IncludeCoefficients), nil
}

func (s *Server) handleIDCT(args json.RawMessage) (interface{}, error) {
	var a spectrumArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	sp, err := s.resolve(&a)
	if err != nil {
		return nil, err
	}

	out, err := spectral.IDCT(sp.Coefficients, sp.Width, sp.Height, s.workerOptions()...)
	if err != nil {
		return nil, err
	}
	return &ImageResult{Width: sp.Width, Height: sp.Height, Pixels: out}, nil
}

type maskArgs struct {
	spectrumArgs
	Radius int `json:"radius"`
}

func (s *Server) handleMask(args json.RawMessage, mask func([]float32, int, int, int) (*spectral.Result, error)) (interface{}, error) {
	var a maskArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	sp, err := s.resolve(&a.spectrumArgs)
	if err != nil {
		return nil, err
	}

	res, err := mask(sp.Coefficients, sp.Width, sp.Height, a.Radius)
	if err != nil {
		return nil, err
	}
	return s.keep(res, sp.Width, sp.Height, a.IncludeCoefficients), nil
}

func (s *Server) handleFreqNormalize(args json.RawMessage) (interface{}, error) {
	var a spectrumArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}
	sp, err := s.resolve(&a)
	if err != nil {
		return nil, err
	}
	return &ImageResult{Width: sp.Width, Height: sp.Height, Pixels: spectral.Normalize(sp.Coefficients)}, nil
}

type spectrumEvictArgs struct {
	SpectrumID string `json:"spectrum_id"`
	All        bool   `json:"all"`
}

func (s *Server) handleSpectrumEvict(args json.RawMessage) (interface{}, error) {
	var a spectrumEvictArgs
	if err := decodeImageArgs(args, &a); err != nil {
		return nil, err
	}

	if a.All {
		n := s.store.Len()
		s.store.Clear()
		return map[string]interface{}{"evicted": n}, nil
	}
	if !s.store.Evict(a.SpectrumID) {
		return nil, fmt.Errorf("unknown spectrum: %s", a.SpectrumID)
	}
	return map[string]interface{}{"evicted": 1}, nil
}
