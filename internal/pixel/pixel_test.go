package pixel

import (
	"errors"
	"testing"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name string
		p    Pixel
		want Packed
	}{
		{"black", Pixel{0, 0, 0}, 0x000000},
		{"white", Pixel{255, 255, 255}, 0xFFFFFF},
		{"blue", Pixel{255, 0, 0}, 0x0000FF},
		{"red", Pixel{0, 0, 255}, 0xFF0000},
		{"mixed", Pixel{0x33, 0x22, 0x11}, 0x112233},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pack(tt.p); got != tt.want {
				t.Errorf("Pack(%v) = %#06x, want %#06x", tt.p, got, tt.want)
			}
			if got := Unpack(tt.want); got != tt.p {
				t.Errorf("Unpack(%#06x) = %v, want %v", tt.want, got, tt.p)
			}
		})
	}
}

func TestPacked_Channels(t *testing.T) {
	r, g, b := RGB(10, 20, 30).Channels()
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("Channels: got (%d,%d,%d), want (10,20,30)", r, g, b)
	}
	if Gray(7) != RGB(7, 7, 7) {
		t.Errorf("Gray(7) = %#06x", Gray(7))
	}
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		p    Pixel
		want uint8
	}{
		{Pixel{0, 0, 0}, 0},
		{Pixel{255, 255, 255}, 255},
		{Pixel{1, 1, 2}, 1},   // 1.33
		{Pixel{1, 2, 2}, 2},   // 1.67
		{Pixel{10, 20, 30}, 20},
		{Pixel{255, 255, 254}, 255},
	}

	for _, tt := range tests {
		if got := Luminance(tt.p); got != tt.want {
			t.Errorf("Luminance(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestCheckDimensions(t *testing.T) {
	tests := []struct {
		name    string
		n, w, h int
		wantErr bool
	}{
		{"exact", 12, 4, 3, false},
		{"short buffer", 11, 4, 3, true},
		{"long buffer", 13, 4, 3, true},
		{"zero width", 0, 0, 3, true},
		{"zero height", 0, 4, 0, true},
		{"negative", 4, -2, -2, true},
		{"product wraps to zero", 0, 1 << 32, 1 << 32, true},
		{"product wraps to buffer length", 1 << 32, 1<<32 + 1, 1 << 32, true},
		{"single column", 5, 1, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDimensions(tt.n, tt.w, tt.h)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Errorf("expected ErrInvalidDimensions, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPackAll(t *testing.T) {
	img := []Pixel{{1, 2, 3}, {4, 5, 6}}
	got := PackAll(img)
	if len(got) != 2 || got[0] != RGB(3, 2, 1) || got[1] != RGB(6, 5, 4) {
		t.Errorf("PackAll: got %v", got)
	}
}

func TestPacked_Valid(t *testing.T) {
	tests := []struct {
		c    Packed
		want bool
	}{
		{Black, true},
		{White, true},
		{RGB(1, 2, 3), true},
		{0x1000000, false},
		{0xFF123456, false},
	}
	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Errorf("Packed(%#x).Valid(): got %v, want %v", uint32(tt.c), got, tt.want)
		}
	}
}
