package server

import (
	"math"
	"sync"
	"testing"
)

func TestSpectrumStore_PutGet(t *testing.T) {
	s := NewSpectrumStore()
	sp := &Spectrum{Width: 2, Height: 1, Coefficients: []float32{1.5, -2}}

	id := s.Put(sp)
	if len(id) != 16 {
		t.Errorf("id %q: want 16 hex characters", id)
	}

	got, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != sp {
		t.Error("Get returned a different spectrum")
	}

	if _, err := s.Get("0000000000000000"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestSpectrumStore_ContentAddressed(t *testing.T) {
	s := NewSpectrumStore()

	a := s.Put(&Spectrum{Width: 2, Height: 1, Coefficients: []float32{1, 2}})
	b := s.Put(&Spectrum{Width: 2, Height: 1, Coefficients: []float32{1, 2}})
	if a != b {
		t.Errorf("identical spectra got ids %s and %s", a, b)
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}

	tests := []struct {
		name string
		sp   *Spectrum
	}{
		{"different coefficient", &Spectrum{Width: 2, Height: 1, Coefficients: []float32{1, 3}}},
		{"transposed shape", &Spectrum{Width: 1, Height: 2, Coefficients: []float32{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if id := spectrumID(tt.sp); id == a {
				t.Errorf("%s collides with the original id %s", tt.name, a)
			}
		})
	}

	// Ids hash the coefficient bits, so -0 and +0 are distinct spectra.
	pos := spectrumID(&Spectrum{Width: 1, Height: 1, Coefficients: []float32{0}})
	neg := spectrumID(&Spectrum{Width: 1, Height: 1, Coefficients: []float32{float32(math.Copysign(0, -1))}})
	if pos == neg {
		t.Error("-0 and +0 should hash differently")
	}
}

func TestSpectrumStore_EvictClear(t *testing.T) {
	s := NewSpectrumStore()
	id := s.Put(&Spectrum{Width: 1, Height: 1, Coefficients: []float32{7}})
	s.Put(&Spectrum{Width: 1, Height: 1, Coefficients: []float32{8}})

	if !s.Evict(id) {
		t.Error("Evict should report a stored spectrum")
	}
	if s.Evict(id) {
		t.Error("Evict should report a missing spectrum")
	}
	if s.Len() != 1 {
		t.Errorf("Len after evict: got %d, want 1", s.Len())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after clear: got %d, want 0", s.Len())
	}
}

func TestSpectrumStore_Concurrent(t *testing.T) {
	s := NewSpectrumStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := s.Put(&Spectrum{Width: 1, Height: 1, Coefficients: []float32{float32(i)}})
			if _, err := s.Get(id); err != nil {
				t.Errorf("spectrum %d lost: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 32 {
		t.Errorf("Len: got %d, want 32", s.Len())
	}
}
