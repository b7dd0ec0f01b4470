package server

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Spectrum is a coefficient grid kept by the server between tool calls.
type Spectrum struct {
	Width        int
	Height       int
	Coefficients []float32
}

// SpectrumStore keeps spectra produced by earlier tool calls so that later
// calls can reference them by id instead of resending every coefficient.
//
// Spectra are keyed by a content hash of their dimensions and coefficients:
// storing the same spectrum twice yields the same id and a single entry.
//
// SpectrumStore is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Entries stay in memory until removed with Evict or Clear.
type SpectrumStore struct {
	mu      sync.RWMutex
	spectra map[string]*Spectrum
}

// NewSpectrumStore creates an empty store.
func NewSpectrumStore() *SpectrumStore {
	return &SpectrumStore{
		spectra: make(map[string]*Spectrum),
	}
}

// Put stores sp and returns its id.
func (s *SpectrumStore) Put(sp *Spectrum) string {
	id := spectrumID(sp)

	s.mu.Lock()
	s.spectra[id] = sp
	s.mu.Unlock()

	return id
}

// Get returns the spectrum stored under id.
func (s *SpectrumStore) Get(id string) (*Spectrum, error) {
	s.mu.RLock()
	sp, ok := s.spectra[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown spectrum: %s", id)
	}
	return sp, nil
}

// Evict removes a spectrum and reports whether it was present.
func (s *SpectrumStore) Evict(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.spectra[id]
	delete(s.spectra, id)
	return ok
}

// Clear removes every stored spectrum.
func (s *SpectrumStore) Clear() {
	s.mu.Lock()
	s.spectra = make(map[string]*Spectrum)
	s.mu.Unlock()
}

// Len returns the number of stored spectra.
func (s *SpectrumStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.spectra)
}

// spectrumID hashes the dimensions and coefficient bits with xxHash64 and
// returns 16 hex characters.
func spectrumID(sp *Spectrum) string {
	buf := make([]byte, 8+4*len(sp.Coefficients))
	binary.LittleEndian.PutUint32(buf[0:], uint32(sp.Width))
	binary.LittleEndian.PutUint32(buf[4:], uint32(sp.Height))
	for i, c := range sp.Coefficients {
		binary.LittleEndian.PutUint32(buf[8+4*i:], math.Float32bits(c))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(buf))
}
