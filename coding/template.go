// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A TemplateStore caches frame templates by version.  Frames passed to
// Put and returned by Get are shared and must not be modified.
// Implementations must be safe for concurrent use.
type TemplateStore interface {
	Get(Version) (*Frame, bool)
	Put(Version, *Frame)
}

// MemoryStore is an in-memory TemplateStore.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[Version]*Frame
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[Version]*Frame)}
}

func (s *MemoryStore) Get(v Version) (*Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.m[v]
	return f, ok
}

func (s *MemoryStore) Put(v Version, f *Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[v] = f
}

// Len returns the number of stored templates.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Template returns a modifiable copy of the template of version v,
// taken from store if present there.  Templates built are added to
// store.  A nil store is valid.
func Template(v Version, store TemplateStore) (*Frame, error) {
	if store != nil {
		if f, ok := store.Get(v); ok && f.Version == v {
			return f.Clone(), nil
		}
	}
	f, err := BuildTemplate(v)
	if err != nil {
		return nil, err
	}
	if store != nil {
		store.Put(v, f.Clone())
	}
	return f, nil
}

// FormatBits returns the masked 15 bit format information for level l
// and mask pattern mask.
func FormatBits(l Level, mask int) (uint16, error) {
	if err := l.check(); err != nil {
		return 0, err
	}
	if mask < 0 || mask >= NumMasks {
		return 0, &ParamError{"mask", mask}
	}
	return formatBits[l][mask], nil
}
