// seehuhn.de/go/markup - annotation overlays for rendered documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package annotation

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
	"strconv"
	"sync"

	"seehuhn.de/go/geom/vec"
)

// Store is the ordered collection of annotations of one viewing session.
//
// Annotations are kept in creation order.  This is the only order the
// store knows about: list views and overlays both draw in this order, so
// that later annotations paint over earlier ones.
//
// All methods are safe for concurrent use.  Values returned by the store
// are copies; modifying them does not affect the store.
type Store struct {
	mu    sync.Mutex
	items []Annotation
	index map[string]int // id -> position in items

	newID    func() string
	fallback func() string
	used     map[string]struct{}
}

// maxIDAttempts bounds the calls to a custom id generator per new
// annotation, before the built-in generator takes over.
const maxIDAttempts = 16

// NewStore returns an empty store.
//
// If newID is nil, identifiers consist of a random session prefix and a
// sequence number.  A custom newID may be supplied for tests; identifiers
// it returns which were used before are skipped, so that an id is never
// reused, even after the annotation carrying it has been removed.  If newID
// keeps returning used or empty identifiers, the built-in scheme is used
// instead.
func NewStore(newID func() string) *Store {
	if newID == nil {
		newID = sequentialIDs()
	}
	return &Store{
		index: make(map[string]int),
		newID: newID,
		used:  make(map[string]struct{}),
	}
}

// sequentialIDs returns an id generator of the form "<prefix>-<n>".
func sequentialIDs() func() string {
	var buf [6]byte
	_, _ = rand.Read(buf[:])
	prefix := hex.EncodeToString(buf[:])
	var n uint64
	return func() string {
		n++
		return prefix + "-" + strconv.FormatUint(n, 10)
	}
}

// Create validates d, appends a new annotation to the end of the store and
// returns it.
func (s *Store) Create(d Draft) (Annotation, error) {
	if err := d.Check(); err != nil {
		return Annotation{}, err
	}

	a := Annotation{
		Page:    d.Page,
		Kind:    d.Kind,
		Origin:  d.Origin,
		Extent:  d.Extent,
		Text:    d.Text,
		Comment: d.Comment,
		Color:   d.Color,
	}
	switch d.Kind {
	case Highlight:
		a.Outline = clonePath(d.Outline)
	case Note:
		a.Extent = vec.Vec2{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.freshID()
	s.index[a.ID] = len(s.items)
	s.items = append(s.items, a)
	return a.clone(), nil
}

// freshID must be called with s.mu held.
func (s *Store) freshID() string {
	for range maxIDAttempts {
		if id := s.newID(); s.claim(id) {
			return id
		}
	}
	if s.fallback == nil {
		s.fallback = sequentialIDs()
	}
	for {
		// the sequence number grows, so this terminates
		if id := s.fallback(); s.claim(id) {
			return id
		}
	}
}

func (s *Store) claim(id string) bool {
	if _, seen := s.used[id]; seen || id == "" {
		return false
	}
	s.used[id] = struct{}{}
	return true
}

// Update applies p to the annotation with the given id.
// If no such annotation exists, Update does nothing and returns false.
func (s *Store) Update(id string, p Patch) (Annotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Annotation{}, false
	}
	if p.Comment != nil {
		s.items[i].Comment = *p.Comment
	}
	return s.items[i].clone(), true
}

// UpdateComment replaces the comment of an annotation.
// If no such annotation exists, UpdateComment does nothing.
func (s *Store) UpdateComment(id, comment string) (Annotation, bool) {
	return s.Update(id, Patch{Comment: &comment})
}

// Remove deletes the annotation with the given id and returns it.
// If no such annotation exists, Remove does nothing and returns false.
func (s *Store) Remove(id string) (Annotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Annotation{}, false
	}
	a := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	return a, true
}

// Get returns the annotation with the given id.
func (s *Store) Get(id string) (Annotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Annotation{}, false
	}
	return s.items[i].clone(), true
}

// ByPage returns the annotations on the given page, in store order.
func (s *Store) ByPage(page int) []Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []Annotation
	for _, a := range s.items {
		if a.Page == page {
			res = append(res, a.clone())
		}
	}
	return res
}

// All returns all annotations, in store order.
func (s *Store) All() []Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]Annotation, len(s.items))
	for i, a := range s.items {
		res[i] = a.clone()
	}
	return res
}

// Len returns the number of annotations in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
