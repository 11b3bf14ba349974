package repository

import (
	"context"
	"sort"
	"sync"
)

type memoryEntry[T any] struct {
	seq int64
	doc T
}

type memoryCollection[T any, PT EntityPtr[T]] struct {
	mu   sync.RWMutex
	seq  int64
	docs map[string]memoryEntry[T]
}

// NewMemoryCollection returns a process-local Collection, used for tests and
// single-node development.
func NewMemoryCollection[T any, PT EntityPtr[T]]() Collection[T] {
	return &memoryCollection[T, PT]{docs: make(map[string]memoryEntry[T])}
}

func (r *memoryCollection[T, PT]) Insert(_ context.Context, doc *T) error {
	stampNew(PT(doc), utcNow())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.docs[PT(doc).EntityMeta().ID] = memoryEntry[T]{seq: r.seq, doc: *doc}
	return nil
}

func (r *memoryCollection[T, PT]) FindByID(_ context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	doc := entry.doc
	return &doc, nil
}

func (r *memoryCollection[T, PT]) FindFirst(_ context.Context) (*T, error) {
	entries := r.sorted()
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	doc := entries[len(entries)-1].doc
	return &doc, nil
}

func (r *memoryCollection[T, PT]) List(_ context.Context, q PageQuery) ([]T, error) {
	entries := r.sorted()
	if q.Skip > len(entries) {
		q.Skip = len(entries)
	}
	entries = entries[q.Skip:]
	if q.Limit > 0 && q.Limit < len(entries) {
		entries = entries[:q.Limit]
	}
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.doc)
	}
	return out, nil
}

func (r *memoryCollection[T, PT]) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

func (r *memoryCollection[T, PT]) Replace(_ context.Context, doc *T) error {
	id := PT(doc).EntityMeta().ID
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	stampUpdate(PT(doc), utcNow())
	entry.doc = *doc
	r.docs[id] = entry
	return nil
}

func (r *memoryCollection[T, PT]) Delete(_ context.Context, id string) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.docs, id)
	doc := entry.doc
	return &doc, nil
}

// sorted returns entries newest first; insertion order breaks timestamp ties.
func (r *memoryCollection[T, PT]) sorted() []memoryEntry[T] {
	r.mu.RLock()
	entries := make([]memoryEntry[T], 0, len(r.docs))
	for _, e := range r.docs {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ci := PT(&entries[i].doc).EntityMeta().CreatedAt
		cj := PT(&entries[j].doc).EntityMeta().CreatedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return entries[i].seq > entries[j].seq
	})
	return entries
}
