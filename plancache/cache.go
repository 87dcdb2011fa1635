// Copyright 2025 The Quern Authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package plancache caches serialized plan fragments keyed
// by expression digest.
//
// The digest is the canonical interning key for expressions
// (see package expr); two queries whose predicates were
// constructed identically hit the same entry. Entries are
// stored zstd-compressed with a blake2b content sum that is
// verified on every read.
package plancache

import (
	"container/list"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"github.com/quern-db/quern/expr"
)

type entry struct {
	id  uuid.UUID
	sum [blake2b.Size256]byte
	// zstd-compressed payload and its decoded size
	packed []byte
	size   int

	elem *list.Element // position in the recency list
}

// Cache is a byte-budgeted, digest-keyed cache of plan
// fragment blobs. All methods are safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	recency *list.List // front = most recent; values are keys
	bytes   int64
	max     int64

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New returns a Cache holding at most maxBytes of
// compressed payload; maxBytes <= 0 means unbounded.
func New(maxBytes int64) *Cache {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		panic(err)
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
	if err != nil {
		panic(err)
	}
	return &Cache{
		entries: make(map[string]*entry),
		recency: list.New(),
		max:     maxBytes,
		enc:     enc,
		dec:     dec,
	}
}

// Put stores blob under the digest of key, replacing any
// previous entry, and returns the entry id for log
// correlation. The blob is copied (compressed) before
// Put returns; the caller may reuse it.
func (c *Cache) Put(key expr.Node, blob []byte) (uuid.UUID, error) {
	if key == nil {
		return uuid.Nil, fmt.Errorf("plancache: nil key")
	}
	digest := key.String()
	packed := c.enc.EncodeAll(blob, nil)
	e := &entry{
		id:     uuid.New(),
		sum:    blake2b.Sum256(blob),
		packed: packed,
		size:   len(blob),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.entries[digest]; ok {
		c.bytes -= int64(len(prev.packed))
		c.recency.Remove(prev.elem)
	}
	e.elem = c.recency.PushFront(digest)
	c.entries[digest] = e
	c.bytes += int64(len(packed))
	c.evict()
	return e.id, nil
}

// Get returns the blob stored under the digest of key.
// The second return is false when there is no entry.
// A non-nil error means the entry was corrupted in
// memory; the entry is dropped.
func (c *Cache) Get(key expr.Node) ([]byte, bool, error) {
	if key == nil {
		return nil, false, nil
	}
	digest := key.String()
	c.mu.Lock()
	e, ok := c.entries[digest]
	if ok {
		c.recency.MoveToFront(e.elem)
	}
	c.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	blob, err := c.dec.DecodeAll(e.packed, make([]byte, 0, e.size))
	if err == nil && len(blob) != e.size {
		err = fmt.Errorf("decoded %d bytes, recorded size %d", len(blob), e.size)
	}
	if err == nil && blake2b.Sum256(blob) != e.sum {
		err = fmt.Errorf("content sum mismatch")
	}
	if err != nil {
		c.drop(digest, e)
		return nil, false, fmt.Errorf("plancache: entry %s (key %q): %w", e.id, digest, err)
	}
	return blob, true, nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Bytes returns the compressed payload bytes held.
func (c *Cache) Bytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytes
}

func (c *Cache) drop(digest string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// the entry may have been replaced concurrently;
	// only remove the instance we inspected
	if cur, ok := c.entries[digest]; ok && cur == e {
		delete(c.entries, digest)
		c.recency.Remove(e.elem)
		c.bytes -= int64(len(e.packed))
	}
}

// evict removes least-recently-used entries until the
// byte budget is met. Called with c.mu held. The most
// recent entry always stays, even if it alone exceeds
// the budget.
func (c *Cache) evict() {
	if c.max <= 0 {
		return
	}
	for c.bytes > c.max && c.recency.Len() > 1 {
		back := c.recency.Back()
		digest := back.Value.(string)
		e := c.entries[digest]
		delete(c.entries, digest)
		c.recency.Remove(back)
		c.bytes -= int64(len(e.packed))
	}
}
