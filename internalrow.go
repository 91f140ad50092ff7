/*
 *
 * Copyright 2025 The SST Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 */

package sst

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"unsafe"

	"github.com/dslab-sst/sst/predicate"
)

// internalRow is one row's raw bytes: the user row's bit pattern followed
// by every extension slot, addressed through RowLayout. A mutex guards
// the byte slice itself rather than any individual field, matching the
// discipline in §5: the local node's application threads own the user
// bytes, the observer owns the extension bytes, and remote mirrors are
// written only by simulated one-sided operations, but Go's memory model
// still requires a synchronization point between a writer and a reader,
// so a lock stands in for the fence a real NIC's completion queue would
// give for free. The lock covers only accesses made through internalRow's
// own methods; a transport copying bytes into a mirror buffer does not
// take it.
type internalRow struct {
	mu  sync.RWMutex
	buf []byte
}

func newInternalRow(layout *RowLayout) *internalRow {
	return &internalRow{buf: make([]byte, layout.TotalSize)}
}

// newInternalRowFromBuf wraps a buffer owned by the transport fabric, so
// that a posted remote write lands directly in the bytes this row reads
// back. There is no separate copy step between "the NIC wrote it" and
// "the table sees it", matching the one-sided-write contract in §4.1.
func newInternalRowFromBuf(buf []byte) *internalRow {
	return &internalRow{buf: buf}
}

// snapshotBytes returns a private copy of the row's current bytes.
func (r *internalRow) snapshotBytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]byte, len(r.buf))
	copy(out, r.buf)
	return out
}

// writeAt overwrites buf[offset:offset+len(data)].
func (r *internalRow) writeAt(offset int, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy(r.buf[offset:offset+len(data)], data)
}

func setUser[R any](r *internalRow, layout *RowLayout, v R) {
	src := unsafe.Slice((*byte)(unsafe.Pointer(&v)), layout.UserSize)
	r.writeAt(0, src)
}

func getUser[R any](r *internalRow, layout *RowLayout) R {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var v R
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&v)), layout.UserSize)
	copy(dst, r.buf[:layout.UserSize])
	return v
}

func (r *internalRow) getExt(layout *RowLayout, slot int) any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	off := layout.ExtOffsets[slot]
	return decodeExt(layout.ExtTypes[slot], r.buf[off:off+layout.ExtTypes[slot].Size()])
}

func (r *internalRow) setExt(layout *RowLayout, slot int, v any) {
	off := layout.ExtOffsets[slot]
	typ := layout.ExtTypes[slot]
	data := encodeExt(typ, v)
	r.writeAt(off, data)
}

func decodeExt(typ predicate.ExtType, b []byte) any {
	switch typ {
	case predicate.ExtBool:
		return b[0] != 0
	case predicate.ExtInt32:
		return int32(binary.LittleEndian.Uint32(b))
	case predicate.ExtInt64:
		return int64(binary.LittleEndian.Uint64(b))
	case predicate.ExtUint32:
		return binary.LittleEndian.Uint32(b)
	case predicate.ExtUint64:
		return binary.LittleEndian.Uint64(b)
	case predicate.ExtFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	default:
		panic("sst: unknown extension type in decodeExt")
	}
}

func encodeExt(typ predicate.ExtType, v any) []byte {
	b := make([]byte, typ.Size())
	switch typ {
	case predicate.ExtBool:
		if v.(bool) {
			b[0] = 1
		}
	case predicate.ExtInt32:
		binary.LittleEndian.PutUint32(b, uint32(v.(int32)))
	case predicate.ExtInt64:
		binary.LittleEndian.PutUint64(b, uint64(v.(int64)))
	case predicate.ExtUint32:
		binary.LittleEndian.PutUint32(b, v.(uint32))
	case predicate.ExtUint64:
		binary.LittleEndian.PutUint64(b, v.(uint64))
	case predicate.ExtFloat64:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v.(float64)))
	default:
		panic("sst: unknown extension type in encodeExt")
	}
	return b
}

// readConsistent re-reads a row's bytes until two consecutive reads agree
// or attempts is exhausted, per the design notes' guidance that aggregate
// reads spanning more than one field must tolerate torn mirrors rather
// than trust a single read. It is what GetConsistent on Table is built
// on; get_snapshot's single-pass copy is the stronger guarantee for a
// whole-table view.
func readConsistent(r *internalRow, attempts int) []byte {
	prev := r.snapshotBytes()
	for i := 1; i < attempts; i++ {
		next := r.snapshotBytes()
		if bytes.Equal(prev, next) {
			return next
		}
		prev = next
	}
	return prev
}
