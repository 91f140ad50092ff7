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
	"unsafe"

	"github.com/dslab-sst/sst/predicate"
)

// RowLayout is the internal-row byte layout computed once at table
// construction: the user row's size, followed by one fixed-offset,
// fixed-size slot per extension in the finalized predicate chain. Every
// node in a group builds the identical chain from the identical column
// list, so RowLayout is byte-identical on every node. That is the layout
// agreement property the test suite checks (property 1).
type RowLayout struct {
	UserSize   int
	ExtOffsets []int
	ExtTypes   []predicate.ExtType
	TotalSize  int
}

// buildLayout lays extensions out in chain order immediately after the
// user row, with no padding: nothing in this design needs field
// alignment beyond byte addressability, since every accessor reads and
// writes through encoding/binary rather than through a Go struct
// pointer.
func buildLayout[R any](descriptors []predicate.Descriptor[R]) *RowLayout {
	userSize := int(unsafe.Sizeof(*new(R)))
	offsets := make([]int, len(descriptors))
	types := make([]predicate.ExtType, len(descriptors))

	off := userSize
	for i, d := range descriptors {
		offsets[i] = off
		types[i] = d.Type
		off += d.Type.Size()
	}

	return &RowLayout{
		UserSize:   userSize,
		ExtOffsets: offsets,
		ExtTypes:   types,
		TotalSize:  off,
	}
}

// NumExtensions returns the number of extension slots in the layout.
func (l *RowLayout) NumExtensions() int { return len(l.ExtOffsets) }
