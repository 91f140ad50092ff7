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

package predicate

import (
	"errors"
	"fmt"
	"sort"
)

// ErrConfig is wrapped by every error Finalize returns; callers can match
// it with errors.Is to distinguish predicate configuration mistakes from
// other failure classes.
var ErrConfig = errors.New("predicate: configuration error")

// Column is the type-erased view of a Builder that Finalize consumes. Any
// *Builder[R, V], for any V, satisfies Column[R]: only R needs to match
// across the columns handed to one table.
type Column[R any] interface {
	descriptors() []Descriptor[R]
}

func (b *Builder[R, V]) descriptors() []Descriptor[R] {
	return b.chainCopy()
}

// offsetRowSet rebases chain-local slot addressing onto the table's global
// extension layout, so a Descriptor's Updater/Getter, written against
// indices local to its own chain, can run unmodified once its chain has
// been concatenated after other columns' chains.
type offsetRowSet[R any] struct {
	inner RowSet[R]
	base  int
}

func (o offsetRowSet[R]) NumRows() int      { return o.inner.NumRows() }
func (o offsetRowSet[R]) User(i int) R      { return o.inner.User(i) }
func (o offsetRowSet[R]) Ext(i, slot int) any {
	return o.inner.Ext(i, o.base+slot)
}

// Chain is the finalized, table-ready form of one or more Builders: a flat
// list of Descriptors addressed by global slot index, plus a lookup from
// name tag to global slot for every NamedHead descriptor.
type Chain[R any] struct {
	Descriptors []Descriptor[R]
	ByTag       map[int]int
}

// Finalize concatenates the given columns' chains into one Chain, checking
// the invariants spec'd for table construction:
//   - every extension tag is >= 0 (no unnamed column may be registered),
//   - the set of distinct tags is dense and starts at zero,
//   - no two independently-named heads share a tag.
func Finalize[R any](columns ...Column[R]) (*Chain[R], error) {
	var flat []Descriptor[R]
	byTag := make(map[int]int)

	for ci, col := range columns {
		base := len(flat)
		ds := col.descriptors()
		for li, d := range ds {
			if d.Tag < 0 {
				return nil, fmt.Errorf("%w: derived column %d has an unnamed extension at chain position %d", ErrConfig, ci, li)
			}
			globalSlot := base + li
			orig := d
			d.Updater = func(rows RowSet[R], me int) any {
				return orig.Updater(offsetRowSet[R]{rows, base}, me)
			}
			d.Getter = func(rows RowSet[R], row int) any {
				return orig.Getter(offsetRowSet[R]{rows, base}, row)
			}
			flat = append(flat, d)
			if d.NamedHead {
				if _, dup := byTag[d.Tag]; dup {
					return nil, fmt.Errorf("%w: two named derived columns share tag %d", ErrConfig, d.Tag)
				}
				byTag[d.Tag] = globalSlot
			}
		}
	}

	distinct := make(map[int]struct{})
	for _, d := range flat {
		distinct[d.Tag] = struct{}{}
	}
	tags := make([]int, 0, len(distinct))
	for t := range distinct {
		tags = append(tags, t)
	}
	sort.Ints(tags)
	for i, t := range tags {
		if t != i {
			return nil, fmt.Errorf("%w: derived column tags must be dense starting at 0, got %v", ErrConfig, tags)
		}
	}

	return &Chain[R]{Descriptors: flat, ByTag: byTag}, nil
}
