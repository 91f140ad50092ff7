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

import "github.com/dslab-sst/sst/predicate"

// Snapshot is a frozen, detached copy of every row in a table at the
// moment GetSnapshot was called. Subsequent RDMA writes to the live table
// cannot affect it. That's property 3 in the test suite, and the whole
// reason it exists (§4.9, §5: "aggregate reads of multi-field values must
// go through get_snapshot()").
type Snapshot[R any, N Enum] struct {
	layout *RowLayout
	chain  *predicate.Chain[R]
	rows   [][]byte
}

// NumRows returns N, the group size at the moment of the snapshot.
func (s *Snapshot[R, N]) NumRows() int { return len(s.rows) }

// Get decodes and returns the user row at index i as it stood at the
// moment of the snapshot.
func (s *Snapshot[R, N]) Get(i int) R {
	row := &internalRow{buf: s.rows[i]}
	return getUser[R](row, s.layout)
}

// Ext returns the value of extension slot at index i as it stood at the
// moment of the snapshot.
func (s *Snapshot[R, N]) Ext(i, slot int) any {
	row := &internalRow{buf: s.rows[i]}
	return row.getExt(s.layout, slot)
}

// CallNamedPredicate looks the name up in the finalized chain and applies
// its getter to row i within this snapshot, as Table's method of the same
// name does against the live table. Unlike Table's, it does not fall back
// to named functions: a name with no derived column returns ErrUnknownName.
func (s *Snapshot[R, N]) CallNamedPredicate(name N, i int) (any, error) {
	slot, ok := s.chain.ByTag[int(name)]
	if !ok {
		return nil, ErrUnknownName
	}
	return s.chain.Descriptors[slot].Getter(snapshotRowSet[R, N]{s}, i), nil
}

// snapshotRowSet adapts a Snapshot to predicate.RowSet, letting a getter
// written against the predicate package's abstractions run over frozen
// data exactly as it runs over the live table.
type snapshotRowSet[R any, N Enum] struct {
	s *Snapshot[R, N]
}

func (rs snapshotRowSet[R, N]) NumRows() int        { return rs.s.NumRows() }
func (rs snapshotRowSet[R, N]) User(i int) R        { return rs.s.Get(i) }
func (rs snapshotRowSet[R, N]) Ext(i, slot int) any { return rs.s.Ext(i, slot) }
