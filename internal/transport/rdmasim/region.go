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

package rdmasim

import "fmt"

// Region is a registered, fixed-size memory region: one row's worth of
// storage, either the local owner copy of a row or one node's mirror of
// a remote row.
type Region struct {
	mem []byte
}

// NewRegion allocates a zero-filled region of the given size.
func NewRegion(size int) (*Region, error) {
	mem, err := mmapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("rdmasim: allocate region: %w", err)
	}
	return &Region{mem: mem}, nil
}

// Bytes returns the region's backing storage. Callers may read and write
// it directly; rdmasim uses this as the InternalRow's raw storage so a
// Table's user-row and extension writes are exactly the bytes a
// PostRemoteWrite ships to a peer.
func (r *Region) Bytes() []byte {
	return r.mem
}

// Close releases the region.
func (r *Region) Close() error {
	if r.mem == nil {
		return nil
	}
	err := munmap(r.mem)
	r.mem = nil
	return err
}
