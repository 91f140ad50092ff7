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
	"context"

	"github.com/dslab-sst/sst/internal/transport"
)

// fakeRowStore backs a group of fakeFabrics that all share the same N row
// buffers directly, rather than copying between per-rank mirrors the way
// internal/transport/rdmasim does. That's a deliberate simplification for
// tests exercising predicate/observer semantics rather than transport
// semantics. See internal/transport/rdmasim's own tests for coverage of
// real copy-and-poll behavior.
type fakeRowStore struct {
	rows [][]byte
}

func newFakeRowStore(n, rowSize int) *fakeRowStore {
	rows := make([][]byte, n)
	for i := range rows {
		rows[i] = make([]byte, rowSize)
	}
	return &fakeRowStore{rows: rows}
}

type fakeFabric struct {
	store *fakeRowStore
}

func (f *fakeFabric) RowBuffer(i int) []byte                 { return f.store.rows[i] }
func (f *fakeFabric) Peer(i int) transport.PeerTransport     { return fakePeer{} }
func (f *fakeFabric) Sync(ctx context.Context) error         { return nil }
func (f *fakeFabric) Close() error                           { return nil }

type fakePeer struct{}

func (fakePeer) PostRemoteWrite(offset, size int) error { return nil }
func (fakePeer) PostRemoteRead(offset, size int) error  { return nil }
func (fakePeer) PollCompletion() error                  { return nil }
