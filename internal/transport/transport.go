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

// Package transport declares the boundary contract a shared state table
// relies on for one-sided replication. The RDMA verbs wrapper itself
// (queue pair setup, memory registration, real completion polling against
// a NIC) is treated as an external collaborator: this package only fixes
// the shape a caller must provide, so a Table can be built against a
// loopback simulator in tests (see the rdmasim subpackage) or against a
// real verbs binding in production without either side depending on the
// other.
package transport

import (
	"context"
	"errors"
)

// ErrFatal wraps every error a PeerTransport or Fabric returns. A fatal
// transport error is unrecoverable for the local node: callers abort
// rather than retry, since a partially completed one-sided operation can
// leave a mirror in an inconsistent state.
var ErrFatal = errors.New("transport: fatal error")

// PeerTransport is a single node's capability to reach exactly one other
// member of the group with one-sided operations. Implementations must
// treat every posted operation as independent: the transport gives no
// ordering guarantee between two distinct posted operations, and the
// destination offset always equals the source offset (the mirror and the
// source share one struct layout).
type PeerTransport interface {
	// PostRemoteWrite queues a one-sided write of the local row's bytes
	// [offset, offset+size) into the peer's mirror of this node's row.
	PostRemoteWrite(offset, size int) error

	// PostRemoteRead queues a one-sided read of the peer's row bytes
	// [offset, offset+size) into this node's mirror of that peer's row.
	PostRemoteRead(offset, size int) error

	// PollCompletion blocks until one previously posted operation on this
	// PeerTransport has completed.
	PollCompletion() error
}

// Fabric owns the per-peer transports and backing row memory for one
// table's group, plus the bootstrap barrier. RowBuffer(i) must return
// storage that is: for i == the local rank, writable by the caller and
// the source PostRemoteWrite reads from; for i != the local rank, the
// destination PostRemoteWrite/PostRemoteRead of this node's transports
// write into.
type Fabric interface {
	// RowBuffer returns the backing storage for row i, sized to exactly
	// the internal row's total layout size.
	RowBuffer(i int) []byte

	// Peer returns this node's transport to reach rank i. Peer(me) is
	// nil.
	Peer(i int) PeerTransport

	// Sync implements the bootstrap barrier: exchange one byte with
	// every other member, in descending rank order, blocking until every
	// peer has also called Sync.
	Sync(ctx context.Context) error

	// Close releases transport resources. Outstanding operations are
	// allowed to complete first.
	Close() error
}
