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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dslab-sst/sst/internal/logging"
	"github.com/dslab-sst/sst/internal/transport"
	"github.com/dslab-sst/sst/predicate"
)

type lifecycleState int32

const (
	stateConfigured lifecycleState = iota
	stateConnected
	stateRunning
	stateDraining
	stateDestroyed
)

// Table is a replicated Shared State Table over row type R, whose derived
// columns may be looked up by any value of the caller's enumeration N.
// The zero value is not usable; construct with New.
type Table[R any, N Enum] struct {
	group  *Group
	mode   Mode
	fabric transport.Fabric
	layout *RowLayout
	chain  *predicate.Chain[R]
	named  *namedFunctionRegistry[R, N]
	rows   []*internalRow

	predicates predicateRegistry[R, N]
	logger     *logging.Logger

	state  atomic.Int32
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New validates the derived-column chain, allocates the internal-row
// layout against the given fabric's row buffers, and returns a table in
// state Configured. Callers must still call Connect (to run the initial
// barrier) and Start (to launch the background workers) before using it.
func New[R any, N Enum](group *Group, opts ...Option[R, N]) (*Table[R, N], error) {
	cfg := defaultConfig[R, N]()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.fabric == nil {
		return nil, configErrorf("no transport fabric configured, use WithFabric")
	}

	chain, err := predicate.Finalize(cfg.columns...)
	if err != nil {
		return nil, err
	}
	layout := buildLayout(chain.Descriptors)

	rows := make([]*internalRow, group.NumRows())
	for i := 0; i < group.NumRows(); i++ {
		buf := cfg.fabric.RowBuffer(i)
		if len(buf) != layout.TotalSize {
			return nil, configErrorf(
				"fabric row buffer %d has size %d, want %d to match the internal row layout",
				i, len(buf), layout.TotalSize)
		}
		rows[i] = newInternalRowFromBuf(buf)
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.New(cfg.logWriter, fmt.Sprintf("[rank %d] ", group.LocalIndex()), cfg.logLevel)
	}

	t := &Table[R, N]{
		group:  group,
		mode:   cfg.mode,
		fabric: cfg.fabric,
		layout: layout,
		chain:  chain,
		named:  newNamedFunctionRegistry[R, N](),
		rows:   rows,
		logger: logger,
		stopCh: make(chan struct{}),
	}
	for name, f := range cfg.namedFuncs {
		if err := t.named.register(name, f); err != nil {
			return nil, err
		}
	}
	t.state.Store(int32(stateConfigured))
	return t, nil
}

// Connect runs the initial group-wide barrier and transitions the table
// from Configured to Connected (§4.10). It must be called before Start.
func (t *Table[R, N]) Connect(ctx context.Context) error {
	if err := t.fabric.Sync(ctx); err != nil {
		return fatalTransportf("connect", err)
	}
	t.state.Store(int32(stateConnected))
	return nil
}

// Start launches the background observer, and in Reads mode the reader
// loop, transitioning the table to Running.
func (t *Table[R, N]) Start() {
	t.state.Store(int32(stateRunning))
	t.wg.Add(1)
	go t.observeLoop()
	if t.mode == ModeReads {
		t.wg.Add(1)
		go t.readLoop()
	}
}

// Close sets the shutdown flag, waits for background workers to observe
// it and exit, then releases the transport. Outstanding operations are
// allowed to complete first. Close does not cancel them.
func (t *Table[R, N]) Close() error {
	t.state.Store(int32(stateDraining))
	close(t.stopCh)
	t.wg.Wait()
	err := t.fabric.Close()
	t.state.Store(int32(stateDestroyed))
	if err != nil {
		return fatalTransportf("close", err)
	}
	return nil
}

func (t *Table[R, N]) draining() bool {
	return lifecycleState(t.state.Load()) >= stateDraining
}

// LocalIndex returns this process's rank within the group.
func (t *Table[R, N]) LocalIndex() int { return t.group.LocalIndex() }

// NumRows returns N, the group size.
func (t *Table[R, N]) NumRows() int { return t.group.NumRows() }

// Get returns the user row currently mirrored at index i. For i equal to
// LocalIndex this is always current; for any other index it may be torn
// with a concurrent remote write landing (§5); use GetConsistent for a
// value that is re-read until two reads agree.
func (t *Table[R, N]) Get(i int) R { return getUser[R](t.rows[i], t.layout) }

// GetConsistent re-reads row i until two consecutive reads agree
// byte-for-byte or attempts is exhausted, tolerating a mirror caught
// mid-write. If attempts runs out first, the last read is returned as is,
// with no indication that it may be torn.
func (t *Table[R, N]) GetConsistent(i int, attempts int) R {
	buf := readConsistent(t.rows[i], attempts)
	row := &internalRow{buf: buf}
	return getUser[R](row, t.layout)
}

// SetLocal overwrites this node's own user row. It does not propagate the
// change. Call Put or PutRange afterwards in Writes mode.
func (t *Table[R, N]) SetLocal(v R) {
	setUser(t.rows[t.LocalIndex()], t.layout, v)
}

// Put posts a full-row remote write of the local row to every peer, then
// blocks for all N-1 completions. Valid only in Writes mode.
func (t *Table[R, N]) Put() error {
	return t.PutRange(0, t.layout.TotalSize)
}

// PutRange posts a remote write of just [offset, offset+size) of the
// local row to every peer, then blocks for all N-1 completions.
// Callers must use stable offsets derived from the layout; see
// RowLayout and Chain.ByTag for extension slots.
func (t *Table[R, N]) PutRange(offset, size int) error {
	if t.draining() {
		return ErrDraining
	}
	if t.mode != ModeWrites {
		return configErrorf("Put/PutRange is only valid on a table constructed with ModeWrites")
	}
	peers := t.group.Peers()
	for _, peer := range peers {
		if err := t.fabric.Peer(peer).PostRemoteWrite(offset, size); err != nil {
			return fatalTransportf("post_remote_write", err)
		}
	}
	for _, peer := range peers {
		if err := t.fabric.Peer(peer).PollCompletion(); err != nil {
			return fatalTransportf("poll_completion", err)
		}
	}
	return nil
}

func (t *Table[R, N]) readLoop() {
	defer t.wg.Done()
	size := t.layout.TotalSize
	for {
		select {
		case <-t.stopCh:
			return
		default:
		}
		peers := t.group.Peers()
		failed := false
		for _, peer := range peers {
			if err := t.fabric.Peer(peer).PostRemoteRead(0, size); err != nil {
				t.logger.Errorf("post_remote_read from peer %d: %v", peer, err)
				failed = true
				break
			}
		}
		if failed {
			return
		}
		for _, peer := range peers {
			if err := t.fabric.Peer(peer).PollCompletion(); err != nil {
				t.logger.Errorf("poll_completion from peer %d: %v", peer, err)
				return
			}
		}
	}
}

// GetSnapshot byte-copies every row into a freshly allocated, detached
// array and returns it as an immutable handle (§4.9, testable property 3).
func (t *Table[R, N]) GetSnapshot() *Snapshot[R, N] {
	rows := make([][]byte, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r.snapshotBytes()
	}
	return &Snapshot[R, N]{layout: t.layout, chain: t.chain, rows: rows}
}

// SyncWithMembers calls the transport's group barrier, returning once
// every peer has also called it (§4.2).
func (t *Table[R, N]) SyncWithMembers(ctx context.Context) error {
	if err := t.fabric.Sync(ctx); err != nil {
		return fatalTransportf("sync_with_members", err)
	}
	return nil
}

// CallNamedPredicate looks name up first among finalized derived-column
// tags, then among directly registered named functions, and applies its
// getter to row i, per §6's "look up the getter registered under name and
// apply it to row i".
func (t *Table[R, N]) CallNamedPredicate(name N, i int) (any, error) {
	if slot, ok := t.chain.ByTag[int(name)]; ok {
		return t.chain.Descriptors[slot].Getter(tableRowSet[R, N]{t}, i), nil
	}
	if f, ok := t.named.lookup(name); ok {
		return f(t.Get(i)), nil
	}
	return nil, ErrUnknownName
}

// InsertPredicate registers a predicate of the given kind with its
// triggers. Safe to call from a trigger itself: the observer only
// mutates the registry across a short lock held for the append.
func (t *Table[R, N]) InsertPredicate(kind PredicateKind, pred Pred[R, N], triggers ...Trigger[R, N]) {
	t.predicates.insert(kind, pred, triggers...)
}

// InsertEvolvingPredicate registers a Recurrent predicate whose active
// condition the given Evolver may replace on some passes, per the
// optional evolving-predicate extension (§4.6, design notes ii).
func (t *Table[R, N]) InsertEvolvingPredicate(initial Pred[R, N], evolve Evolver[R, N], triggers ...Trigger[R, N]) {
	t.predicates.insertEvolving(initial, evolve, triggers...)
}

// tableRowSet adapts a live Table to predicate.RowSet, letting updaters
// written against the predicate package's abstractions run over it.
type tableRowSet[R any, N Enum] struct {
	t *Table[R, N]
}

func (rs tableRowSet[R, N]) NumRows() int { return rs.t.NumRows() }
func (rs tableRowSet[R, N]) User(i int) R { return rs.t.Get(i) }
func (rs tableRowSet[R, N]) Ext(i, slot int) any {
	return rs.t.rows[i].getExt(rs.t.layout, slot)
}
