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

package netfabric

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dslab-sst/sst/internal/bootstrap"
	"github.com/dslab-sst/sst/internal/transport"
)

// Config describes one node's side of a netfabric group.
type Config struct {
	// Rank is this node's position in Members.
	Rank int
	// RowSize is the internal row's total layout size in bytes.
	RowSize int
	// ListenAddr is where this node accepts connections from lower-ranked
	// peers during Connect (see internal/bootstrap.Connect).
	ListenAddr string
	// Members lists every group member, this node included.
	Members []bootstrap.Member
}

// completionQueue signals PostRemoteWrite/PostRemoteRead completions to a
// blocked PollCompletion, one per posted operation. Unlike rdmasim's
// futex-backed queue, which coordinates access to memory-mapped regions
// standing in for separate hosts, everything here lives in one process's
// heap, so a plain sync.Cond is enough.
type completionQueue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	completed uint64
	consumed  uint64
}

func newCompletionQueue() *completionQueue {
	q := &completionQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *completionQueue) complete() {
	q.mu.Lock()
	q.completed++
	q.cond.Broadcast()
	q.mu.Unlock()
}

func (q *completionQueue) wait() {
	q.mu.Lock()
	for q.consumed >= q.completed {
		q.cond.Wait()
	}
	q.consumed++
	q.mu.Unlock()
}

// peerLink is this node's connection to one other member: the bootstrap
// channel kept open as the data path, plus the bookkeeping needed to
// match a read reply to the PostRemoteRead that requested it.
type peerLink struct {
	rank int
	ch   *bootstrap.Channel

	writeMu sync.Mutex // serializes frame writes onto ch.Conn()

	nextReqID uint64
	pendingMu sync.Mutex
	pending   map[uint64]chan []byte

	cq *completionQueue
}

// Fabric is a transport.Fabric backed by netfabric connections.
type Fabric struct {
	me      int
	rowSize int
	owner   []byte
	mirrors map[int][]byte

	channels map[int]*bootstrap.Channel
	peers    map[int]*peerLink
}

// Dial runs bootstrap.Connect against cfg.Members, exchanges a placeholder
// AddressRecord with every peer (a real verbs binding would populate it
// with actual queue-pair data; netfabric never touches real RDMA memory
// registration, so the fields carry no meaning here beyond exercising the
// wire format), then starts one receive loop per peer and returns a ready
// transport.Fabric.
func Dial(ctx context.Context, cfg Config) (*Fabric, error) {
	channels, err := bootstrap.Connect(ctx, cfg.Rank, cfg.ListenAddr, cfg.Members)
	if err != nil {
		return nil, fmt.Errorf("netfabric: connect: %w", err)
	}
	for rank, ch := range channels {
		if err := ch.SendAddress(bootstrap.AddressRecord{}); err != nil {
			return nil, fmt.Errorf("netfabric: send address to rank %d: %w", rank, err)
		}
		if _, err := ch.RecvAddress(); err != nil {
			return nil, fmt.Errorf("netfabric: recv address from rank %d: %w", rank, err)
		}
	}

	f := &Fabric{
		me:       cfg.Rank,
		rowSize:  cfg.RowSize,
		owner:    make([]byte, cfg.RowSize),
		mirrors:  make(map[int][]byte, len(channels)),
		channels: channels,
		peers:    make(map[int]*peerLink, len(channels)),
	}
	for rank, ch := range channels {
		f.mirrors[rank] = make([]byte, cfg.RowSize)
		pl := &peerLink{
			rank:    rank,
			ch:      ch,
			pending: make(map[uint64]chan []byte),
			cq:      newCompletionQueue(),
		}
		f.peers[rank] = pl
		go f.recvLoop(pl)
	}
	return f, nil
}

func (f *Fabric) RowBuffer(i int) []byte {
	if i == f.me {
		return f.owner
	}
	return f.mirrors[i]
}

func (f *Fabric) Peer(i int) transport.PeerTransport {
	if i == f.me {
		return nil
	}
	return &peerHandle{f: f, pl: f.peers[i]}
}

// Sync drives the steady-state barrier through bootstrap.SyncAll, in
// descending rank order, per spec §4.2.
func (f *Fabric) Sync(ctx context.Context) error {
	if err := bootstrap.SyncAll(f.channels); err != nil {
		return fmt.Errorf("%w: %v", transport.ErrFatal, err)
	}
	return nil
}

func (f *Fabric) Close() error {
	var first error
	for _, ch := range f.channels {
		if err := ch.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// recvLoop is the "NIC": it applies inbound writes to the local mirror,
// serves inbound read requests out of the local owner buffer, and
// delivers inbound read replies to the goroutine that requested them.
// Nothing here runs application code; it only ever moves bytes.
func (f *Fabric) recvLoop(pl *peerLink) {
	for {
		fr, err := readFrame(pl.ch.Conn())
		if err != nil {
			return
		}
		switch fr.op {
		case opWrite:
			mirror := f.mirrors[pl.rank]
			copy(mirror[fr.offset:fr.offset+fr.size], fr.data)
		case opReadRequest:
			reply := frame{op: opReadReply, reqID: fr.reqID, offset: fr.offset, size: fr.size,
				data: append([]byte(nil), f.owner[fr.offset:fr.offset+fr.size]...)}
			pl.writeMu.Lock()
			_ = writeFrame(pl.ch.Conn(), reply)
			pl.writeMu.Unlock()
		case opReadReply:
			pl.pendingMu.Lock()
			respCh, ok := pl.pending[fr.reqID]
			delete(pl.pending, fr.reqID)
			pl.pendingMu.Unlock()
			if ok {
				respCh <- fr.data
			}
		}
	}
}

type peerHandle struct {
	f  *Fabric
	pl *peerLink
}

func (p *peerHandle) PostRemoteWrite(offset, size int) error {
	src := p.f.owner
	if offset < 0 || offset+size > len(src) {
		return fmt.Errorf("%w: write range [%d,%d) out of bounds", transport.ErrFatal, offset, offset+size)
	}
	fr := frame{op: opWrite, offset: offset, size: size, data: src[offset : offset+size]}
	p.pl.writeMu.Lock()
	err := writeFrame(p.pl.ch.Conn(), fr)
	p.pl.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: post remote write: %v", transport.ErrFatal, err)
	}
	p.pl.cq.complete()
	return nil
}

func (p *peerHandle) PostRemoteRead(offset, size int) error {
	dst := p.f.mirrors[p.pl.rank]
	if offset < 0 || offset+size > len(dst) {
		return fmt.Errorf("%w: read range [%d,%d) out of bounds", transport.ErrFatal, offset, offset+size)
	}
	id := atomic.AddUint64(&p.pl.nextReqID, 1)
	respCh := make(chan []byte, 1)
	p.pl.pendingMu.Lock()
	p.pl.pending[id] = respCh
	p.pl.pendingMu.Unlock()

	fr := frame{op: opReadRequest, reqID: id, offset: offset, size: size}
	p.pl.writeMu.Lock()
	err := writeFrame(p.pl.ch.Conn(), fr)
	p.pl.writeMu.Unlock()
	if err != nil {
		p.pl.pendingMu.Lock()
		delete(p.pl.pending, id)
		p.pl.pendingMu.Unlock()
		return fmt.Errorf("%w: post remote read: %v", transport.ErrFatal, err)
	}

	go func() {
		data := <-respCh
		copy(dst[offset:offset+size], data)
		p.pl.cq.complete()
	}()
	return nil
}

func (p *peerHandle) PollCompletion() error {
	p.pl.cq.wait()
	return nil
}
