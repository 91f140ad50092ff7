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

import (
	"context"
	"fmt"
	"sync"

	"github.com/dslab-sst/sst/internal/transport"
)

// Group is a set of Fabrics, one per rank, sharing the owner and
// mirror regions and the sync barrier for one simulated N-node cluster
// inside a single process. Construct one Group per table under test and
// hand Group.Fabric(rank) to each simulated node's Table.
type Group struct {
	n       int
	owner   []*Region   // owner[i]: rank i's own row storage
	mirrors [][]*Region // mirrors[reader][writer]: reader's copy of writer's row
	cqs     [][]*completionQueue

	barrierMu   sync.Mutex
	barrierCond *sync.Cond
	arrived     int
	generation  int
}

// NewGroup allocates owner and mirror regions for n ranks, each rowSize
// bytes, the table's internal row layout total size.
func NewGroup(n, rowSize int) (*Group, error) {
	if n <= 0 {
		return nil, fmt.Errorf("rdmasim: group size must be positive, got %d", n)
	}
	g := &Group{
		n:       n,
		owner:   make([]*Region, n),
		mirrors: make([][]*Region, n),
		cqs:     make([][]*completionQueue, n),
	}
	g.barrierCond = sync.NewCond(&g.barrierMu)
	for i := 0; i < n; i++ {
		r, err := NewRegion(rowSize)
		if err != nil {
			return nil, err
		}
		g.owner[i] = r
		g.mirrors[i] = make([]*Region, n)
		g.cqs[i] = make([]*completionQueue, n)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			mr, err := NewRegion(rowSize)
			if err != nil {
				return nil, err
			}
			g.mirrors[i][j] = mr
			g.cqs[i][j] = &completionQueue{}
		}
	}
	return g, nil
}

// Fabric returns the transport.Fabric a Table at the given rank should
// use.
func (g *Group) Fabric(rank int) transport.Fabric {
	return &fabric{g: g, me: rank}
}

// Close releases every region in the group.
func (g *Group) Close() error {
	var first error
	for i := 0; i < g.n; i++ {
		if err := g.owner[i].Close(); err != nil && first == nil {
			first = err
		}
		for j := 0; j < g.n; j++ {
			if g.mirrors[i][j] == nil {
				continue
			}
			if err := g.mirrors[i][j].Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

type fabric struct {
	g  *Group
	me int
}

func (f *fabric) RowBuffer(i int) []byte {
	if i == f.me {
		return f.g.owner[f.me].Bytes()
	}
	return f.g.mirrors[f.me][i].Bytes()
}

func (f *fabric) Peer(i int) transport.PeerTransport {
	if i == f.me {
		return nil
	}
	return &peerAdapter{g: f.g, me: f.me, peer: i}
}

// Sync implements a full N-way rendezvous barrier: every rank must call
// Sync before any of them return, which is a strictly stronger guarantee
// than the pairwise descending-rank handshake spec'd for a real bootstrap
// channel, but observationally equivalent for the loopback simulator's
// only use of it: making sure every simulated node has finished setup (or
// a steady-state checkpoint) before the caller proceeds.
func (f *fabric) Sync(ctx context.Context) error {
	g := f.g
	g.barrierMu.Lock()
	defer g.barrierMu.Unlock()
	gen := g.generation
	g.arrived++
	if g.arrived == g.n {
		g.arrived = 0
		g.generation++
		g.barrierCond.Broadcast()
		return nil
	}
	for g.generation == gen {
		g.barrierCond.Wait()
	}
	return nil
}

func (f *fabric) Close() error {
	return nil
}

type peerAdapter struct {
	g    *Group
	me   int
	peer int
}

func (p *peerAdapter) PostRemoteWrite(offset, size int) error {
	src := p.g.owner[p.me].Bytes()
	dst := p.g.mirrors[p.peer][p.me].Bytes()
	if offset < 0 || offset+size > len(src) || offset+size > len(dst) {
		return fmt.Errorf("%w: write range [%d,%d) out of bounds", transport.ErrFatal, offset, offset+size)
	}
	copy(dst[offset:offset+size], src[offset:offset+size])
	p.g.cqs[p.me][p.peer].complete()
	return nil
}

func (p *peerAdapter) PostRemoteRead(offset, size int) error {
	dst := p.g.mirrors[p.me][p.peer].Bytes()
	src := p.g.owner[p.peer].Bytes()
	if offset < 0 || offset+size > len(src) || offset+size > len(dst) {
		return fmt.Errorf("%w: read range [%d,%d) out of bounds", transport.ErrFatal, offset, offset+size)
	}
	copy(dst[offset:offset+size], src[offset:offset+size])
	p.g.cqs[p.me][p.peer].complete()
	return nil
}

func (p *peerAdapter) PollCompletion() error {
	if err := p.g.cqs[p.me][p.peer].wait(); err != nil {
		return fmt.Errorf("%w: %v", transport.ErrFatal, err)
	}
	return nil
}
