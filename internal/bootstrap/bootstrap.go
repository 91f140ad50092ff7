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

package bootstrap

import (
	"context"
	"fmt"
	"net"
	"sort"
	"sync"
)

// Member is one group member as seen by the bootstrap connect phase: its
// rank and the address it listens on for lower-ranked peers to dial.
type Member struct {
	Rank    int
	Address string
}

// Connect establishes one Channel to every other member, in descending
// rank order: for each pair (i, j) with i > j, i listens and j dials, per
// spec §4.2 ("done pairwise in descending-rank order; the higher rank
// acts as server for that pair"). It returns once every pair involving
// myRank has completed its rank handshake.
func Connect(ctx context.Context, myRank int, listenAddr string, members []Member) (map[int]*Channel, error) {
	var lower, higher []Member
	for _, m := range members {
		switch {
		case m.Rank == myRank:
			continue
		case m.Rank < myRank:
			lower = append(lower, m)
		default:
			higher = append(higher, m)
		}
	}
	sort.Slice(lower, func(i, j int) bool { return lower[i].Rank > lower[j].Rank })
	sort.Slice(higher, func(i, j int) bool { return higher[i].Rank < higher[j].Rank })

	channels := make(map[int]*Channel, len(lower)+len(higher))
	var mu sync.Mutex
	var wg sync.WaitGroup
	errCh := make(chan error, len(lower)+len(higher))

	if len(lower) > 0 {
		ln, err := net.Listen("tcp", listenAddr)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: listen on %s: %w", listenAddr, err)
		}
		defer ln.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < len(lower); i++ {
				conn, err := acceptOne(ctx, ln)
				if err != nil {
					errCh <- err
					return
				}
				ch := NewChannel(conn)
				if err := ch.SendRank(myRank); err != nil {
					errCh <- err
					return
				}
				peerRank, err := ch.RecvRank()
				if err != nil {
					errCh <- err
					return
				}
				mu.Lock()
				channels[peerRank] = ch
				mu.Unlock()
			}
		}()
	}

	for _, m := range higher {
		wg.Add(1)
		go func(m Member) {
			defer wg.Done()
			var d net.Dialer
			conn, err := d.DialContext(ctx, "tcp", m.Address)
			if err != nil {
				errCh <- fmt.Errorf("bootstrap: dial rank %d at %s: %w", m.Rank, m.Address, err)
				return
			}
			ch := NewChannel(conn)
			peerRank, err := ch.RecvRank()
			if err != nil {
				errCh <- err
				return
			}
			if err := ch.SendRank(myRank); err != nil {
				errCh <- err
				return
			}
			mu.Lock()
			channels[peerRank] = ch
			mu.Unlock()
		}(m)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}
	return channels, nil
}

func acceptOne(ctx context.Context, ln net.Listener) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := ln.Accept()
		ch <- result{conn, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.conn, r.err
	}
}
