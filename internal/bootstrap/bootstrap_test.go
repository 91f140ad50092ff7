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
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestConnectThreeWayDescendingRank(t *testing.T) {
	addrs := []string{freeAddr(t), freeAddr(t), freeAddr(t)}
	members := []Member{
		{Rank: 0, Address: addrs[0]},
		{Rank: 1, Address: addrs[1]},
		{Rank: 2, Address: addrs[2]},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	results := make([]map[int]*Channel, 3)
	errs := make([]error, 3)
	for rank := 0; rank < 3; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			results[rank], errs[rank] = Connect(ctx, rank, addrs[rank], members)
		}(rank)
	}
	wg.Wait()

	for rank := 0; rank < 3; rank++ {
		require.NoError(t, errs[rank])
		require.Len(t, results[rank], 2)
	}

	for rank, chs := range results {
		for peer := range chs {
			require.NotEqual(t, rank, peer)
		}
	}

	for _, chs := range results {
		for _, ch := range chs {
			require.NoError(t, ch.Close())
		}
	}
}

func TestAddressRecordRoundTrip(t *testing.T) {
	addr := freeAddr(t)
	srvErr := make(chan error, 1)
	got := make(chan AddressRecord, 1)

	go func() {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			srvErr <- err
			return
		}
		defer ln.Close()
		conn, err := ln.Accept()
		if err != nil {
			srvErr <- err
			return
		}
		ch := NewChannel(conn)
		rec, err := ch.RecvAddress()
		if err != nil {
			srvErr <- err
			return
		}
		got <- rec
		srvErr <- nil
	}()

	// give the listener a moment to bind before dialing.
	time.Sleep(20 * time.Millisecond)
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	ch := NewChannel(conn)

	want := AddressRecord{Address: 0xdeadbeef, RKey: 7, QPNum: 42, LID: 3, GID: [16]byte{1, 2, 3}}
	require.NoError(t, ch.SendAddress(want))

	require.NoError(t, <-srvErr)
	require.Equal(t, want, <-got)
}

func TestSyncAllVisitsDescendingRankOrder(t *testing.T) {
	// A pair of in-process net.Pipe channels stand in for two peers; each
	// side records its rank when the sync byte arrives and echoes it back,
	// so SyncAll should return cleanly having reached rank 2 before rank 1.
	c1, c2 := net.Pipe()
	c3, c4 := net.Pipe()

	channels := map[int]*Channel{
		1: NewChannel(c1),
		2: NewChannel(c3),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var order []int
	for rank, peer := range map[int]net.Conn{1: c2, 2: c4} {
		wg.Add(1)
		go func(rank int, conn net.Conn) {
			defer wg.Done()
			buf := make([]byte, 1)
			conn.Read(buf)
			mu.Lock()
			order = append(order, rank)
			mu.Unlock()
			conn.Write(buf)
		}(rank, peer)
	}

	require.NoError(t, SyncAll(channels))
	wg.Wait()
	require.Equal(t, []int{2, 1}, order)
}

func TestSyncWithUnknownRankErrors(t *testing.T) {
	err := SyncWith(map[int]*Channel{}, 9)
	require.Error(t, err)
}
