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
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dslab-sst/sst/internal/bootstrap"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func dialTwo(t *testing.T, rowSize int) (*Fabric, *Fabric) {
	t.Helper()
	addr0, addr1 := freeAddr(t), freeAddr(t)
	members := []bootstrap.Member{{Rank: 0, Address: addr0}, {Rank: 1, Address: addr1}}

	type result struct {
		f   *Fabric
		err error
	}
	ch0 := make(chan result, 1)
	ch1 := make(chan result, 1)
	go func() {
		f, err := Dial(context.Background(), Config{Rank: 0, RowSize: rowSize, ListenAddr: addr0, Members: members})
		ch0 <- result{f, err}
	}()
	go func() {
		f, err := Dial(context.Background(), Config{Rank: 1, RowSize: rowSize, ListenAddr: addr1, Members: members})
		ch1 <- result{f, err}
	}()

	r0 := <-ch0
	require.NoError(t, r0.err)
	r1 := <-ch1
	require.NoError(t, r1.err)
	return r0.f, r1.f
}

func TestDialEstablishesRowBuffersOfConfiguredSize(t *testing.T) {
	f0, f1 := dialTwo(t, 8)
	defer f0.Close()
	defer f1.Close()

	require.Len(t, f0.RowBuffer(0), 8)
	require.Len(t, f0.RowBuffer(1), 8)
	require.Len(t, f1.RowBuffer(0), 8)
	require.Len(t, f1.RowBuffer(1), 8)
}

func TestPostRemoteWriteLandsInPeerMirror(t *testing.T) {
	f0, f1 := dialTwo(t, 8)
	defer f0.Close()
	defer f1.Close()

	copy(f0.RowBuffer(0), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, f0.Peer(1).PostRemoteWrite(0, 8))
	require.NoError(t, f0.Peer(1).PollCompletion())

	require.Eventually(t, func() bool {
		return f1.RowBuffer(0)[0] == 1 && f1.RowBuffer(0)[7] == 8
	}, time.Second, time.Millisecond)
}

func TestPostRemoteReadPullsFromPeerOwnerBuffer(t *testing.T) {
	f0, f1 := dialTwo(t, 8)
	defer f0.Close()
	defer f1.Close()

	copy(f1.RowBuffer(1), []byte{9, 9, 9, 9, 9, 9, 9, 9})
	require.NoError(t, f0.Peer(1).PostRemoteRead(0, 8))
	require.NoError(t, f0.Peer(1).PollCompletion())

	require.Equal(t, []byte{9, 9, 9, 9, 9, 9, 9, 9}, f0.RowBuffer(1))
}

func TestSyncBlocksUntilBothSidesCall(t *testing.T) {
	f0, f1 := dialTwo(t, 8)
	defer f0.Close()
	defer f1.Close()

	done := make(chan error, 2)
	go func() { done <- f0.Sync(context.Background()) }()
	go func() { done <- f1.Sync(context.Background()) }()

	require.NoError(t, <-done)
	require.NoError(t, <-done)
}
