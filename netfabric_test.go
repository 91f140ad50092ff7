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
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dslab-sst/sst/internal/bootstrap"
	"github.com/dslab-sst/sst/internal/transport/netfabric"
)

func freeAddrForTest(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

// TestTableOverNetFabricHeartbeat runs two real Tables, each over its own
// netfabric.Fabric, connected by real loopback TCP sockets rather than
// the in-process rdmasim simulator. It exercises the same setup path a
// multi-host deployment without RDMA hardware would use: internal/
// bootstrap does the rank/address handshake and drives Connect and Sync,
// with netfabric layering the one-sided-shaped data operations on top.
func TestTableOverNetFabricHeartbeat(t *testing.T) {
	addr0, addr1 := freeAddrForTest(t), freeAddrForTest(t)
	members := []bootstrap.Member{{Rank: 0, Address: addr0}, {Rank: 1, Address: addr1}}
	const rowSize = 8

	type dialResult struct {
		fabric *netfabric.Fabric
		err    error
	}
	res0 := make(chan dialResult, 1)
	res1 := make(chan dialResult, 1)
	go func() {
		f, err := netfabric.Dial(context.Background(), netfabric.Config{Rank: 0, RowSize: rowSize, ListenAddr: addr0, Members: members})
		res0 <- dialResult{f, err}
	}()
	go func() {
		f, err := netfabric.Dial(context.Background(), netfabric.Config{Rank: 1, RowSize: rowSize, ListenAddr: addr1, Members: members})
		res1 <- dialResult{f, err}
	}()
	r0 := <-res0
	require.NoError(t, r0.err)
	r1 := <-res1
	require.NoError(t, r1.err)
	defer r0.fabric.Close()
	defer r1.fabric.Close()

	group0, err := NewGroup([]string{"n0", "n1"}, 0)
	require.NoError(t, err)
	group1, err := NewGroup([]string{"n0", "n1"}, 1)
	require.NoError(t, err)

	tbl0, err := New[counterRow, counterName](group0, WithFabric[counterRow, counterName](r0.fabric))
	require.NoError(t, err)
	tbl1, err := New[counterRow, counterName](group1, WithFabric[counterRow, counterName](r1.fabric))
	require.NoError(t, err)
	defer tbl0.Close()
	defer tbl1.Close()

	connectAll(t, []*Table[counterRow, counterName]{tbl0, tbl1})
	tbl0.Start()
	tbl1.Start()

	tbl0.SetLocal(counterRow{Counter: 42})
	require.NoError(t, tbl0.Put())

	require.Eventually(t, func() bool {
		return tbl1.Get(0).Counter == 42
	}, 2*time.Second, 5*time.Millisecond)
}
