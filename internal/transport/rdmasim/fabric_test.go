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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPostRemoteWriteAndPoll(t *testing.T) {
	g, err := NewGroup(2, 16)
	require.NoError(t, err)
	defer g.Close()

	f0 := g.Fabric(0)
	f1 := g.Fabric(1)

	copy(f0.RowBuffer(0), []byte("hello-world-1234"))
	require.NoError(t, f0.Peer(1).PostRemoteWrite(0, 16))
	require.NoError(t, f0.Peer(1).PollCompletion())

	require.Equal(t, []byte("hello-world-1234"), f1.RowBuffer(0))
}

func TestPostRemoteReadAndPoll(t *testing.T) {
	g, err := NewGroup(2, 8)
	require.NoError(t, err)
	defer g.Close()

	f0 := g.Fabric(0)
	f1 := g.Fabric(1)
	copy(f1.RowBuffer(1), []byte("deadbeef"))

	require.NoError(t, f0.Peer(1).PostRemoteRead(0, 8))
	require.NoError(t, f0.Peer(1).PollCompletion())
	require.Equal(t, []byte("deadbeef"), f0.RowBuffer(1))
}

func TestSyncIsAFullBarrier(t *testing.T) {
	g, err := NewGroup(3, 4)
	require.NoError(t, err)
	defer g.Close()

	var wg sync.WaitGroup
	done := make(chan int, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			f := g.Fabric(rank)
			require.NoError(t, f.Sync(context.Background()))
			done <- rank
		}(i)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sync barrier never released")
	}
	wg.Wait()
	require.Len(t, done, 3)
}

func TestPartialWriteRangeIsRespected(t *testing.T) {
	g, err := NewGroup(2, 16)
	require.NoError(t, err)
	defer g.Close()

	f0 := g.Fabric(0)
	f1 := g.Fabric(1)

	copy(f0.RowBuffer(0), []byte("AAAAAAAABBBBBBBB"))
	require.NoError(t, f0.Peer(1).PostRemoteWrite(0, 8))
	require.NoError(t, f0.Peer(1).PollCompletion())
	require.Equal(t, "AAAAAAAA\x00\x00\x00\x00\x00\x00\x00\x00", string(f1.RowBuffer(0)))

	require.NoError(t, f0.Peer(1).PostRemoteWrite(8, 8))
	require.NoError(t, f0.Peer(1).PollCompletion())
	require.Equal(t, "AAAAAAAABBBBBBBB", string(f1.RowBuffer(0)))
}
