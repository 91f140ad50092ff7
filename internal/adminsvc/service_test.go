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

package adminsvc

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type fakeProvider struct{}

func (fakeProvider) Layout(ctx context.Context) (LayoutView, error) {
	return LayoutView{UserSize: 8, ExtOffsets: []int{8}, ExtTypes: []string{"bool"}, TotalSize: 9}, nil
}

func (fakeProvider) Snapshot(ctx context.Context) (SnapshotView, error) {
	return SnapshotView{Rows: []RowView{
		{Index: 0, User: json.RawMessage(`{"Counter":1}`), Extensions: map[string]interface{}{"slot0": true}},
	}}, nil
}

func dialFake(t *testing.T) (*Client, func()) {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := NewServer(fakeProvider{})
	go srv.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	return NewClient(conn), func() {
		conn.Close()
		srv.Stop()
	}
}

func TestClientLayout(t *testing.T) {
	client, cleanup := dialFake(t)
	defer cleanup()

	l, err := client.Layout(context.Background())
	require.NoError(t, err)
	require.Equal(t, 8, l.UserSize)
	require.Equal(t, []string{"bool"}, l.ExtTypes)
}

func TestClientSnapshot(t *testing.T) {
	client, cleanup := dialFake(t)
	defer cleanup()

	s, err := client.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, s.Rows, 1)
	require.Equal(t, true, s.Rows[0].Extensions["slot0"])
}
