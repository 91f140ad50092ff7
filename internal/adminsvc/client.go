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

	"google.golang.org/grpc"
)

// Client is a thin wrapper over a *grpc.ClientConn dialed against a
// running admin server, used by the sst-inspect CLI.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient wraps an already-dialed connection.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

func (c *Client) callOpts() []grpc.CallOption {
	return []grpc.CallOption{grpc.CallContentSubtype(codecName)}
}

// Layout fetches the remote table's RowLayout.
func (c *Client) Layout(ctx context.Context) (LayoutView, error) {
	var out LayoutView
	err := c.conn.Invoke(ctx, "/sst.admin.Introspection/Layout", &emptyRequest{}, &out, c.callOpts()...)
	return out, err
}

// Snapshot fetches a point-in-time snapshot of the remote table.
func (c *Client) Snapshot(ctx context.Context) (SnapshotView, error) {
	var out SnapshotView
	err := c.conn.Invoke(ctx, "/sst.admin.Introspection/Snapshot", &emptyRequest{}, &out, c.callOpts()...)
	return out, err
}
