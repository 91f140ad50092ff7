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

	"google.golang.org/grpc"
)

// LayoutView is the wire shape of RowLayout, independent of any
// particular table's row type.
type LayoutView struct {
	UserSize   int      `json:"user_size"`
	ExtOffsets []int    `json:"ext_offsets"`
	ExtTypes   []string `json:"ext_types"`
	TotalSize  int      `json:"total_size"`
}

// RowView is one row of a snapshot: the user row re-marshaled as JSON
// (its concrete Go type is unknown to this package) plus its extension
// slots keyed by slot index.
type RowView struct {
	Index      int                    `json:"index"`
	User       json.RawMessage        `json:"user"`
	Extensions map[string]interface{} `json:"extensions"`
}

// SnapshotView is the wire shape of a whole-table snapshot.
type SnapshotView struct {
	Rows []RowView `json:"rows"`
}

type emptyRequest struct{}

// Provider is implemented by an adapter over a live *sst.Table. It is
// deliberately not generic, since a grpc.ServiceDesc's HandlerType must
// be a concrete interface, so the generic Table lives behind a
// per-instance adapter constructed by the caller (see the root
// package's NewAdminProvider).
type Provider interface {
	Layout(ctx context.Context) (LayoutView, error)
	Snapshot(ctx context.Context) (SnapshotView, error)
}

// ServiceDesc is registered against a *grpc.Server with srv.RegisterService(&ServiceDesc, provider).
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: "sst.admin.Introspection",
	HandlerType: (*Provider)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Layout", Handler: layoutHandler},
		{MethodName: "Snapshot", Handler: snapshotHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "internal/adminsvc/service.go",
}

func layoutHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Provider).Layout(ctx)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/sst.admin.Introspection/Layout"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(Provider).Layout(ctx)
	}
	return interceptor(ctx, in, info, handler)
}

func snapshotHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(Provider).Snapshot(ctx)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/sst.admin.Introspection/Snapshot"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(Provider).Snapshot(ctx)
	}
	return interceptor(ctx, in, info, handler)
}
