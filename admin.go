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
	"encoding/json"
	"fmt"

	"github.com/dslab-sst/sst/internal/adminsvc"
)

// adminProvider adapts a live, generic Table to the non-generic
// adminsvc.Provider interface a *grpc.Server needs.
type adminProvider[R any, N Enum] struct {
	t *Table[R, N]
}

// NewAdminProvider wraps t for registration with adminsvc.NewServer. The
// returned provider is read-only: it never mutates the table, only
// copies its layout and takes snapshots.
func NewAdminProvider[R any, N Enum](t *Table[R, N]) adminsvc.Provider {
	return &adminProvider[R, N]{t: t}
}

func (p *adminProvider[R, N]) Layout(ctx context.Context) (adminsvc.LayoutView, error) {
	l := p.t.layout
	types := make([]string, len(l.ExtTypes))
	for i, et := range l.ExtTypes {
		types[i] = et.String()
	}
	return adminsvc.LayoutView{
		UserSize:   l.UserSize,
		ExtOffsets: append([]int{}, l.ExtOffsets...),
		ExtTypes:   types,
		TotalSize:  l.TotalSize,
	}, nil
}

func (p *adminProvider[R, N]) Snapshot(ctx context.Context) (adminsvc.SnapshotView, error) {
	snap := p.t.GetSnapshot()
	rows := make([]adminsvc.RowView, snap.NumRows())
	for i := 0; i < snap.NumRows(); i++ {
		userJSON, err := json.Marshal(snap.Get(i))
		if err != nil {
			return adminsvc.SnapshotView{}, fmt.Errorf("sst: marshaling row %d for admin snapshot: %w", i, err)
		}
		exts := make(map[string]interface{}, len(p.t.layout.ExtTypes))
		for slot := range p.t.layout.ExtTypes {
			exts[fmt.Sprintf("slot%d", slot)] = snap.Ext(i, slot)
		}
		rows[i] = adminsvc.RowView{Index: i, User: userJSON, Extensions: exts}
	}
	return adminsvc.SnapshotView{Rows: rows}, nil
}
