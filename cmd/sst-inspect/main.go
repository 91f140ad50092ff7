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

// Command sst-inspect is a diagnostic CLI that connects to a running
// node's admin service and prints its row layout and a point-in-time
// snapshot. It never touches the replication path: everything it does
// goes through internal/adminsvc, which is a plain gRPC service, not the
// one-sided transport a table actually replicates over.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/dslab-sst/sst/internal/adminsvc"
	"github.com/dslab-sst/sst/internal/config"
)

func main() {
	addr := flag.String("addr", "", "admin service address, host:port")
	configPath := flag.String("config", "", "optional TOML node config, printed alongside the layout")
	watch := flag.Duration("watch", 0, "if nonzero, re-fetch and reprint the snapshot on this interval")
	timeout := flag.Duration("timeout", 5*time.Second, "per-call RPC timeout")
	flag.Parse()

	if *addr == "" {
		fmt.Fprintln(os.Stderr, "sst-inspect: -addr is required")
		os.Exit(2)
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "sst-inspect: loading config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("node %q, rank %d of %d, mode %s\n", cfg.Self, cfg.Rank(), len(cfg.Members), cfg.Mode)
	}

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sst-inspect: dialing %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()
	client := adminsvc.NewClient(conn)

	for {
		if err := inspectOnce(client, *timeout); err != nil {
			fmt.Fprintf(os.Stderr, "sst-inspect: %v\n", err)
			os.Exit(1)
		}
		if *watch <= 0 {
			return
		}
		time.Sleep(*watch)
	}
}

func inspectOnce(client *adminsvc.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	layout, err := client.Layout(ctx)
	if err != nil {
		return fmt.Errorf("fetching layout: %w", err)
	}
	snap, err := client.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("fetching snapshot: %w", err)
	}

	out := struct {
		Layout   adminsvc.LayoutView   `json:"layout"`
		Snapshot adminsvc.SnapshotView `json:"snapshot"`
	}{layout, snap}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
