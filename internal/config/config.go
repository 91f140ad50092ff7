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

// Package config loads the file-based bootstrap configuration used by the
// sst-inspect diagnostic tool: which members make up the group, which
// rank the local process is, and how it should reach its peers. Table
// construction proper stays a Go API (see the root package's Option
// type); this is optional sugar for driving that API from a config file
// instead of hand-writing a Group.
package config

import "github.com/BurntSushi/toml"

// Mode mirrors the table's replication mode as a config-file string, so
// deployments can flip between them without a rebuild.
type Mode string

const (
	ModeWrites Mode = "writes"
	ModeReads  Mode = "reads"
)

// Peer is one other member of the group, addressed by its bootstrap
// channel endpoint.
type Peer struct {
	ID      string
	Address string
}

// NodeConfig is the top-level file format for one node's bootstrap
// configuration.
type NodeConfig struct {
	// Self is this process's own group member id.
	Self string
	// Members lists every group member in rank order; Self must appear
	// exactly once.
	Members []Peer
	// Mode selects Writes (push) or Reads (pull) replication.
	Mode Mode
	// LogLevel is one of debug/info/warn/error.
	LogLevel string
}

// Load reads a NodeConfig from a TOML file.
func Load(path string) (*NodeConfig, error) {
	cfg := &NodeConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Rank returns the index of Self within Members, or -1 if not found.
func (c *NodeConfig) Rank() int {
	for i, p := range c.Members {
		if p.ID == c.Self {
			return i
		}
	}
	return -1
}
