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
	"io"

	"github.com/dslab-sst/sst/internal/logging"
	"github.com/dslab-sst/sst/internal/transport"
	"github.com/dslab-sst/sst/predicate"
)

// tableConfig accumulates everything New needs beyond the group and row
// type, built up by applying Options in order. It follows the same
// dial-option shape used throughout the reference gRPC transport this
// package is modeled on.
type tableConfig[R any, N Enum] struct {
	mode       Mode
	columns    []predicate.Column[R]
	namedFuncs map[N]namedFunction[R]
	fabric     transport.Fabric
	logWriter  io.Writer
	logLevel   logging.Level
	logger     *logging.Logger
}

func defaultConfig[R any, N Enum]() *tableConfig[R, N] {
	return &tableConfig[R, N]{
		mode:       ModeWrites,
		namedFuncs: make(map[N]namedFunction[R]),
		logLevel:   logging.LevelInfo,
	}
}

// Option configures a Table at construction. Options are applied in the
// order passed to New.
type Option[R any, N Enum] func(*tableConfig[R, N])

// WithMode overrides the default Writes replication mode.
func WithMode[R any, N Enum](m Mode) Option[R, N] {
	return func(c *tableConfig[R, N]) { c.mode = m }
}

// WithColumns registers derived columns built with the predicate package.
// Columns from multiple WithColumns calls are concatenated in call order.
func WithColumns[R any, N Enum](columns ...predicate.Column[R]) Option[R, N] {
	return func(c *tableConfig[R, N]) { c.columns = append(c.columns, columns...) }
}

// WithNamedFunction registers a getter directly under name, independent
// of any derived column, per §6's "named_functions: ordered list of
// (name, getter)".
func WithNamedFunction[R any, N Enum](name N, f func(R) any) Option[R, N] {
	return func(c *tableConfig[R, N]) { c.namedFuncs[name] = f }
}

// WithFabric injects the transport a table replicates over. Tests
// typically pass an internal/transport/rdmasim fabric; a real deployment
// passes an adapter over actual RDMA verbs. Required: New fails without
// one.
func WithFabric[R any, N Enum](f transport.Fabric) Option[R, N] {
	return func(c *tableConfig[R, N]) { c.fabric = f }
}

// WithLogWriter overrides the default (stderr) destination for the
// table's logger.
func WithLogWriter[R any, N Enum](w io.Writer) Option[R, N] {
	return func(c *tableConfig[R, N]) { c.logWriter = w }
}

// WithLogLevel overrides the default (Info) minimum log level.
func WithLogLevel[R any, N Enum](level logging.Level) Option[R, N] {
	return func(c *tableConfig[R, N]) { c.logLevel = level }
}

// WithLogger overrides the table's logger entirely, ignoring
// WithLogWriter/WithLogLevel.
func WithLogger[R any, N Enum](l *logging.Logger) Option[R, N] {
	return func(c *tableConfig[R, N]) { c.logger = l }
}
