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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGroupRejectsEmptyMembers(t *testing.T) {
	_, err := NewGroup(nil, 0)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewGroupRejectsOutOfRangeRank(t *testing.T) {
	_, err := NewGroup([]string{"a", "b"}, 5)
	require.Error(t, err)
}

func TestNewGroupRejectsDuplicateMembers(t *testing.T) {
	_, err := NewGroup([]string{"a", "a"}, 0)
	require.Error(t, err)
}

func TestGroupPeersExcludesSelf(t *testing.T) {
	g, err := NewGroup([]string{"a", "b", "c"}, 1)
	require.NoError(t, err)
	require.Equal(t, 3, g.NumRows())
	require.Equal(t, 1, g.LocalIndex())
	require.Equal(t, []int{0, 2}, g.Peers())
}
