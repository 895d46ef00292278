// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidParams(t *testing.T) {
	p := Params{NumOLEs: 10, BitLength: 16, K: 128, NumNodes: 4, Version: Version}
	require.NoError(t, p.Validate())
}

func TestRejectsBadVersion(t *testing.T) {
	p := Params{NumOLEs: 10, BitLength: 16, K: 128, NumNodes: 4, Version: 2}
	require.Error(t, p.Validate())
}

func TestRejectsOversizedBitLength(t *testing.T) {
	p := Params{NumOLEs: 10, BitLength: 260, K: 128, NumNodes: 4, Version: Version}
	require.Error(t, p.Validate())
}

func TestRejectsZeroNumOLEs(t *testing.T) {
	p := Params{NumOLEs: 0, BitLength: 16, K: 128, NumNodes: 4, Version: Version}
	require.Error(t, p.Validate())
}

func TestRejectsTooManyNodes(t *testing.T) {
	p := Params{NumOLEs: 10, BitLength: 16, K: 128, NumNodes: MaxNumNodes + 1, Version: Version}
	require.Error(t, p.Validate())
}
