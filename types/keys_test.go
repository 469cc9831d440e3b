// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, NASD Inc. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senadek2/timeless/types"
)

func TestClaimDenoms(t *testing.T) {
	assert.Equal(t, "pyt/7", types.YieldClaimDenom(7))
	assert.Equal(t, "nyt/7", types.PrincipalClaimDenom(7))

	id, ok := types.ParseYieldClaimDenom("pyt/7")
	require.True(t, ok)
	assert.Equal(t, uint64(7), id)

	for _, denom := range []string{"nyt/7", "pyt/", "pyt/abc", "pyt/-1", "uusdc", ""} {
		_, ok := types.ParseYieldClaimDenom(denom)
		assert.False(t, ok, denom)
	}
}

func TestModeValidate(t *testing.T) {
	require.NoError(t, types.ModeUnderlying.Validate())
	require.NoError(t, types.ModeShares.Validate())
	require.ErrorIs(t, types.ModeUnspecified.Validate(), types.ErrInvalidRequest)
	require.ErrorIs(t, types.Mode(42).Validate(), types.ErrInvalidRequest)
}

func TestFeeConfigValidate(t *testing.T) {
	recipient := "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"

	require.NoError(t, types.FeeConfig{Numerator: math.ZeroInt()}.Validate())
	require.NoError(t, types.FeeConfig{Numerator: math.NewInt(999), Recipient: recipient}.Validate())

	err := types.FeeConfig{Numerator: math.NewInt(types.FeeBase), Recipient: recipient}.Validate()
	require.ErrorIs(t, err, types.ErrInvalidFeeConfig)

	err = types.FeeConfig{Numerator: math.NewInt(-1), Recipient: recipient}.Validate()
	require.ErrorIs(t, err, types.ErrInvalidFeeConfig)

	err = types.FeeConfig{Numerator: math.NewInt(1)}.Validate()
	require.ErrorIs(t, err, types.ErrInvalidFeeConfig)
}
