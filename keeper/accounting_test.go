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

package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senadek2/timeless/types"
	"github.com/senadek2/timeless/utils"
	"github.com/senadek2/timeless/utils/mocks"
)

func TestClaimYieldWithFee(t *testing.T) {
	k, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: 10% fee, Bob deposits 1000 at a rate of 1.0.
	treasury := utils.TestAccount()
	_, err := server.SetProtocolFee(ctx, &types.MsgSetProtocolFee{
		Authority:    mocks.Authority,
		FeeNumerator: math.NewInt(100),
		FeeRecipient: treasury.Address,
	})
	require.NoError(t, err)

	bob := utils.TestAccount()
	bank.FundAccount(bob.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err = server.Enter(ctx, &types.MsgEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)

	// ARRANGE: The vault appreciates to 1.1.
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Bob claims.
	resp, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer:     bob.Address,
		VaultId:    vaultID,
		PayoutMode: types.ModeUnderlying,
	})

	// ASSERT: owed = floor(1000e6 * 0.1 / 1.1) = 90909090, split 10/90.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(9090909), resp.Fee)
	assert.Equal(t, math.NewInt(81818181), resp.Payout)
	assert.Equal(t, math.NewInt(81818181), bank.Balances[bob.Address].AmountOf("uusdc"))
	assert.Equal(t, math.NewInt(9090909), bank.Balances[treasury.Address].AmountOf("uusdc"))

	// ASSERT: Fee plus payout reconstructs the owed amount exactly.
	assert.Equal(t, math.NewInt(90909090), resp.Fee.Add(resp.Payout))

	// ASSERT: Cumulative stats match.
	yieldPaid, feesPaid, err := k.GetVaultStats(ctx, vaultID)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(81818181), yieldPaid)
	assert.Equal(t, math.NewInt(9090909), feesPaid)
}

func TestClaimYieldIdempotent(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: Bob deposits 1000 and the vault appreciates.
	bob := utils.TestAccount()
	bank.FundAccount(bob.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Claim twice at the same rate.
	first, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer: bob.Address, VaultId: vaultID, PayoutMode: types.ModeUnderlying,
	})
	require.NoError(t, err)
	second, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer: bob.Address, VaultId: vaultID, PayoutMode: types.ModeUnderlying,
	})
	require.NoError(t, err)

	// ASSERT: Settlement leaves the holder owing exactly zero.
	assert.Equal(t, math.NewInt(90909090), first.Payout)
	assert.True(t, second.Payout.IsZero())
	assert.Equal(t, math.NewInt(90909090), bank.Balances[bob.Address].AmountOf("uusdc"))
}

func TestClaimYieldInShares(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE
	bob := utils.TestAccount()
	bank.FundAccount(bob.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Claim with the payout denominated in vault shares.
	resp, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer:     bob.Address,
		VaultId:    vaultID,
		PayoutMode: types.ModeShares,
	})

	// ASSERT: shares = floor(90909090 / 1.1) = 82644627.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(82644627), resp.Payout)
	assert.Equal(t, math.NewInt(82644627), bank.Balances[bob.Address].AmountOf("vsusdc"))
}

func TestLossClampAndRecovery(t *testing.T) {
	k, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: Bob deposits 1000 at a rate of 1.0, then the vault loses value.
	bob := utils.TestAccount()
	bank.FundAccount(bob.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("0.9"))

	// ACT: Claim under water.
	resp, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer: bob.Address, VaultId: vaultID, PayoutMode: types.ModeUnderlying,
	})

	// ASSERT: Clamped to zero, never negative, and never an error.
	require.NoError(t, err)
	assert.True(t, resp.Payout.IsZero())
	assert.True(t, bank.Balances[bob.Address].AmountOf("uusdc").IsZero())

	// ASSERT: The claim moved Bob's baseline down to 0.9.
	baseline, found, err := k.GetBaseline(ctx, vaultID, bob.Bytes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, math.LegacyMustNewDecFromStr("0.9"), baseline)

	// ACT: The vault recovers to 1.0 and Bob claims again.
	vault.SetRate(math.LegacyOneDec())
	resp, err = server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer: bob.Address, VaultId: vaultID, PayoutMode: types.ModeUnderlying,
	})

	// ASSERT: The recovery from the new baseline pays out, floor(1000e6 * 0.1 / 1.0).
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(100*ONE), resp.Payout)
}

func TestClaimYieldAndEnterCompounds(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: 10% fee, Bob deposits 1000 at a rate of 1.0.
	treasury := utils.TestAccount()
	_, err := server.SetProtocolFee(ctx, &types.MsgSetProtocolFee{
		Authority:    mocks.Authority,
		FeeNumerator: math.NewInt(100),
		FeeRecipient: treasury.Address,
	})
	require.NoError(t, err)

	bob := utils.TestAccount()
	bank.FundAccount(bob.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err = server.Enter(ctx, &types.MsgEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Compound instead of cashing out.
	resp, err := server.ClaimYieldAndEnter(ctx, &types.MsgClaimYieldAndEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
	})

	// ASSERT: The net payout became a fresh claim pair; the fee left the vault.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(81818181), resp.AmountMinted)
	assert.Equal(t, math.NewInt(1000*ONE+81818181), bank.Balances[bob.Address].AmountOf(types.YieldClaimDenom(vaultID)))
	assert.Equal(t, math.NewInt(1000*ONE+81818181), bank.Balances[bob.Address].AmountOf(types.PrincipalClaimDenom(vaultID)))
	assert.Equal(t, math.NewInt(9090909), bank.Balances[treasury.Address].AmountOf("uusdc"))
	assert.True(t, bank.Balances[bob.Address].AmountOf("uusdc").IsZero())

	// ACT: A second compound at the same rate mints nothing.
	resp, err = server.ClaimYieldAndEnter(ctx, &types.MsgClaimYieldAndEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
	})

	// ASSERT
	require.NoError(t, err)
	assert.True(t, resp.AmountMinted.IsZero())
}

func TestExitPaysAccruedYieldFirst(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE
	bob := utils.TestAccount()
	bank.FundAccount(bob.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Exit without claiming first.
	resp, err := server.Exit(ctx, &types.MsgExit{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})

	// ASSERT: The exit settles the pending yield before burning, so Bob
	// receives principal plus the accrued 90909090.
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(1000*ONE), resp.AmountWithdrawn)
	assert.Equal(t, math.NewInt(1000*ONE+90909090), bank.Balances[bob.Address].AmountOf("uusdc"))
}

func TestAdapterFailureSurfaces(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	bob := utils.TestAccount()
	bank.FundAccount(bob.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(100*ONE))))

	// ARRANGE: The adapter's rate source breaks.
	vault.RateErr = assert.AnError

	// ACT
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  bob.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(100 * ONE),
		Mode:    types.ModeUnderlying,
	})

	// ASSERT: The operation aborts and nothing moved.
	require.ErrorIs(t, err, types.ErrAdapterFailure)
	assert.Equal(t, math.NewInt(100*ONE), bank.Balances[bob.Address].AmountOf("uusdc"))
}
