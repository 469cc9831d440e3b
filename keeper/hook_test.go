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
)

func TestTransferSettlesBothParties(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: Alice deposits 1000 at 1.0, the vault appreciates to 1.1.
	alice, bob := utils.TestAccount(), utils.TestAccount()
	bank.FundAccount(alice.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  alice.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Alice sends 400 of her yield claim to Bob.
	yieldCoins := sdk.NewCoins(sdk.NewCoin(types.YieldClaimDenom(vaultID), math.NewInt(400*ONE)))
	require.NoError(t, bank.SendCoins(ctx, alice.Bytes, bob.Bytes, yieldCoins))

	// ASSERT: The hook flushed Alice's accrued yield on her full pre-transfer
	// balance, floor(1000e6 * 0.1 / 1.1).
	assert.Equal(t, math.NewInt(90909090), bank.Balances[alice.Address].AmountOf("uusdc"))
	assert.Equal(t, math.NewInt(600*ONE), bank.Balances[alice.Address].AmountOf(types.YieldClaimDenom(vaultID)))
	assert.Equal(t, math.NewInt(400*ONE), bank.Balances[bob.Address].AmountOf(types.YieldClaimDenom(vaultID)))
	assert.True(t, bank.Balances[bob.Address].AmountOf("uusdc").IsZero())
}

func TestTransferDoesNotDiluteOrSteal(t *testing.T) {
	k, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: Alice holds 600, Bob 400, both with baselines at 1.1.
	alice, bob := utils.TestAccount(), utils.TestAccount()
	bank.FundAccount(alice.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  alice.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	yieldCoins := sdk.NewCoins(sdk.NewCoin(types.YieldClaimDenom(vaultID), math.NewInt(400*ONE)))
	require.NoError(t, bank.SendCoins(ctx, alice.Bytes, bob.Bytes, yieldCoins))

	// ARRANGE: Another 10% appreciation on top.
	vault.SetRate(math.LegacyMustNewDecFromStr("1.21"))

	// ACT: Both claim.
	aliceResp, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer: alice.Address, VaultId: vaultID, PayoutMode: types.ModeUnderlying,
	})
	require.NoError(t, err)
	bobResp, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer: bob.Address, VaultId: vaultID, PayoutMode: types.ModeUnderlying,
	})
	require.NoError(t, err)

	// ASSERT: Each earns on exactly the balance they held for the window.
	// floor(600e6 * 0.11 / 1.21) and floor(400e6 * 0.11 / 1.21).
	assert.Equal(t, math.NewInt(54545454), aliceResp.Payout)
	assert.Equal(t, math.NewInt(36363636), bobResp.Payout)

	// ASSERT: Together they received what a single 1000 holder would have.
	combined := aliceResp.Payout.Add(bobResp.Payout)
	assert.Equal(t, math.NewInt(90909090), combined)

	// ASSERT: Both baselines now sit at the claim rate.
	baseline, found, err := k.GetBaseline(ctx, vaultID, bob.Bytes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, math.LegacyMustNewDecFromStr("1.21"), baseline)
}

func TestTransferToExistingHolderFlushesRecipient(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: Alice and Bob both deposited 500 at 1.0.
	alice, bob := utils.TestAccount(), utils.TestAccount()
	for _, account := range []utils.Account{alice, bob} {
		bank.FundAccount(account.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(500*ONE))))
		_, err := server.Enter(ctx, &types.MsgEnter{
			Signer:  account.Address,
			VaultId: vaultID,
			Amount:  math.NewInt(500 * ONE),
			Mode:    types.ModeUnderlying,
		})
		require.NoError(t, err)
	}
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Alice tops Bob up. Bob already holds a claim with an older
	// baseline, so his accrued yield must flush before the balances merge.
	yieldCoins := sdk.NewCoins(sdk.NewCoin(types.YieldClaimDenom(vaultID), math.NewInt(100*ONE)))
	require.NoError(t, bank.SendCoins(ctx, alice.Bytes, bob.Bytes, yieldCoins))

	// ASSERT: Both flushed floor(500e6 * 0.1 / 1.1) = 45454545.
	assert.Equal(t, math.NewInt(45454545), bank.Balances[alice.Address].AmountOf("uusdc"))
	assert.Equal(t, math.NewInt(45454545), bank.Balances[bob.Address].AmountOf("uusdc"))

	// ACT: Claiming right after the transfer pays nothing further.
	resp, err := server.ClaimYield(ctx, &types.MsgClaimYield{
		Signer: bob.Address, VaultId: vaultID, PayoutMode: types.ModeUnderlying,
	})

	// ASSERT
	require.NoError(t, err)
	assert.True(t, resp.Payout.IsZero())
}

func TestPrincipalTransfersBypassTheHook(t *testing.T) {
	k, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE
	alice, bob := utils.TestAccount(), utils.TestAccount()
	bank.FundAccount(alice.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  alice.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))

	// ACT: Alice sends principal claims only.
	principal := sdk.NewCoins(sdk.NewCoin(types.PrincipalClaimDenom(vaultID), math.NewInt(400*ONE)))
	require.NoError(t, bank.SendCoins(ctx, alice.Bytes, bob.Bytes, principal))

	// ASSERT: No settlement ran; Alice's pending yield is untouched.
	assert.True(t, bank.Balances[alice.Address].AmountOf("uusdc").IsZero())
	settlement, _, err := k.PendingSettlement(ctx, vaultID, alice.Bytes)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(90909090), settlement.Owed)
}

func TestHookRejectsForeignDenoms(t *testing.T) {
	k, _, _, _, ctx, _ := setupGate(t)

	alice, bob := utils.TestAccount(), utils.TestAccount()

	// ACT: Invoke the hook for a denom that is not a yield claim.
	err := k.BeforeYieldClaimTokenTransfer(ctx, "uusdc", alice.Bytes, bob.Bytes,
		math.NewInt(ONE), math.NewInt(ONE), math.ZeroInt())

	// ASSERT
	require.ErrorIs(t, err, types.ErrUnauthorized)

	// ACT: A well-formed yield claim denom without a registered vault.
	err = k.BeforeYieldClaimTokenTransfer(ctx, types.YieldClaimDenom(99), alice.Bytes, bob.Bytes,
		math.NewInt(ONE), math.NewInt(ONE), math.ZeroInt())

	// ASSERT
	require.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestFailedSettlementAbortsTransfer(t *testing.T) {
	_, server, vault, bank, ctx, vaultID := setupGate(t)

	// ARRANGE: Alice has accrued yield, then the adapter breaks.
	alice, bob := utils.TestAccount(), utils.TestAccount()
	bank.FundAccount(alice.Bytes, sdk.NewCoins(sdk.NewCoin("uusdc", math.NewInt(1000*ONE))))
	_, err := server.Enter(ctx, &types.MsgEnter{
		Signer:  alice.Address,
		VaultId: vaultID,
		Amount:  math.NewInt(1000 * ONE),
		Mode:    types.ModeUnderlying,
	})
	require.NoError(t, err)
	vault.SetRate(math.LegacyMustNewDecFromStr("1.1"))
	vault.RateErr = assert.AnError

	// ACT: The transfer cannot settle the sender.
	yieldCoins := sdk.NewCoins(sdk.NewCoin(types.YieldClaimDenom(vaultID), math.NewInt(400*ONE)))
	err = bank.SendCoins(ctx, alice.Bytes, bob.Bytes, yieldCoins)

	// ASSERT: The whole transfer aborts; balances are unchanged.
	require.ErrorIs(t, err, types.ErrAdapterFailure)
	assert.Equal(t, math.NewInt(1000*ONE), bank.Balances[alice.Address].AmountOf(types.YieldClaimDenom(vaultID)))
	assert.True(t, bank.Balances[bob.Address].AmountOf(types.YieldClaimDenom(vaultID)).IsZero())
}
