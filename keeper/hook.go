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

package keeper

import (
	"context"
	"strconv"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/senadek2/timeless/types"
)

func formatVaultID(vaultID uint64) string {
	return strconv.FormatUint(vaultID, 10)
}

// BeforeYieldClaimTokenTransfer is the mandatory pre-transfer hook. It runs
// fully before the balance mutation it guards, with the pre-mutation balances
// of both parties, so a reentrant balance read during settlement always sees
// pre-transfer state.
//
// The sender is settled on fromBalance and the receiver on toBalance; the
// receiver may already hold a nonzero balance with an older baseline, and
// that pre-existing yield must be flushed before the two baselines are
// unified at the current rate. Afterwards the sender retains
// fromBalance - amount and the receiver gains amount, both valid as of this
// instant: no yield is ever attributed to a claim the holder did not hold for
// the entire accrual window.
//
// Only a registered yield claim denom may invoke the hook; any other denom is
// an authorization failure, which aborts the enclosing transfer.
func (k *Keeper) BeforeYieldClaimTokenTransfer(
	ctx context.Context,
	denom string,
	from, to sdk.AccAddress,
	amount, fromBalance, toBalance math.Int,
) error {
	vaultID, ok := types.ParseYieldClaimDenom(denom)
	if !ok {
		return sdkerrors.Wrapf(types.ErrUnauthorized, "%s is not a yield claim token", denom)
	}

	registered, err := k.VaultAdapters.Has(ctx, vaultID)
	if err != nil {
		return err
	}
	if !registered {
		return sdkerrors.Wrapf(types.ErrUnauthorized, "%s is not backed by a registered vault", denom)
	}

	adapter, err := k.GetVaultAdapter(ctx, vaultID)
	if err != nil {
		return err
	}

	// Mint path: the module account accrues no yield.
	if !from.Equals(types.ModuleAddress) {
		if _, err := k.settleHolder(ctx, vaultID, adapter, from, fromBalance); err != nil {
			return sdkerrors.Wrapf(err, "unable to settle sender %s", from.String())
		}
	}

	// Burn path: likewise.
	if !to.Equals(types.ModuleAddress) {
		if _, err := k.settleHolder(ctx, vaultID, adapter, to, toBalance); err != nil {
			return sdkerrors.Wrapf(err, "unable to settle recipient %s", to.String())
		}
	}

	return nil
}

// SendRestrictionFn wires the transfer hook into the bank: every send of a
// yield claim denom settles both parties before the bank applies the balance
// change. Other denoms, including principal claims and vault underlying,
// pass through untouched.
func (k *Keeper) SendRestrictionFn(ctx context.Context, sender, recipient sdk.AccAddress, coins sdk.Coins) (sdk.AccAddress, error) {
	for _, coin := range coins {
		vaultID, ok := types.ParseYieldClaimDenom(coin.Denom)
		if !ok {
			continue
		}

		registered, err := k.VaultAdapters.Has(ctx, vaultID)
		if err != nil {
			return recipient, err
		}
		if !registered {
			continue
		}

		fromBalance := k.bank.GetBalance(ctx, sender, coin.Denom).Amount
		toBalance := k.bank.GetBalance(ctx, recipient, coin.Denom).Amount

		if err := k.BeforeYieldClaimTokenTransfer(ctx, coin.Denom, sender, recipient, coin.Amount, fromBalance, toBalance); err != nil {
			return recipient, err
		}
	}

	return recipient, nil
}
