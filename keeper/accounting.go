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

	"cosmossdk.io/core/event"
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/senadek2/timeless/fixedpoint"
	"github.com/senadek2/timeless/types"
)

// currentRate reads the vault's exchange rate fresh from the adapter. Rates
// are never cached across calls; external vault state moves between calls.
func (k *Keeper) currentRate(ctx context.Context, adapter types.VaultAdapter) (math.LegacyDec, error) {
	rate, err := adapter.PricePerShare(ctx)
	if err != nil {
		return math.LegacyZeroDec(), sdkerrors.Wrap(types.ErrAdapterFailure, err.Error())
	}
	if rate.IsNil() || !rate.IsPositive() {
		return math.LegacyZeroDec(), sdkerrors.Wrap(types.ErrAdapterFailure, "adapter reported a non-positive exchange rate")
	}

	return rate, nil
}

// computeOwed returns balance * (rate - baseline) / rate, floored. A rate at
// or below the baseline (a vault loss) clamps to zero; previously paid yield
// is never clawed back and no deficit is tracked.
func computeOwed(balance math.Int, rate, baseline math.LegacyDec) (math.Int, error) {
	if balance.IsNil() || !balance.IsPositive() {
		return math.ZeroInt(), nil
	}
	if baseline.GTE(rate) {
		return math.ZeroInt(), nil
	}

	rateScaled, err := fixedpoint.FromLegacyDec(rate)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}
	diffScaled, err := fixedpoint.FromLegacyDec(rate.Sub(baseline))
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}
	balanceWord, err := fixedpoint.FromInt(balance)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}

	owed, err := fixedpoint.MulDiv(balanceWord, diffScaled, rateScaled)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}

	return fixedpoint.ToInt(owed), nil
}

// sharesFromUnderlying converts an underlying amount to vault shares at the
// given rate, flooring.
func sharesFromUnderlying(amount math.Int, rate math.LegacyDec) (math.Int, error) {
	one, err := fixedpoint.FromLegacyDec(math.LegacyOneDec())
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}
	rateScaled, err := fixedpoint.FromLegacyDec(rate)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}
	amountWord, err := fixedpoint.FromInt(amount)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}

	shares, err := fixedpoint.MulDiv(amountWord, one, rateScaled)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}

	return fixedpoint.ToInt(shares), nil
}

// underlyingFromShares converts vault shares to underlying at the given rate,
// flooring.
func underlyingFromShares(shares math.Int, rate math.LegacyDec) (math.Int, error) {
	one, err := fixedpoint.FromLegacyDec(math.LegacyOneDec())
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}
	rateScaled, err := fixedpoint.FromLegacyDec(rate)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}
	sharesWord, err := fixedpoint.FromInt(shares)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}

	amount, err := fixedpoint.MulDiv(sharesWord, rateScaled, one)
	if err != nil {
		return math.Int{}, sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}

	return fixedpoint.ToInt(amount), nil
}

// splitFee splits owed yield into the protocol fee and the net payout. The
// fee is owed * numerator / FeeBase under floor division, so the effective
// rate charged on the payout is numerator / (FeeBase - numerator) exactly.
func (k *Keeper) splitFee(ctx context.Context, owed math.Int) (fee, payout math.Int, recipient string, err error) {
	config, err := k.GetFeeConfig(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, "", err
	}

	if config.Numerator.IsZero() || owed.IsZero() {
		return math.ZeroInt(), owed, config.Recipient, nil
	}

	fee, err = fixedpoint.MulDivInt(owed, config.Numerator, math.NewInt(types.FeeBase))
	if err != nil {
		return math.Int{}, math.Int{}, "", sdkerrors.Wrap(types.ErrArithmetic, err.Error())
	}

	payout, err = owed.SafeSub(fee)
	if err != nil {
		return math.Int{}, math.Int{}, "", err
	}

	return fee, payout, config.Recipient, nil
}

// settleTo flushes the yield accrued to holder since their baseline, computed
// on the supplied balance, pays the protocol fee in underlying and the net
// payout to recipient in the requested units, and resets holder's baseline to
// the current rate. Every public entry point that reads or mutates a claim
// balance runs this first: afterwards the holder owes exactly zero.
//
// The baseline is written before any external transfer so a reentrant call
// into the gate mid-settlement observes a consistent, already-settled state.
func (k *Keeper) settleTo(
	ctx context.Context,
	vaultID uint64,
	adapter types.VaultAdapter,
	holder sdk.AccAddress,
	balance math.Int,
	recipient sdk.AccAddress,
	payoutMode types.Mode,
) (types.Settlement, error) {
	rate, err := k.currentRate(ctx, adapter)
	if err != nil {
		return types.Settlement{}, err
	}

	baseline, found, err := k.GetBaseline(ctx, vaultID, holder)
	if err != nil {
		return types.Settlement{}, err
	}
	if !found {
		baseline = rate
	}

	owed, err := computeOwed(balance, rate, baseline)
	if err != nil {
		return types.Settlement{}, err
	}

	if err := k.SetBaseline(ctx, vaultID, holder, rate); err != nil {
		return types.Settlement{}, err
	}
	if err := k.LastExchangeRate.Set(ctx, vaultID, rate); err != nil {
		return types.Settlement{}, err
	}

	settlement := types.Settlement{
		Owed:   owed,
		Fee:    math.ZeroInt(),
		Payout: math.ZeroInt(),
		Rate:   rate,
	}

	if owed.IsZero() {
		return settlement, nil
	}

	fee, payout, feeRecipient, err := k.splitFee(ctx, owed)
	if err != nil {
		return types.Settlement{}, err
	}
	settlement.Fee = fee

	if fee.IsPositive() {
		feeAddr, err := k.address.StringToBytes(feeRecipient)
		if err != nil {
			return types.Settlement{}, sdkerrors.Wrapf(types.ErrInvalidFeeConfig, "invalid fee recipient %s", feeRecipient)
		}
		if _, err := adapter.WithdrawUnderlying(ctx, fee, feeAddr, false); err != nil {
			return types.Settlement{}, sdkerrors.Wrap(types.ErrAdapterFailure, err.Error())
		}
	}

	switch payoutMode {
	case types.ModeUnderlying:
		if _, err := adapter.WithdrawUnderlying(ctx, payout, recipient, false); err != nil {
			return types.Settlement{}, sdkerrors.Wrap(types.ErrAdapterFailure, err.Error())
		}
		settlement.Payout = payout
	case types.ModeShares:
		if !adapter.SharesTransferable() {
			return types.Settlement{}, types.ErrSharesNotTransferable
		}
		shares, err := sharesFromUnderlying(payout, rate)
		if err != nil {
			return types.Settlement{}, err
		}
		if err := adapter.PushShares(ctx, recipient, shares); err != nil {
			return types.Settlement{}, sdkerrors.Wrap(types.ErrAdapterFailure, err.Error())
		}
		settlement.Payout = shares
	default:
		return types.Settlement{}, sdkerrors.Wrapf(types.ErrInvalidRequest, "unknown payout mode %d", payoutMode)
	}

	if err := k.addVaultStats(ctx, vaultID, payout, fee); err != nil {
		return types.Settlement{}, err
	}

	holderStr, _ := k.address.BytesToString(holder)
	recipientStr, _ := k.address.BytesToString(recipient)
	if err := k.event.EventManager(ctx).EmitKV(ctx, types.EventTypeSettle,
		event.Attribute{Key: types.AttributeKeyVaultID, Value: formatVaultID(vaultID)},
		event.Attribute{Key: types.AttributeKeyHolder, Value: holderStr},
		event.Attribute{Key: types.AttributeKeyRecipient, Value: recipientStr},
		event.Attribute{Key: types.AttributeKeyOwed, Value: owed.String()},
		event.Attribute{Key: types.AttributeKeyFee, Value: fee.String()},
		event.Attribute{Key: types.AttributeKeyPayout, Value: settlement.Payout.String()},
		event.Attribute{Key: types.AttributeKeyRate, Value: rate.String()},
	); err != nil {
		return types.Settlement{}, err
	}

	return settlement, nil
}

// settleHolder settles a holder against their live yield claim balance,
// paying out to the holder themselves in underlying. Used by enter, exit, and
// the transfer hook.
func (k *Keeper) settleHolder(ctx context.Context, vaultID uint64, adapter types.VaultAdapter, holder sdk.AccAddress, balance math.Int) (types.Settlement, error) {
	return k.settleTo(ctx, vaultID, adapter, holder, balance, holder, types.ModeUnderlying)
}

// PendingSettlement reports the settlement a ClaimYield by holder would
// produce at the current rate, without mutating any state.
func (k *Keeper) PendingSettlement(ctx context.Context, vaultID uint64, holder sdk.AccAddress) (types.Settlement, math.LegacyDec, error) {
	adapter, err := k.GetVaultAdapter(ctx, vaultID)
	if err != nil {
		return types.Settlement{}, math.LegacyZeroDec(), err
	}

	rate, err := k.currentRate(ctx, adapter)
	if err != nil {
		return types.Settlement{}, math.LegacyZeroDec(), err
	}

	baseline, found, err := k.GetBaseline(ctx, vaultID, holder)
	if err != nil {
		return types.Settlement{}, math.LegacyZeroDec(), err
	}
	if !found {
		baseline = rate
	}

	balance := k.bank.GetBalance(ctx, holder, types.YieldClaimDenom(vaultID)).Amount
	owed, err := computeOwed(balance, rate, baseline)
	if err != nil {
		return types.Settlement{}, math.LegacyZeroDec(), err
	}

	fee, payout, _, err := k.splitFee(ctx, owed)
	if err != nil {
		return types.Settlement{}, math.LegacyZeroDec(), err
	}

	return types.Settlement{Owed: owed, Fee: fee, Payout: payout, Rate: rate}, baseline, nil
}
