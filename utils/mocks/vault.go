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

package mocks

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/senadek2/timeless/types"
)

var _ types.VaultAdapter = &VaultAdapter{}

// VaultAdapter simulates an external yield vault on top of the mock bank. The
// vault's pooled underlying lives at VaultAddress; yield is simulated by
// moving Rate upward via SetRate, which tops the pool up so that later
// withdrawals against the higher rate can be honored.
type VaultAdapter struct {
	Bank BankKeeper

	Underlying   string
	Shares       string
	Transferable bool
	VaultAddress sdk.AccAddress

	Rate       math.LegacyDec
	GateShares math.Int

	// RateErr, when set, is returned by PricePerShare to simulate a broken
	// oracle or reverting vault.
	RateErr error
}

func NewVaultAdapter(bank BankKeeper, name, underlying, shares string, transferable bool) *VaultAdapter {
	return &VaultAdapter{
		Bank:         bank,
		Underlying:   underlying,
		Shares:       shares,
		Transferable: transferable,
		VaultAddress: authtypes.NewModuleAddress("vault/" + name),
		Rate:         math.LegacyOneDec(),
		GateShares:   math.ZeroInt(),
	}
}

func (v *VaultAdapter) UnderlyingDenom() string { return v.Underlying }

func (v *VaultAdapter) ShareDenom() string {
	if !v.Transferable {
		return ""
	}
	return v.Shares
}

func (v *VaultAdapter) SharesTransferable() bool { return v.Transferable }

func (v *VaultAdapter) PricePerShare(_ context.Context) (math.LegacyDec, error) {
	if v.RateErr != nil {
		return math.LegacyDec{}, v.RateErr
	}
	return v.Rate, nil
}

func (v *VaultAdapter) DepositUnderlying(ctx context.Context, from sdk.AccAddress, amount math.Int) (math.Int, error) {
	coins := sdk.NewCoins(sdk.NewCoin(v.Underlying, amount))
	if err := v.Bank.SendCoins(ctx, from, v.VaultAddress, coins); err != nil {
		return math.Int{}, err
	}

	shares := math.LegacyNewDecFromInt(amount).Quo(v.Rate).TruncateInt()
	v.GateShares = v.GateShares.Add(shares)

	return shares, nil
}

func (v *VaultAdapter) WithdrawUnderlying(ctx context.Context, amount math.Int, recipient sdk.AccAddress, allowPartial bool) (math.Int, error) {
	available := v.Bank.Balances[v.VaultAddress.String()].AmountOf(v.Underlying)

	actual := amount
	if actual.GT(available) {
		if !allowPartial {
			return math.Int{}, fmt.Errorf("vault holds %s%s, cannot withdraw %s", available.String(), v.Underlying, amount.String())
		}
		actual = available
	}

	burned := math.LegacyNewDecFromInt(actual).Quo(v.Rate).Ceil().TruncateInt()
	if burned.GT(v.GateShares) {
		burned = v.GateShares
	}
	v.GateShares = v.GateShares.Sub(burned)

	if actual.IsPositive() {
		coins := sdk.NewCoins(sdk.NewCoin(v.Underlying, actual))
		if err := v.Bank.SendCoins(ctx, v.VaultAddress, recipient, coins); err != nil {
			return math.Int{}, err
		}
	}

	return actual, nil
}

func (v *VaultAdapter) PullShares(ctx context.Context, from sdk.AccAddress, shares math.Int) error {
	if !v.Transferable {
		return fmt.Errorf("%s shares are not transferable", v.Underlying)
	}

	coins := sdk.NewCoins(sdk.NewCoin(v.Shares, shares))
	if err := v.Bank.SendCoins(ctx, from, v.VaultAddress, coins); err != nil {
		return err
	}
	v.GateShares = v.GateShares.Add(shares)

	return nil
}

func (v *VaultAdapter) PushShares(_ context.Context, to sdk.AccAddress, shares math.Int) error {
	if !v.Transferable {
		return fmt.Errorf("%s shares are not transferable", v.Underlying)
	}
	if shares.GT(v.GateShares) {
		return fmt.Errorf("gate holds %s shares, cannot push %s", v.GateShares.String(), shares.String())
	}

	v.GateShares = v.GateShares.Sub(shares)
	v.Bank.FundAccount(to, sdk.NewCoins(sdk.NewCoin(v.Shares, shares)))

	return nil
}

// SetRate moves the exchange rate and credits the vault pool with the implied
// yield on the gate's position.
func (v *VaultAdapter) SetRate(rate math.LegacyDec) {
	v.Rate = rate

	target := rate.MulInt(v.GateShares).Ceil().TruncateInt()
	current := v.Bank.Balances[v.VaultAddress.String()].AmountOf(v.Underlying)
	if target.GT(current) {
		v.Bank.FundAccount(v.VaultAddress, sdk.NewCoins(sdk.NewCoin(v.Underlying, target.Sub(current))))
	}
}

// IssueShares hands share tokens to an external account and backs them with
// underlying in the vault pool at the current rate.
func (v *VaultAdapter) IssueShares(to sdk.AccAddress, shares math.Int) {
	v.Bank.FundAccount(to, sdk.NewCoins(sdk.NewCoin(v.Shares, shares)))
	backing := v.Rate.MulInt(shares).Ceil().TruncateInt()
	v.Bank.FundAccount(v.VaultAddress, sdk.NewCoins(sdk.NewCoin(v.Underlying, backing)))
}
