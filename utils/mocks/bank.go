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
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	"github.com/senadek2/timeless/types"
)

var _ types.BankKeeper = BankKeeper{}

// BankKeeper is a map-backed bank. The Restriction hook, when set, runs
// before every balance mutation on the send paths, matching the real bank's
// send restriction semantics.
type BankKeeper struct {
	Balances map[string]sdk.Coins
	Supply   map[string]math.Int

	Restriction banktypes.SendRestrictionFn
}

func (k BankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, k.Balances[addr.String()].AmountOf(denom))
}

func (k BankKeeper) GetSupply(_ context.Context, denom string) sdk.Coin {
	supply, ok := k.Supply[denom]
	if !ok {
		supply = math.ZeroInt()
	}

	return sdk.NewCoin(denom, supply)
}

func (k BankKeeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if k.Restriction != nil {
		newToAddr, err := k.Restriction(ctx, fromAddr, toAddr, amt)
		if err != nil {
			return err
		}
		toAddr = newToAddr
	}

	balance, negative := k.Balances[fromAddr.String()].SafeSub(amt...)
	if negative {
		return fmt.Errorf("%s has insufficient balance to send %s", fromAddr.String(), amt.String())
	}

	k.Balances[fromAddr.String()] = balance
	k.Balances[toAddr.String()] = k.Balances[toAddr.String()].Add(amt...)

	return nil
}

func (k BankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return k.SendCoins(ctx, authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

func (k BankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return k.SendCoins(ctx, senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

func (k BankKeeper) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	address := authtypes.NewModuleAddress(moduleName).String()
	k.Balances[address] = k.Balances[address].Add(amt...)

	for _, coin := range amt {
		supply, ok := k.Supply[coin.Denom]
		if !ok {
			supply = math.ZeroInt()
		}
		k.Supply[coin.Denom] = supply.Add(coin.Amount)
	}

	return nil
}

func (k BankKeeper) BurnCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	address := authtypes.NewModuleAddress(moduleName).String()

	balance, negative := k.Balances[address].SafeSub(amt...)
	if negative {
		return fmt.Errorf("module %s has insufficient balance to burn %s", moduleName, amt.String())
	}
	k.Balances[address] = balance

	for _, coin := range amt {
		k.Supply[coin.Denom] = k.Supply[coin.Denom].Sub(coin.Amount)
	}

	return nil
}

// FundAccount credits an account out of thin air, bypassing the restriction.
func (k BankKeeper) FundAccount(addr sdk.AccAddress, amt sdk.Coins) {
	k.Balances[addr.String()] = k.Balances[addr.String()].Add(amt...)

	for _, coin := range amt {
		supply, ok := k.Supply[coin.Denom]
		if !ok {
			supply = math.ZeroInt()
		}
		k.Supply[coin.Denom] = supply.Add(coin.Amount)
	}
}
