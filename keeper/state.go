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
	"errors"
	"time"

	"cosmossdk.io/collections"
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/senadek2/timeless/types"
)

// GetVaultRecord assembles the full record for a registered vault. The
// boolean flag indicates whether the vault existed in state.
func (k *Keeper) GetVaultRecord(ctx context.Context, vaultID uint64) (types.VaultRecord, bool, error) {
	adapterID, err := k.VaultAdapters.Get(ctx, vaultID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.VaultRecord{}, false, nil
		}
		return types.VaultRecord{}, false, err
	}

	adapter, ok := k.adapters[adapterID]
	if !ok {
		return types.VaultRecord{}, false, sdkerrors.Wrapf(types.ErrVaultNotFound, "adapter %s is not wired", adapterID)
	}

	createdAt, err := k.VaultCreatedAt.Get(ctx, vaultID)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return types.VaultRecord{}, false, err
	}

	return types.VaultRecord{
		ID:                  vaultID,
		AdapterID:           adapterID,
		UnderlyingDenom:     adapter.UnderlyingDenom(),
		YieldClaimDenom:     types.YieldClaimDenom(vaultID),
		PrincipalClaimDenom: types.PrincipalClaimDenom(vaultID),
		CreatedAt:           time.Unix(createdAt, 0).UTC(),
	}, true, nil
}

// GetVaultAdapter resolves the wired adapter for a registered vault.
func (k *Keeper) GetVaultAdapter(ctx context.Context, vaultID uint64) (types.VaultAdapter, error) {
	adapterID, err := k.VaultAdapters.Get(ctx, vaultID)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, sdkerrors.Wrapf(types.ErrVaultNotFound, "vault %d is not registered", vaultID)
		}
		return nil, err
	}

	adapter, ok := k.adapters[adapterID]
	if !ok {
		return nil, sdkerrors.Wrapf(types.ErrVaultNotFound, "adapter %s is not wired", adapterID)
	}

	return adapter, nil
}

// IterateVaults walks every registered vault record. Returning true from the
// callback stops the iteration early.
func (k *Keeper) IterateVaults(ctx context.Context, fn func(record types.VaultRecord) (bool, error)) error {
	return k.VaultAdapters.Walk(ctx, nil, func(vaultID uint64, _ string) (bool, error) {
		record, found, err := k.GetVaultRecord(ctx, vaultID)
		if err != nil {
			return true, err
		}
		if !found {
			return false, nil
		}
		return fn(record)
	})
}

// nextVaultID increments and returns the next vault identifier. Identifiers
// start at one for readability when exposed to users.
func (k *Keeper) nextVaultID(ctx context.Context) (uint64, error) {
	next, err := k.NextVaultID.Get(ctx)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return 0, err
		}

		next = 1
	} else {
		next++
	}

	if err := k.NextVaultID.Set(ctx, next); err != nil {
		return 0, err
	}

	return next, nil
}

// GetBaseline returns the holder's baseline exchange rate for a vault. The
// boolean flag indicates whether the holder has been settled before; first
// touch creates the account lazily at the current rate.
func (k *Keeper) GetBaseline(ctx context.Context, vaultID uint64, holder sdk.AccAddress) (math.LegacyDec, bool, error) {
	baseline, err := k.Baselines.Get(ctx, collections.Join(vaultID, holder.Bytes()))
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return math.LegacyZeroDec(), false, nil
		}
		return math.LegacyZeroDec(), false, err
	}

	return baseline, true, nil
}

// SetBaseline records the holder's baseline exchange rate for a vault.
func (k *Keeper) SetBaseline(ctx context.Context, vaultID uint64, holder sdk.AccAddress, baseline math.LegacyDec) error {
	return k.Baselines.Set(ctx, collections.Join(vaultID, holder.Bytes()), baseline)
}

// GetFeeConfig returns the current protocol fee configuration. An unset
// configuration is a zero fee with no recipient.
func (k *Keeper) GetFeeConfig(ctx context.Context) (types.FeeConfig, error) {
	numerator, err := k.FeeNumerator.Get(ctx)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return types.FeeConfig{}, err
		}
		numerator = math.ZeroInt()
	}

	recipient, err := k.FeeRecipient.Get(ctx)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return types.FeeConfig{}, err
		}
		recipient = ""
	}

	return types.FeeConfig{Numerator: numerator, Recipient: recipient}, nil
}

// SetFeeConfig validates and persists the protocol fee configuration.
func (k *Keeper) SetFeeConfig(ctx context.Context, config types.FeeConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	if err := k.FeeNumerator.Set(ctx, config.Numerator); err != nil {
		return err
	}

	return k.FeeRecipient.Set(ctx, config.Recipient)
}

// GetPaused reports whether the gate is currently halted.
func (k *Keeper) GetPaused(ctx context.Context) bool {
	paused, err := k.Paused.Get(ctx)
	if err != nil {
		return false
	}

	return paused
}

// GetVaultStats returns the cumulative yield and fees settled for a vault.
func (k *Keeper) GetVaultStats(ctx context.Context, vaultID uint64) (yieldPaid math.Int, feesPaid math.Int, err error) {
	yieldPaid, err = k.YieldPaid.Get(ctx, vaultID)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		yieldPaid = math.ZeroInt()
	}

	feesPaid, err = k.FeesPaid.Get(ctx, vaultID)
	if err != nil {
		if !errors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		feesPaid = math.ZeroInt()
	}

	return yieldPaid, feesPaid, nil
}

func (k *Keeper) addVaultStats(ctx context.Context, vaultID uint64, payout, fee math.Int) error {
	yieldPaid, feesPaid, err := k.GetVaultStats(ctx, vaultID)
	if err != nil {
		return err
	}

	yieldPaid, err = yieldPaid.SafeAdd(payout)
	if err != nil {
		return err
	}
	if err := k.YieldPaid.Set(ctx, vaultID, yieldPaid); err != nil {
		return err
	}

	feesPaid, err = feesPaid.SafeAdd(fee)
	if err != nil {
		return err
	}

	return k.FeesPaid.Set(ctx, vaultID, feesPaid)
}
