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

package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VaultAdapter is the pluggable boundary to an external yield protocol. A new
// protocol is supported by implementing this interface only; the gate never
// changes. The exchange rate must be read fresh on every call, never cached,
// since vault state moves between calls.
//
// Adapters whose shares cannot be moved independently report
// SharesTransferable() == false and must reject PullShares and PushShares;
// both flavors must agree on PricePerShare.
type VaultAdapter interface {
	// UnderlyingDenom returns the denom of the vault's deposited base asset.
	UnderlyingDenom() string

	// ShareDenom returns the denom of the vault's share token, or an empty
	// string when shares are not independently transferable.
	ShareDenom() string

	// SharesTransferable reports whether vault shares can be pulled from and
	// pushed to external accounts.
	SharesTransferable() bool

	// PricePerShare returns the current exchange rate in underlying units per
	// whole share.
	PricePerShare(ctx context.Context) (sdkmath.LegacyDec, error)

	// DepositUnderlying moves amount of the underlying asset from the given
	// account into the vault and returns the shares credited to the gate.
	DepositUnderlying(ctx context.Context, from sdk.AccAddress, amount sdkmath.Int) (sdkmath.Int, error)

	// WithdrawUnderlying withdraws amount of the underlying asset from the
	// gate's vault position directly to recipient. When allowPartial is set
	// and the requested amount exceeds the maximum currently withdrawable,
	// the maximum is withdrawn instead; the actual amount is returned.
	WithdrawUnderlying(ctx context.Context, amount sdkmath.Int, recipient sdk.AccAddress, allowPartial bool) (sdkmath.Int, error)

	// PullShares moves vault shares from the given account into the gate's
	// position. Fails for non-transferable share flavors.
	PullShares(ctx context.Context, from sdk.AccAddress, shares sdkmath.Int) error

	// PushShares moves vault shares out of the gate's position to recipient.
	// Fails for non-transferable share flavors.
	PushShares(ctx context.Context, to sdk.AccAddress, shares sdkmath.Int) error
}
