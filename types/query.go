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
)

// QueryServer is the gate's read-only surface. No query mutates state.
type QueryServer interface {
	PendingYield(ctx context.Context, req *QueryPendingYield) (*QueryPendingYieldResponse, error)
	Vault(ctx context.Context, req *QueryVault) (*QueryVaultResponse, error)
	Vaults(ctx context.Context, req *QueryVaults) (*QueryVaultsResponse, error)
	ProtocolFee(ctx context.Context, req *QueryProtocolFee) (*QueryProtocolFeeResponse, error)
	VaultStats(ctx context.Context, req *QueryVaultStats) (*QueryVaultStatsResponse, error)
}

// QueryPendingYield reports what a ClaimYield by holder would settle right now.
type QueryPendingYield struct {
	VaultId uint64
	Holder  string
}

type QueryPendingYieldResponse struct {
	Owed     sdkmath.Int
	Fee      sdkmath.Int
	Payout   sdkmath.Int
	Rate     sdkmath.LegacyDec
	Baseline sdkmath.LegacyDec
}

type QueryVault struct {
	VaultId uint64
}

type QueryVaultResponse struct {
	Vault VaultRecord
}

type QueryVaults struct{}

type QueryVaultsResponse struct {
	Vaults []VaultRecord
}

type QueryProtocolFee struct{}

type QueryProtocolFeeResponse struct {
	FeeNumerator sdkmath.Int
	FeeBase      int64
	FeeRecipient string
}

// QueryVaultStats reports cumulative settled amounts for a vault.
type QueryVaultStats struct {
	VaultId uint64
}

type QueryVaultStatsResponse struct {
	YieldPaid sdkmath.Int
	FeesPaid  sdkmath.Int
}
