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

	"cosmossdk.io/errors"

	"github.com/senadek2/timeless/types"
)

var _ types.QueryServer = &queryServer{}

type queryServer struct {
	*Keeper
}

func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

func (q queryServer) PendingYield(ctx context.Context, req *types.QueryPendingYield) (*types.QueryPendingYieldResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	holder, err := q.address.StringToBytes(req.Holder)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid holder address: %s", req.Holder)
	}

	settlement, baseline, err := q.PendingSettlement(ctx, req.VaultId, holder)
	if err != nil {
		return nil, err
	}

	return &types.QueryPendingYieldResponse{
		Owed:     settlement.Owed,
		Fee:      settlement.Fee,
		Payout:   settlement.Payout,
		Rate:     settlement.Rate,
		Baseline: baseline,
	}, nil
}

func (q queryServer) Vault(ctx context.Context, req *types.QueryVault) (*types.QueryVaultResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	record, found, err := q.GetVaultRecord(ctx, req.VaultId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(types.ErrVaultNotFound, "vault %d", req.VaultId)
	}

	return &types.QueryVaultResponse{Vault: record}, nil
}

func (q queryServer) Vaults(ctx context.Context, req *types.QueryVaults) (*types.QueryVaultsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	var records []types.VaultRecord
	err := q.IterateVaults(ctx, func(record types.VaultRecord) (bool, error) {
		records = append(records, record)
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return &types.QueryVaultsResponse{Vaults: records}, nil
}

func (q queryServer) ProtocolFee(ctx context.Context, req *types.QueryProtocolFee) (*types.QueryProtocolFeeResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	config, err := q.GetFeeConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &types.QueryProtocolFeeResponse{
		FeeNumerator: config.Numerator,
		FeeBase:      types.FeeBase,
		FeeRecipient: config.Recipient,
	}, nil
}

func (q queryServer) VaultStats(ctx context.Context, req *types.QueryVaultStats) (*types.QueryVaultStatsResponse, error) {
	if req == nil {
		return nil, errors.Wrap(types.ErrInvalidRequest, "request cannot be nil")
	}

	yieldPaid, feesPaid, err := q.GetVaultStats(ctx, req.VaultId)
	if err != nil {
		return nil, err
	}

	return &types.QueryVaultStatsResponse{YieldPaid: yieldPaid, FeesPaid: feesPaid}, nil
}
