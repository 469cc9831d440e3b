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
	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/senadek2/timeless/types"
)

// Keeper is the accounting engine ("gate"). It owns the per-vault exchange
// rate snapshots and per-holder baselines, and orchestrates minting, burning,
// and yield settlement around the claim token pair of every registered vault.
type Keeper struct {
	authority string

	store store.KVStoreService

	logger  log.Logger
	header  header.Service
	event   event.Service
	address address.Codec
	bank    types.BankKeeper

	adapters map[string]types.VaultAdapter

	Paused           collections.Item[bool]
	NextVaultID      collections.Item[uint64]
	FeeNumerator     collections.Item[math.Int]
	FeeRecipient     collections.Item[string]
	VaultAdapters    collections.Map[uint64, string]
	VaultIDByAdapter collections.Map[string, uint64]
	VaultCreatedAt   collections.Map[uint64, int64]
	Baselines        collections.Map[collections.Pair[uint64, []byte], math.LegacyDec]
	LastExchangeRate collections.Map[uint64, math.LegacyDec]
	YieldPaid        collections.Map[uint64, math.Int]
	FeesPaid         collections.Map[uint64, math.Int]
}

func NewKeeper(
	authority string,
	store store.KVStoreService,
	logger log.Logger,
	header header.Service,
	event event.Service,
	address address.Codec,
	bank types.BankKeeper,
) *Keeper {
	builder := collections.NewSchemaBuilder(store)

	keeper := &Keeper{
		authority: authority,

		store: store,

		logger:  logger.With("module", types.ModuleName),
		header:  header,
		event:   event,
		address: address,
		bank:    bank,

		adapters: make(map[string]types.VaultAdapter),

		Paused:           collections.NewItem(builder, types.PausedKey, "paused", collections.BoolValue),
		NextVaultID:      collections.NewItem(builder, types.NextVaultIDKey, "next_vault_id", collections.Uint64Value),
		FeeNumerator:     collections.NewItem(builder, types.FeeNumeratorKey, "fee_numerator", sdk.IntValue),
		FeeRecipient:     collections.NewItem(builder, types.FeeRecipientKey, "fee_recipient", collections.StringValue),
		VaultAdapters:    collections.NewMap(builder, types.VaultAdapterPrefix, "vault_adapters", collections.Uint64Key, collections.StringValue),
		VaultIDByAdapter: collections.NewMap(builder, types.VaultIDByAdapterKey, "vault_id_by_adapter", collections.StringKey, collections.Uint64Value),
		VaultCreatedAt:   collections.NewMap(builder, types.VaultCreatedAtPrefix, "vault_created_at", collections.Uint64Key, collections.Int64Value),
		Baselines:        collections.NewMap(builder, types.BaselinePrefix, "baselines", collections.PairKeyCodec(collections.Uint64Key, collections.BytesKey), sdk.LegacyDecValue),
		LastExchangeRate: collections.NewMap(builder, types.LastExchangeRateKey, "last_exchange_rate", collections.Uint64Key, sdk.LegacyDecValue),
		YieldPaid:        collections.NewMap(builder, types.YieldPaidPrefix, "yield_paid", collections.Uint64Key, sdk.IntValue),
		FeesPaid:         collections.NewMap(builder, types.FeesPaidPrefix, "fees_paid", collections.Uint64Key, sdk.IntValue),
	}

	_, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return keeper
}

// SetBankKeeper overwrites the bank keeper used in this module.
func (k *Keeper) SetBankKeeper(bank types.BankKeeper) {
	k.bank = bank
}

// RegisterVaultAdapter injects the adapter implementation for an external
// yield protocol under the given identifier. Deploying a claim pair
// (RegisterVault) requires the adapter to be present here first.
func (k *Keeper) RegisterVaultAdapter(id string, adapter types.VaultAdapter) {
	k.adapters[id] = adapter
}

// GetAuthority returns the address allowed to run privileged operations.
func (k *Keeper) GetAuthority() string {
	return k.authority
}
