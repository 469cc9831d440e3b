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
	"testing"

	"cosmossdk.io/collections/colltest"
	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/codec/address"

	"github.com/senadek2/timeless/keeper"
	"github.com/senadek2/timeless/utils"
)

// Authority is the privileged account used across tests.
var Authority = utils.TestAccount().Address

// TimelessKeeper builds a keeper on an in-memory store with the given bank.
// Callers wanting the transfer hook active must wire it afterwards:
//
//	bank.Restriction = k.SendRestrictionFn
//	k.SetBankKeeper(bank)
func TimelessKeeper(t *testing.T, bank BankKeeper) (*keeper.Keeper, context.Context) {
	t.Helper()

	store, ctx := colltest.MockStore()

	k := keeper.NewKeeper(
		Authority,
		store,
		log.NewNopLogger(),
		HeaderService{},
		EventService{},
		address.NewBech32Codec("cosmos"),
		bank,
	)

	return k, ctx
}
