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
	"fmt"
	"strconv"
	"strings"

	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

const ModuleName = "timeless"

// ModuleAddress is the gate's account, holding pulled funds between the pull
// and the adapter deposit within a single call.
var ModuleAddress = authtypes.NewModuleAddress(ModuleName)

var (
	PausedKey             = []byte("gate/paused")
	NextVaultIDKey        = []byte("gate/next_vault_id")
	FeeNumeratorKey       = []byte("gate/fee_numerator")
	FeeRecipientKey       = []byte("gate/fee_recipient")
	VaultAdapterPrefix    = []byte("gate/vault_adapter/")
	VaultIDByAdapterKey   = []byte("gate/vault_id_by_adapter/")
	VaultCreatedAtPrefix  = []byte("gate/vault_created_at/")
	BaselinePrefix        = []byte("gate/baseline/")
	LastExchangeRateKey   = []byte("gate/last_exchange_rate/")
	YieldPaidPrefix       = []byte("gate/yield_paid/")
	FeesPaidPrefix        = []byte("gate/fees_paid/")
)

const (
	yieldClaimDenomPrefix     = "pyt/"
	principalClaimDenomPrefix = "nyt/"
)

// YieldClaimDenom returns the yield claim token denom for a vault.
func YieldClaimDenom(vaultID uint64) string {
	return fmt.Sprintf("%s%d", yieldClaimDenomPrefix, vaultID)
}

// PrincipalClaimDenom returns the principal claim token denom for a vault.
func PrincipalClaimDenom(vaultID uint64) string {
	return fmt.Sprintf("%s%d", principalClaimDenomPrefix, vaultID)
}

// ParseYieldClaimDenom extracts the vault identifier from a yield claim denom.
// The boolean flag reports whether the denom is shaped like a yield claim at
// all; callers must still check the vault exists in state.
func ParseYieldClaimDenom(denom string) (uint64, bool) {
	raw, found := strings.CutPrefix(denom, yieldClaimDenomPrefix)
	if !found {
		return 0, false
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}
