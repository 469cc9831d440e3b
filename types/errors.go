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

import "cosmossdk.io/errors"

var (
	// ErrInvalidRequest is returned for malformed messages and addresses.
	ErrInvalidRequest = errors.Register(ModuleName, 1, "invalid request")
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = errors.Register(ModuleName, 2, "invalid amount")
	// ErrMismatchedClaims is returned when an exit is attempted without
	// holding equal quantities of both claim tokens.
	ErrMismatchedClaims = errors.Register(ModuleName, 3, "mismatched claim token balances")
	// ErrInvalidFeeConfig is returned when a nonzero protocol fee is paired
	// with an empty recipient, or the numerator exceeds the fee base.
	ErrInvalidFeeConfig = errors.Register(ModuleName, 4, "invalid protocol fee configuration")
	// ErrVaultExists is returned when a claim pair is already deployed for
	// the adapter.
	ErrVaultExists = errors.Register(ModuleName, 5, "claim pair already deployed for vault")
	// ErrVaultNotFound is returned for operations against an unregistered vault.
	ErrVaultNotFound = errors.Register(ModuleName, 6, "vault not found")
	// ErrUnauthorized is returned for privileged operations from the wrong
	// signer, and for transfer hook invocations that are not backed by a
	// registered yield claim token.
	ErrUnauthorized = errors.Register(ModuleName, 7, "unauthorized")
	// ErrAdapterFailure wraps failures reported by the external vault adapter.
	ErrAdapterFailure = errors.Register(ModuleName, 8, "vault adapter failure")
	// ErrPaused is returned while the gate is halted.
	ErrPaused = errors.Register(ModuleName, 9, "gate is paused")
	// ErrArithmetic wraps fixed-point overflow and division-by-zero failures.
	ErrArithmetic = errors.Register(ModuleName, 10, "arithmetic failure")
	// ErrSharesNotTransferable is returned for share-mode operations against
	// vaults whose shares cannot be moved independently.
	ErrSharesNotTransferable = errors.Register(ModuleName, 11, "vault shares are not transferable")
)
