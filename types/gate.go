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
	"time"

	sdkmath "cosmossdk.io/math"
)

// FeeBase is the denominator of the protocol fee fraction. A numerator of 100
// therefore charges fee/payout = 100/900 on every settlement.
const FeeBase = 1000

// Mode selects the units of an enter, exit, or claim payout.
type Mode int32

const (
	ModeUnspecified Mode = iota
	// ModeUnderlying denominates the operation in the vault's underlying asset.
	ModeUnderlying
	// ModeShares denominates the operation in vault shares.
	ModeShares
)

// Validate reports whether the mode is one of the two concrete modes.
func (m Mode) Validate() error {
	if m != ModeUnderlying && m != ModeShares {
		return ErrInvalidRequest.Wrapf("unknown mode %d", m)
	}
	return nil
}

// VaultRecord describes a registered vault and its deployed claim pair. The
// record is assembled from state and the adapter; only the adapter binding and
// creation time are stored.
type VaultRecord struct {
	ID                  uint64
	AdapterID           string
	UnderlyingDenom     string
	YieldClaimDenom     string
	PrincipalClaimDenom string
	CreatedAt           time.Time
}

// FeeConfig is the process-wide protocol fee: Numerator out of FeeBase routed
// to Recipient on every settlement.
type FeeConfig struct {
	Numerator sdkmath.Int
	Recipient string
}

// Validate enforces the fee invariant: a nonzero numerator requires a
// recipient, and the numerator must leave a nonzero payout share.
func (f FeeConfig) Validate() error {
	if f.Numerator.IsNil() || f.Numerator.IsNegative() {
		return ErrInvalidFeeConfig.Wrap("fee numerator must be non-negative")
	}
	if f.Numerator.GTE(sdkmath.NewInt(FeeBase)) {
		return ErrInvalidFeeConfig.Wrapf("fee numerator must be below the base of %d", FeeBase)
	}
	if f.Numerator.IsPositive() && f.Recipient == "" {
		return ErrInvalidFeeConfig.Wrap("nonzero fee requires a recipient")
	}
	return nil
}

// Settlement reports the outcome of flushing a holder's accrued yield.
type Settlement struct {
	Owed   sdkmath.Int
	Fee    sdkmath.Int
	Payout sdkmath.Int
	Rate   sdkmath.LegacyDec
}
