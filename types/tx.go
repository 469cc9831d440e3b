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

// MsgServer is the gate's transactional surface.
type MsgServer interface {
	Enter(ctx context.Context, msg *MsgEnter) (*MsgEnterResponse, error)
	Exit(ctx context.Context, msg *MsgExit) (*MsgExitResponse, error)
	ClaimYield(ctx context.Context, msg *MsgClaimYield) (*MsgClaimYieldResponse, error)
	ClaimYieldAndEnter(ctx context.Context, msg *MsgClaimYieldAndEnter) (*MsgClaimYieldAndEnterResponse, error)
	RegisterVault(ctx context.Context, msg *MsgRegisterVault) (*MsgRegisterVaultResponse, error)
	SetProtocolFee(ctx context.Context, msg *MsgSetProtocolFee) (*MsgSetProtocolFeeResponse, error)
	SetPaused(ctx context.Context, msg *MsgSetPaused) (*MsgSetPausedResponse, error)
}

// MsgEnter pulls underlying or shares from the signer, deposits them, and
// mints an equal-value claim pair to the chosen recipients.
type MsgEnter struct {
	Signer             string
	PrincipalRecipient string
	YieldRecipient     string
	VaultId            uint64
	Amount             sdkmath.Int
	Mode               Mode
}

type MsgEnterResponse struct {
	AmountMinted sdkmath.Int
}

// MsgExit burns equal amounts of both claim tokens from the signer and pays
// the corresponding underlying or shares to the recipient.
type MsgExit struct {
	Signer    string
	Recipient string
	VaultId   uint64
	Amount    sdkmath.Int
	Mode      Mode
}

type MsgExitResponse struct {
	AmountWithdrawn sdkmath.Int
}

// MsgClaimYield settles the signer's accrued yield, skims the protocol fee,
// and pays the remainder to the recipient in the requested units.
type MsgClaimYield struct {
	Signer     string
	Recipient  string
	VaultId    uint64
	PayoutMode Mode
}

type MsgClaimYieldResponse struct {
	Payout sdkmath.Int
	Fee    sdkmath.Int
}

// MsgClaimYieldAndEnter settles the signer's accrued yield and re-mints the
// net payout as a fresh claim pair, skipping the round trip through the
// underlying asset. The protocol fee is still skimmed and paid externally.
type MsgClaimYieldAndEnter struct {
	Signer             string
	PrincipalRecipient string
	YieldRecipient     string
	VaultId            uint64
}

type MsgClaimYieldAndEnterResponse struct {
	AmountMinted sdkmath.Int
}

// MsgRegisterVault deploys the claim token pair for a vault adapter. Exactly
// one pair may exist per adapter; re-registration fails.
type MsgRegisterVault struct {
	Authority string
	AdapterId string
}

type MsgRegisterVaultResponse struct {
	VaultId             uint64
	YieldClaimDenom     string
	PrincipalClaimDenom string
}

// MsgSetProtocolFee updates the process-wide protocol fee configuration.
type MsgSetProtocolFee struct {
	Authority    string
	FeeNumerator sdkmath.Int
	FeeRecipient string
}

type MsgSetProtocolFeeResponse struct{}

// MsgSetPaused halts or resumes the gate's user-facing operations.
type MsgSetPaused struct {
	Authority string
	Paused    bool
}

type MsgSetPausedResponse struct{}
