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

// Event types emitted by the gate.
const (
	EventTypeEnter           = "timeless.enter"
	EventTypeExit            = "timeless.exit"
	EventTypeClaimYield      = "timeless.claim_yield"
	EventTypeSettle          = "timeless.settle"
	EventTypeVaultRegistered = "timeless.vault_registered"
	EventTypeProtocolFeeSet  = "timeless.protocol_fee_set"
	EventTypePausedSet       = "timeless.paused_set"
)

// Event attribute keys.
const (
	AttributeKeyVaultID      = "vault_id"
	AttributeKeySigner       = "signer"
	AttributeKeyHolder       = "holder"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyAmount       = "amount"
	AttributeKeyMode         = "mode"
	AttributeKeyOwed         = "owed"
	AttributeKeyFee          = "fee"
	AttributeKeyPayout       = "payout"
	AttributeKeyRate         = "rate"
	AttributeKeyAdapterID    = "adapter_id"
	AttributeKeyYieldDenom   = "yield_claim_denom"
	AttributeKeyPrincipal    = "principal_claim_denom"
	AttributeKeyFeeNumerator = "fee_numerator"
	AttributeKeyFeeRecipient = "fee_recipient"
	AttributeKeyPaused       = "paused"
)
