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

// Package fixedpoint provides the overflow-safe multiply-then-divide primitive
// that underlies every unit conversion in the gate. The intermediate product
// is kept at 512 bits so a*b exceeding 256 bits never corrupts the result; the
// only precision loss anywhere is the single final floor division.
package fixedpoint

import (
	"errors"

	sdkmath "cosmossdk.io/math"
	"github.com/holiman/uint256"
)

var (
	// ErrDivisionByZero is returned when the denominator is zero.
	ErrDivisionByZero = errors.New("fixedpoint: division by zero")
	// ErrOverflow is returned when an operand or the final quotient does not
	// fit in 256 bits.
	ErrOverflow = errors.New("fixedpoint: result overflows 256 bits")
)

// MulDiv computes floor(a * b / denominator) with a double-width intermediate.
// It never saturates or wraps: a zero denominator or a quotient above 2^256-1
// is an error.
func MulDiv(a, b, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, ErrDivisionByZero
	}

	result, overflow := new(uint256.Int).MulDivOverflow(a, b, denominator)
	if overflow {
		return nil, ErrOverflow
	}

	return result, nil
}

// MulDivInt is MulDiv over cosmos math integers, which is how all keeper state
// is denominated. Negative operands are rejected; the result is exact floor
// division.
func MulDivInt(a, b, denominator sdkmath.Int) (sdkmath.Int, error) {
	x, err := FromInt(a)
	if err != nil {
		return sdkmath.Int{}, err
	}
	y, err := FromInt(b)
	if err != nil {
		return sdkmath.Int{}, err
	}
	d, err := FromInt(denominator)
	if err != nil {
		return sdkmath.Int{}, err
	}

	q, err := MulDiv(x, y, d)
	if err != nil {
		return sdkmath.Int{}, err
	}

	return ToInt(q), nil
}

// FromInt converts a cosmos math integer into a 256-bit word.
func FromInt(i sdkmath.Int) (*uint256.Int, error) {
	if i.IsNil() || i.IsNegative() {
		return nil, ErrOverflow
	}

	u, overflow := uint256.FromBig(i.BigInt())
	if overflow {
		return nil, ErrOverflow
	}

	return u, nil
}

// FromLegacyDec converts a decimal into its 10^18-scaled integer form, the
// representation used for exchange rates in every conversion.
func FromLegacyDec(d sdkmath.LegacyDec) (*uint256.Int, error) {
	if d.IsNil() || d.IsNegative() {
		return nil, ErrOverflow
	}

	u, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return nil, ErrOverflow
	}

	return u, nil
}

// ToInt converts a 256-bit word back into a cosmos math integer.
func ToInt(u *uint256.Int) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(u.ToBig())
}
