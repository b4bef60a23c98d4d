// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import "strconv"

// intHandler converts to an integer, with an optional base (2-36) to
// parse the input from. Grounded on BuiltinInt.
func intHandler(args []string) (string, error) {
	if err := needArgs("int", args, 1); err != nil {
		return "", err
	}
	if len(args) > 1 {
		base, err := toNumber(2, args[1])
		if err != nil {
			return "", err
		}
		b := int(base)
		if b < 2 || b > 36 {
			return "", userErr("invalid base %d (must be between 2 and 36, inclusive)", b)
		}
		v, err := strconv.ParseInt(args[0], b, 64)
		if err != nil {
			return "", userErr("failed to convert %s to a number with base %d", args[0], b)
		}
		return strconv.FormatInt(v, 10), nil
	}
	v, err := toNumber(1, args[0])
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(int64(v), 10), nil
}

// radixHandler formats value (parsed as a number, then truncated to
// int64) in the given base. Grounded on BuiltinHex/BuiltinBin/BuiltinOct.
func radixHandler(name string, base int) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		if err := needArgs(name, args, 1); err != nil {
			return "", err
		}
		v, err := toNumber(1, args[0])
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(int64(v), base), nil
	}
}

// shift adapts a two-argument bit-shift into a Handler. shl/shr are not
// present in the retrieved stdlib.rs snapshot — spec.md §8 scenario 2
// requires a "shl" with the exact error message "shift amount of 100 is
// too large", so it is reconstructed here as a natural sibling of
// hex/bin/oct, sharing their int64-truncation convention. Shift amounts
// of 64 or more are rejected the way a Rust `<<`/`>>` would panic on
// overflow in debug builds.
func shift(name string, left bool) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		if err := needArgs(name, args, 2); err != nil {
			return "", err
		}
		v, err := toNumber(1, args[0])
		if err != nil {
			return "", err
		}
		amt, err := toNumber(2, args[1])
		if err != nil {
			return "", err
		}
		n := int64(amt)
		if n < 0 || n >= 64 {
			return "", userErr("shift amount of %d is too large", n)
		}
		iv := int64(v)
		if left {
			return strconv.FormatInt(iv<<uint(n), 10), nil
		}
		return strconv.FormatInt(iv>>uint(n), 10), nil
	}
}

// bitwiseBinary adapts a two-argument int64 bitwise op into a Handler.
// Reconstructed siblings of shl/shr rounding out the bitwise surface.
func bitwiseBinary(name string, op func(a, b int64) int64) func(args []string) (string, error) {
	return func(args []string) (string, error) {
		if err := needArgs(name, args, 2); err != nil {
			return "", err
		}
		a, err := toNumber(1, args[0])
		if err != nil {
			return "", err
		}
		b, err := toNumber(2, args[1])
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(op(int64(a), int64(b)), 10), nil
	}
}

// bnot is the one-argument bitwise complement.
func bnot(args []string) (string, error) {
	if err := needArgs("bnot", args, 1); err != nil {
		return "", err
	}
	v, err := toNumber(1, args[0])
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(^int64(v), 10), nil
}
