// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import (
	"math/rand/v2"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// hashHandler hashes its argument to a 64-bit integer. The Rust original
// uses SeaHasher; this module uses github.com/cespare/xxhash/v2 (the
// pack's own hashing dependency, from _examples/MadAppGang-dingo) in its
// place — same role (a fast, non-cryptographic 64-bit string hash), a
// different concrete algorithm, so values won't match the Rust crate's
// but are just as deterministic. Grounded on BuiltinHash.
func hashHandler(args []string) (string, error) {
	if err := needArgs("hash", args, 1); err != nil {
		return "", err
	}
	return strconv.FormatUint(xxhash.Sum64String(args[0]), 10), nil
}

// randHandler returns a float in [0, 1). With a seed argument, the
// sequence is deterministic (seeded via the same xxhash used by
// "hash"); without one, it draws from the process-global source,
// matching spec.md §5's note that rand is the one handler relying on
// process-wide state. Grounded on BuiltinRand.
func randHandler(args []string) (string, error) {
	if len(args) > 0 {
		seed := xxhash.Sum64String(args[0])
		r := rand.New(rand.NewPCG(seed, seed))
		return formatFloat(r.Float64()), nil
	}
	return formatFloat(rand.Float64()), nil
}
