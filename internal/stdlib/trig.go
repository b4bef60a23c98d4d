// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import "math"

// Trigonometric handlers. Not present in the retrieved stdlib.rs
// snapshot; reconstructed as the natural trig counterpart to the
// arithmetic handlers, using the same one/two-argument float64 shape as
// pow/log. spec.md §2's helper-library row ("≈50 built-in handlers")
// and SPEC_FULL.md §2 call these out by name.
var (
	sinHandler  = unaryNumeric("sin", math.Sin)
	cosHandler  = unaryNumeric("cos", math.Cos)
	tanHandler  = unaryNumeric("tan", math.Tan)
	asinHandler = unaryNumeric("asin", math.Asin)
	acosHandler = unaryNumeric("acos", math.Acos)
	atanHandler = unaryNumeric("atan", math.Atan)

	atan2Handler = binaryNumeric("atan2", math.Atan2)

	deg2radHandler = unaryNumeric("deg2rad", func(a float64) float64 { return a * math.Pi / 180 })
	rad2degHandler = unaryNumeric("rad2deg", func(a float64) float64 { return a * 180 / math.Pi })
)
