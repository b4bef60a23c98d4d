// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package stdlib

import "github.com/nate-chandler/macroscript/internal/handler"

// Register installs every helper handler described in SPEC_FULL.md §2
// into reg. Core handlers (try/load/store/drop/get/is_stored) are not
// here — the rewrite engine implements those directly since they touch
// engine state, per spec.md's "core handler" distinction.
func Register(reg handler.Registry) {
	arithmetic := map[string]func([]string) (string, error){
		"add":      add,
		"multiply": multiply,
		"subtract": subtract.Apply,
		"divide":   divide.Apply,
		"mod":      mod.Apply,
		"pow":      pow.Apply,
		"log":      logHandler,
		"sqrt":     sqrtHandler.Apply,
		"abs":      absHandler.Apply,
		"min":      minHandler.Apply,
		"max":      maxHandler.Apply,
		"round":    roundHandler.Apply,
		"floor":    floorHandler.Apply,
		"ceil":     ceilHandler.Apply,
		"neg":      negHandler.Apply,
	}
	trig := map[string]func([]string) (string, error){
		"sin":     sinHandler.Apply,
		"cos":     cosHandler.Apply,
		"tan":     tanHandler.Apply,
		"asin":    asinHandler.Apply,
		"acos":    acosHandler.Apply,
		"atan":    atanHandler.Apply,
		"atan2":   atan2Handler.Apply,
		"deg2rad": deg2radHandler.Apply,
		"rad2deg": rad2degHandler.Apply,
	}
	bitwise := map[string]func([]string) (string, error){
		"int":  intHandler,
		"hex":  radixHandler("hex", 16),
		"bin":  radixHandler("bin", 2),
		"oct":  radixHandler("oct", 8),
		"shl":  shift("shl", true),
		"shr":  shift("shr", false),
		"band": bitwiseBinary("band", func(a, b int64) int64 { return a & b }),
		"bor":  bitwiseBinary("bor", func(a, b int64) int64 { return a | b }),
		"bxor": bitwiseBinary("bxor", func(a, b int64) int64 { return a ^ b }),
		"bnot": bnot,
	}
	compare := map[string]func([]string) (string, error){
		"equal":     equal,
		"#equal":    numEqual,
		"greater":   greater,
		"less":      less,
		"not":       not,
		"and":       and,
		"or":        or,
		"xor":       xor,
		"is_number": isNumber,
	}
	str := map[string]func([]string) (string, error){
		"len":          lenHandler,
		"split":        splitHandler,
		"select":       selectHandler,
		"slice":        sliceHandler,
		"replace":      replaceHandler,
		"upper":        upper,
		"lower":        lower,
		"trim":         trim,
		"reverse":      reverse,
		"concat":       concat,
		"repeat":       repeat,
		"contains":     contains,
		"starts_with":  startsWith,
		"ends_with":    endsWith,
		"pad_left":     pad("pad_left", true),
		"pad_right":    pad("pad_right", false),
		"chr":          chrHandler,
		"ord":          ordHandler,
	}
	hashRandom := map[string]func([]string) (string, error){
		"hash": hashHandler,
		"rand": randHandler,
	}
	control := map[string]func([]string) (string, error){
		"if":       ifHandler,
		"error":    errorHandler,
		"assert":   assertHandler,
		"unescape": unescapeHandler,
	}

	for _, group := range []map[string]func([]string) (string, error){
		arithmetic, trig, bitwise, compare, str, hashRandom, control,
	} {
		for name, fn := range group {
			reg.RegisterFunc(name, fn)
		}
	}
}
