// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package wsq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent scenarios: a thief's pre-CAS slot copy
// is a benign data race by construction, and the detector cannot see the
// happens-before edges carried by the top/bottom atomics.
const RaceEnabled = true
