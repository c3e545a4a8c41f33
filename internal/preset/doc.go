// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package preset defines the named green/yellow/red threshold triples used to
// time a speech, the built-in preset table, and the validation rules applied
// to presets built from user input.
//
// # Invariant
//
// Every preset accepted by Validate satisfies 0 <= Green < Yellow < Red, with
// all thresholds expressed in whole seconds. Presets are plain values: picking
// a new one replaces the active preset, nothing mutates a preset in place.
//
// # Custom presets
//
// A Form carries the six minutes/seconds fields a user types in. Form.Preset
// converts them to seconds and applies the checks in a fixed order (negative
// values, minutes range, all-zero input, ordering), reporting the first
// violation as a *ValidationError. Seconds fields are left
// unbounded, so "4 min 90 sec" is accepted as 330 seconds.
package preset
