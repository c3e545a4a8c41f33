// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package engine is the timer core. An Engine tracks elapsed speaking time,
// its run state and the active preset, and turns ticks and user commands into
// display frames, signal transitions and audio cue requests.
//
// # Core Concepts
//
//   - State: elapsed time, whether the timer runs, and the current signal.
//     Only the Engine mutates it.
//
//   - Clock reference: on every start the Engine records start = now - elapsed
//     and derives elapsed time from it on each tick. Elapsed time is never
//     accumulated from tick deltas, so irregular ticks and pause/resume cycles
//     do not drift.
//
//   - Transition: produced when a tick moves the timer into a new signal
//     band. Transitions are edge-triggered; sitting inside one band never
//     produces a second one.
//
// # Collaborators
//
// The Engine performs no I/O. A Renderer receives a Frame after every update,
// an AudioPlayer receives a Cue for every transition (unless muted), and any
// number of Observers receive Events. All of them are injected with options.
//
// # Threading
//
// The Engine is not safe for concurrent use. It is meant to be driven from a
// single goroutine, normally a scheduler.Loop that also delivers its ticks.
package engine
