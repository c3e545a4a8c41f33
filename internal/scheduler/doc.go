// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package scheduler provides the cancellable repeating tasks that drive the
// timer, and the single-threaded loop every timer mutation runs on.
//
// # Why a Loop
//
// The timer is touched by two independent sources: the periodic tick that
// advances elapsed time and the commands a user types (start, pause, reset,
// preset changes). Rather than guarding the engine with locks, both sources
// post closures onto a Loop, and the Loop runs them one at a time on its own
// goroutine. Nothing outside the Loop ever mutates timer state, so the engine
// itself stays lock-free.
//
// # How It Works
//
//  1. Loop.Every starts a clock ticker and returns a Task handle.
//  2. A small goroutine forwards each tick onto the Loop as a closure.
//  3. Loop.Run executes closures in order until its context is cancelled.
//  4. Task.Stop stops the ticker. Ticks already queued but not yet run are
//     dropped, so no tick is ever delivered after Stop returns.
//
// # Relationship with Other Components
//
//   - **Engine:** owns at most one Task, created on start and stopped on
//     pause or reset.
//   - **Console:** posts user commands onto the same Loop.
//   - **Clock:** supplies tickers, which lets tests drive the Loop with a
//     fake clock.
package scheduler
