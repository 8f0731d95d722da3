// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so that code which
// waits (the device-login poll loop, the terminal spinner) can be
// driven deterministically in tests.
//
// Production code holds a [Clock] and receives [Real]. Tests use
// [Fake], register the goroutine under test, then step time forward:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go flow.Run(ctx)
//	fake.WaitForTimers(1)          // the flow is now sleeping
//	fake.Advance(5 * time.Second)  // wake it up
//
// WaitForTimers removes the race between a goroutine registering a
// timer and the test advancing past its deadline.
package clock
