// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestContextDoRunsOnDevice(t *testing.T) {
	ctx, dev := newTestContext(t)

	var got Device
	if err := ctx.Do(func(d Device) { got = d }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != dev {
		t.Error("Do did not pass the context's device")
	}
}

func TestContextDoSerializes(t *testing.T) {
	ctx, _ := newTestContext(t)

	var (
		inside atomic.Int32
		maxIn  atomic.Int32
		total  int
		wg     sync.WaitGroup
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ctx.Do(func(Device) {
				n := inside.Add(1)
				if n > maxIn.Load() {
					maxIn.Store(n)
				}
				total++
				inside.Add(-1)
			})
		}()
	}
	wg.Wait()

	if maxIn.Load() != 1 {
		t.Errorf("max concurrent tasks = %d, want 1", maxIn.Load())
	}
	if total != 32 {
		t.Errorf("total = %d, want 32", total)
	}
}

func TestContextDoRecoversPanic(t *testing.T) {
	ctx, _ := newTestContext(t)

	err := ctx.Do(func(Device) { panic("boom") })
	if err == nil {
		t.Fatal("Do should report a panicking task")
	}
	if err := ctx.Do(func(Device) {}); err != nil {
		t.Errorf("context unusable after panic: %v", err)
	}
}

func TestContextClose(t *testing.T) {
	dev := newRecordingDevice()
	ctx := NewContext(dev)

	if ctx.Closed() {
		t.Fatal("new context reports closed")
	}
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ctx.Closed() {
		t.Error("Closed() = false after Close")
	}
	if err := ctx.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	ran := false
	err := ctx.Do(func(Device) { ran = true })
	if !errors.Is(err, ErrContextClosed) {
		t.Errorf("Do after Close = %v, want ErrContextClosed", err)
	}
	if ran {
		t.Error("task ran after Close")
	}
}

func TestContextNil(t *testing.T) {
	var ctx *Context
	if err := ctx.Do(func(Device) {}); !errors.Is(err, ErrNilContext) {
		t.Errorf("nil Do = %v, want ErrNilContext", err)
	}
}
