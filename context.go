// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"fmt"
	"runtime"
	"sync"
)

// task is one unit of work for the render goroutine.
type task struct {
	f    func(Device)
	done chan error
}

// Context owns a Device and the single goroutine allowed to use it.
//
// The render goroutine is locked to its OS thread for its whole life, so
// thread-affine graphics APIs see every call on the same thread. Work is
// submitted with Do, which blocks until it ran.
type Context struct {
	dev     Device
	tasks   chan task
	quit    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
}

// NewContext starts the render goroutine for dev.
func NewContext(dev Device) *Context {
	c := &Context{
		dev:     dev,
		tasks:   make(chan task),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go c.loop()
	return c
}

func (c *Context) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(c.stopped)

	Logger().Info("overlay: render thread started")
	defer Logger().Info("overlay: render thread stopped")

	for {
		select {
		case t := <-c.tasks:
			c.run(t)
		case <-c.quit:
			// Run whatever is already waiting, then stop.
			for {
				select {
				case t := <-c.tasks:
					c.run(t)
				default:
					return
				}
			}
		}
	}
}

func (c *Context) run(t task) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("overlay: render task panicked: %v", r)
		}
		t.done <- err
	}()
	t.f(c.dev)
}

// Do runs f on the render goroutine and waits for it to return.
//
// f must not call Do on the same Context; code already running inside Do
// uses the Device it was given. A panic in f is recovered and returned as
// an error. Do on a closed Context returns ErrContextClosed without
// running f.
func (c *Context) Do(f func(Device)) error {
	if c == nil {
		return ErrNilContext
	}
	t := task{f: f, done: make(chan error, 1)}
	select {
	case c.tasks <- t:
	case <-c.quit:
		return ErrContextClosed
	}
	return <-t.done
}

// Closed reports whether Close has been called.
func (c *Context) Closed() bool {
	select {
	case <-c.quit:
		return true
	default:
		return false
	}
}

// Close stops the render goroutine after the work already submitted has
// run. The Device is not destroyed; it belongs to the caller. Close is
// idempotent.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		close(c.quit)
	})
	<-c.stopped
	return nil
}
