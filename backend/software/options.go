// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// Option configures a Device.
type Option func(*options)

type options struct {
	maxTextureDimension uint32
	validateShaders     bool
	logger              *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextureDimension: gputypes.DefaultLimits().MaxTextureDimension2D,
		validateShaders:     true,
	}
}

// WithMaxTextureDimension sets the largest texture or framebuffer side.
// Default: gputypes.DefaultLimits().MaxTextureDimension2D.
func WithMaxTextureDimension(d uint32) Option {
	return func(o *options) {
		o.maxTextureDimension = d
	}
}

// WithShaderValidation enables or disables compiling programs with naga.
// Default: enabled.
func WithShaderValidation(enabled bool) Option {
	return func(o *options) {
		o.validateShaders = enabled
	}
}

// WithLogger sets the device logger. Default: overlay.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
