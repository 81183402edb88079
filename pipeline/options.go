// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pipeline

import "log/slog"

// DefaultCapacity is the default number of idle framebuffers a Cache keeps.
const DefaultCapacity = 8

// Option configures a Cache.
type Option func(*options)

type options struct {
	capacity int
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{capacity: DefaultCapacity}
}

// WithCapacity sets how many idle framebuffers are kept for reuse.
// 0 keeps every returned framebuffer. Negative values are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.capacity = n
		}
	}
}

// WithLogger sets the cache logger. Default: overlay.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
