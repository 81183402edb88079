// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import "log/slog"

// Option configures an Operation during creation.
//
// Example:
//
//	op, err := overlay.NewOperation(ctx, cache, img,
//		overlay.WithPlacement(overlay.Center),
//		overlay.WithImageSize(overlay.Sz(200, 200)),
//	)
type Option func(*options)

// options holds optional configuration for Operation creation.
type options struct {
	placement Placement
	imageSize Size
	placing   PlacementConfig
	loader    LoaderConfig
	logger    *slog.Logger
}

// defaultOptions returns the default operation options.
func defaultOptions() options {
	return options{
		placement: RightBottom,
		placing:   DefaultPlacementConfig(),
		loader:    DefaultLoaderConfig(),
	}
}

// WithPlacement sets where the overlay is anchored. Default: RightBottom.
func WithPlacement(p Placement) Option {
	return func(o *options) {
		o.placement = p
	}
}

// WithImageSize sets the overlay size at reference scale, independent of
// the bitmap's pixel size. Default: the bounds of the loaded image.
func WithImageSize(s Size) Option {
	return func(o *options) {
		o.imageSize = s
	}
}

// WithReferenceDimension sets the output dimension at which the overlay is
// drawn at its image size. Default: ReferenceDimension (1080).
func WithReferenceDimension(d float64) Option {
	return func(o *options) {
		if d > 0 {
			o.placing.ReferenceDimension = d
		}
	}
}

// WithMargin sets the LeftMiddle inset at reference scale.
// Default: LeftMiddleMargin (33).
func WithMargin(m float64) Option {
	return func(o *options) {
		o.placing.Margin = m
	}
}

// WithMaxTextureDimension limits the size of images accepted by the loader.
func WithMaxTextureDimension(d uint32) Option {
	return func(o *options) {
		o.loader.MaxTextureDimension = d
	}
}

// WithLogger sets the logger of the operation. Default: the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
