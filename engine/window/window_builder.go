package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the base window title. Hints are appended to it.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size. Non-positive values keep the default 1280x720.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 && height > 0 {
			w.width, w.height = width, height
		}
	}
}

// WithSizeLimits bounds the size the user can resize the window to.
//
// Parameters:
//   - minWidth, minHeight: minimum size in pixels
//   - maxWidth, maxHeight: maximum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithClickSlop sets how far the cursor may travel between press and release for the
// release to still fire click listeners.
//
// Parameters:
//   - pixels: the allowed travel, negative values are ignored
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithClickSlop(pixels float64) WindowBuilderOption {
	return func(w *engineWindow) {
		if pixels >= 0 {
			w.clickSlop = pixels
		}
	}
}

// WithRawMouseMotion toggles unaccelerated mouse motion while the pointer is locked,
// where the platform supports it. Enabled by default.
//
// Parameters:
//   - enabled: true to request raw motion
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithRawMouseMotion(enabled bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.rawMotion = enabled
	}
}
