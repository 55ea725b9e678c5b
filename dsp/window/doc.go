// Package window provides the Tukey taper applied to finite observations
// before they are zero-padded and transformed.
package window
