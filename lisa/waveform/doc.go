// Package waveform synthesizes the linear chirp used as the signal model.
//
// Amplitude and base frequency live in an [Experiment] value rather than in
// package constants, so tests and callers can vary them explicitly. Only the
// frequency derivative fdot is treated as a free parameter.
package waveform
