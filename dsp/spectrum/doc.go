// Package spectrum provides the one-sided frequency-domain transform used by
// the likelihood, plus small power-spectrum helpers.
//
// Series are tapered with a Tukey window, zero padded on the right to the next
// power of two and transformed with an algo-fft plan. The zero-frequency bin
// is removed from every output because noise weighting is undefined there.
package spectrum
