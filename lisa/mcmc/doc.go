// Package mcmc estimates the frequency derivative of a chirp with a
// Metropolis sampler.
//
// A [Posterior] binds the measured spectrum, its per-bin noise variance and
// the time grid, and evaluates
//
//	log p(fdot | d) = log prior(fdot) - 1/2 sum |d - h(fdot)|^2 / variance
//
// where h(fdot) is the tapered, zero-padded one-sided transform of the chirp.
// A [Sampler] drives a Gaussian random walk over fdot, accepting in log space,
// and records every state in pre-sized buffers. Randomness comes only from
// the *rand.Rand passed to [Sampler.Run].
package mcmc
