// Package analysis provides magnitude statistics over sampled fields.
//
// The package includes:
//
//   - [MaxMagnitude]: largest magnitude among samples
//   - [Normalize]: scale vectors and magnitudes by a reference magnitude
//   - [Summarize]: count, min, max, mean and spread of magnitudes
//   - [Histogram]: magnitude distribution in equal-width bins
//   - [MagnitudeMapASCII]: top-down shaded magnitude map
//
// # Normalization
//
// Renderers map arrow length and colour through normalized values:
//
//	max := analysis.MaxMagnitude(samples)
//	norm := analysis.Normalize(samples, max)
//	// every norm[i].NormMagnitude is in [0, 1]
package analysis
