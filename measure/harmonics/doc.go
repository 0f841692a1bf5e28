// Package harmonics groups spectral peaks into harmonic series and measures
// harmonic distortion relative to a fundamental.
//
// Grouping is greedy: candidate fundamentals are visited strongest first and
// claim the closest unclaimed peak for each harmonic number. A peak claimed
// by a stronger fundamental is unavailable to weaker ones, so results depend
// on the magnitude order of the input.
package harmonics
