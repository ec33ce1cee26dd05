// Package scale implements the continuous mappings used to place weather data
// on a circular chart: linear, radial (area-true), time and color scales, plus
// domain nicing and tick generation.
//
// All scales are plain values. Building the same scale twice from the same
// inputs yields equal values, so callers can compare them directly.
package scale
