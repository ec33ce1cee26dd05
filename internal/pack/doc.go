// Package pack lays out weighted circles inside a square without overlap.
//
// Circles are placed with the front-chain algorithm of Wang et al. ("Visualization
// of large hierarchical data by circle packing", 2006) and the cluster is fitted
// into the square using its minimal enclosing circle (Welzl). Enclosing-circle
// input order is shuffled with a fixed-seed linear congruential generator, so a
// given weight list always produces the same layout.
package pack
