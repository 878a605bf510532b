// Package wfc generates track layouts by Wave Function Collapse over a 4-connected grid.
//
// Components:
//   - Model: static [tile][direction] compatibility table
//   - Grid: per-cell tile domains, collapse flags and entropy
//   - SelectNext: minimum-entropy cell with uniform random tie-break
//   - Collapse: commits a cell to one tile of its domain
//   - Propagate: breadth-first outward narrowing of neighbor domains
//   - Driver: one select/collapse/propagate cycle per Step, full reset on contradiction
//
// A contradiction invalidates the whole run; there is no backtracking.
// Randomness comes from an injectable Rand so runs are reproducible under a seed.
package wfc
