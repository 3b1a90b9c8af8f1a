// SPDX-License-Identifier: MIT

// Package codec reads and writes spatial weights as plain text.
//
//	GAL  unweighted. Header, then per observation a "key count" line
//	     followed by a line of neighbor keys.
//	GWT  weighted. Header, then one "from to weight" line per edge.
//	KWT  GWT plus "key key weight" lines carrying kernel self-weights.
//
// The header is "0 N layer key": the layer is quoted when it is empty or
// contains spaces, and key names the ID column. Files whose header is a
// bare "N", has a zero second field, or lacks the key use record order:
// integer keys min..min+N-1 map onto observations 0..N-1.
//
// Keys come from an IDColumn, which must hold N unique values without
// whitespace. Readers validate counts, unknown keys and duplicate rows.
package codec
