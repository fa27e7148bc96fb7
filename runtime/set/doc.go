// Package set implements §4.11's state set: an open-addressed hash
// table over packed state bytes, hashed with 64-bit MurmurHash3, that
// expands in place via reference-counted current/next table pointers
// and cooperative chunked migration once occupancy crosses a
// threshold.
package set
