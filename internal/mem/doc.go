// Package mem allocates register-aligned numeric storage.
//
// Dense matrices and vectors are backed by slices whose first element lies on
// a 64-byte boundary, so a padded row starts on a register boundary whenever
// its stride is a whole number of lanes.
package mem
