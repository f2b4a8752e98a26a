// Package numio reads and writes number sequences as plain text files, one
// value per line.
//
// The three operations have deliberately different failure contracts:
// Generate returns every error, ReadSequence logs and returns the values
// parsed so far, and WriteSequence logs and gives up.
package numio
