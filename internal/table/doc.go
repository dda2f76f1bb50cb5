// Package table loads a CSV file into memory as a header plus rows of string
// cells, lets callers edit cells in place, and writes a row prefix back out as
// UTF-8 with a byte-order mark so spreadsheet tools keep non-Latin scripts intact.
package table
