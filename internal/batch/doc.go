// Package batch drives a translation job over a row range of a CSV table.
//
// A Job names the input file, the column to translate, a half-open row range
// written as "start:end" and the output directory. Runner validates the job,
// translates the cells of the range one at a time with a fixed pacing delay,
// reports progress to an Observer and writes rows [0, end) to
// BANGLA_<input>_rows_<start>-<end-1>.csv in the output directory.
package batch
