// Package fuzzydate joins tables on dates that do not line up exactly.
//
// A Table is an immutable set of named columns of Values. Merge adds to every
// row of a main table the values of an auxiliary table taken from the rows of
// the same group whose date is the closest:
//   - within a tolerance, if any;
//   - otherwise on or before the main date;
//   - otherwise at any distance.
//
// Each feature column falls back on its own, so a row may get a value from a
// tolerant match for one feature and from a backward match for another, when
// the first matched row has a missing value.
//
// Tables are read and written as JSONL, CSV or XLSX files, see Load and Save.
package fuzzydate
