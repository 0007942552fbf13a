// Package cursor provides the cursor motion commands.
//
// Motions move the buffer point along line boundaries computed on demand
// from the flat text. Vertical motions step one line at a time and ring the
// bell when no adjacent line exists, keeping the steps already taken.
package cursor
