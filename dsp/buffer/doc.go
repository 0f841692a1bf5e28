// Package buffer provides pooled real/imaginary scratch frames for
// transform loops that would otherwise allocate two slices per frame.
package buffer
