// Package tty answers questions about terminal descriptors: whether a
// descriptor is a terminal, how large the window is, and whether input is
// waiting to be read.
//
// InputReady never blocks. It polls the descriptor with a zero timeout and
// is meant for callers that poll first and read only when data is waiting.
package tty
