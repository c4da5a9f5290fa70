// Package durt computes the recursive size of filesystem paths.
//
// A Resolver walks each path using fastwalk without following symlinks and
// sums the lstat size of every node. UniqueTotal then combines the resolved
// entries into a grand total that counts nested paths only once, using a
// trie of canonical path components.
package durt
