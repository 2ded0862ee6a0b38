// Package buffer implements the mutable text representation backing every
// open document (spec.md §3 "Text Buffer", §4.1 component C1).
//
// The buffer is a treap (a randomized, priority-balanced binary search tree)
// whose leaves hold runs of text capped at leafMaxRunes runes. Each node
// caches the aggregate byte/char/line-break counts of its subtree, so every
// index conversion and edit descends the tree along a single root-to-leaf
// path — O(log n) expected, matching spec.md §4.1's amortized bound — rather
// than rescanning the whole document the way a flat string buffer would.
//
// This mirrors the role ropey::Rope plays in original_source (the Rust
// program this spec was distilled from): a chunked, indexable text
// structure that both supports cheap incremental edits and exposes its
// chunks for streaming consumption by the word search (pkg/wordsearch).
package buffer

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/scls-go/pkg/scerr"
)

// leafMaxRunes bounds how many runes a single leaf's text may hold before an
// insert splits it into siblings. Kept small enough that a descent+leaf scan
// stays cheap, large enough to avoid excessive node counts for typical
// source files.
const leafMaxRunes = 1024

type node struct {
	left, right *node
	priority    uint64

	text       string
	bytes      int
	chars      int
	lineBreaks int

	subBytes      int
	subChars      int
	subLineBreaks int
}

func newLeaf(text string) *node {
	n := &node{
		priority:   rand.Uint64(),
		text:       text,
		bytes:      len(text),
		chars:      utf8.RuneCountInString(text),
		lineBreaks: strings.Count(text, "\n"),
	}
	update(n)
	return n
}

func update(n *node) {
	if n == nil {
		return
	}
	n.subBytes = n.bytes
	n.subChars = n.chars
	n.subLineBreaks = n.lineBreaks
	if n.left != nil {
		n.subBytes += n.left.subBytes
		n.subChars += n.left.subChars
		n.subLineBreaks += n.left.subLineBreaks
	}
	if n.right != nil {
		n.subBytes += n.right.subBytes
		n.subChars += n.right.subChars
		n.subLineBreaks += n.right.subLineBreaks
	}
}

// merge joins two treaps where every char in l precedes every char in r.
func merge(l, r *node) *node {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	if l.priority > r.priority {
		l.right = merge(l.right, r)
		update(l)
		return l
	}
	r.left = merge(l, r.left)
	update(r)
	return r
}

// split divides n into (left, right) such that left holds exactly charIdx
// characters. 0 <= charIdx <= n.subChars.
func split(n *node, charIdx int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	leftChars := 0
	if n.left != nil {
		leftChars = n.left.subChars
	}
	switch {
	case charIdx < leftChars:
		l, r := split(n.left, charIdx)
		n.left = r
		update(n)
		return l, n
	case charIdx == leftChars:
		l := n.left
		n.left = nil
		update(n)
		return l, n
	case charIdx < leftChars+n.chars:
		within := charIdx - leftChars
		leftText, rightText := splitRunes(n.text, within)
		leftNode := newLeaf(leftText)
		leftNode.left = n.left
		update(leftNode)
		rightNode := newLeaf(rightText)
		rightNode.right = n.right
		update(rightNode)
		return leftNode, rightNode
	default:
		charIdx -= leftChars + n.chars
		l, r := split(n.right, charIdx)
		n.right = l
		update(n)
		return n, r
	}
}

// splitRunes splits s into two strings at the nth rune boundary.
func splitRunes(s string, n int) (string, string) {
	if n <= 0 {
		return "", s
	}
	i := 0
	for byteOff := range s {
		if i == n {
			return s[:byteOff], s[byteOff:]
		}
		i++
	}
	return s, ""
}

// buildLeaves chunks s into leafMaxRunes-rune pieces and merges them into a
// single balanced-by-priority subtree.
func buildLeaves(s string) *node {
	if s == "" {
		return nil
	}
	var root *node
	runes := 0
	start := 0
	for byteOff, r := range s {
		_ = r
		if runes == leafMaxRunes {
			root = merge(root, newLeaf(s[start:byteOff]))
			start = byteOff
			runes = 0
		}
		runes++
	}
	root = merge(root, newLeaf(s[start:]))
	return root
}

// Buffer is the mutable, index-converting text representation of one
// document (spec.md §3 "Text Buffer").
type Buffer struct {
	root *node
}

// New builds a Buffer from the initial document text.
func New(text string) *Buffer {
	return &Buffer{root: buildLeaves(text)}
}

// TotalBytes returns the buffer's length in bytes.
func (b *Buffer) TotalBytes() int {
	if b.root == nil {
		return 0
	}
	return b.root.subBytes
}

// TotalChars returns the buffer's length in Unicode scalar values.
func (b *Buffer) TotalChars() int {
	if b.root == nil {
		return 0
	}
	return b.root.subChars
}

// TotalLines returns the number of lines (LF-separated); an empty buffer or
// one with no trailing newline still has at least one line.
func (b *Buffer) TotalLines() int {
	if b.root == nil {
		return 1
	}
	return b.root.subLineBreaks + 1
}

// String materializes the full buffer contents. Used for save/resync and by
// providers that need the whole document (citation bib-path extraction).
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(b.TotalBytes())
	it := b.Chunks()
	for {
		chunk, ok := it.Next()
		if !ok {
			break
		}
		sb.WriteString(chunk)
	}
	return sb.String()
}

// ChunkIterator performs an in-order walk of the buffer's leaves, yielding
// the document's text as a sequence of chunks without materializing the
// whole string (spec.md §4.1: "produce a streaming chunk iterator").
type ChunkIterator struct {
	stack []*node
}

// Chunks returns a fresh ChunkIterator positioned at the start of the buffer.
func (b *Buffer) Chunks() *ChunkIterator {
	it := &ChunkIterator{}
	it.pushLeft(b.root)
	return it
}

func (it *ChunkIterator) pushLeft(n *node) {
	for n != nil {
		it.stack = append(it.stack, n)
		n = n.left
	}
}

// Next returns the next chunk of text, or ("", false) once exhausted.
func (it *ChunkIterator) Next() (string, bool) {
	if len(it.stack) == 0 {
		return "", false
	}
	n := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.pushLeft(n.right)
	return n.text, true
}

// LineToChar converts a 0-indexed line number to the character index of its
// first character. Returns scerr.KindBounds if line is out of range.
func (b *Buffer) LineToChar(line int) (int, error) {
	if line < 0 {
		return 0, scerr.Bounds("negative line index")
	}
	if line == 0 {
		return 0, nil
	}
	idx, ok := afterNthNewline(b.root, line)
	if !ok {
		return 0, scerr.Bounds("line index out of range")
	}
	return idx, nil
}

// afterNthNewline returns the char offset immediately following the nth
// (1-indexed) newline within the subtree rooted at n.
func afterNthNewline(n *node, target int) (int, bool) {
	if n == nil {
		return 0, false
	}
	leftLines, leftChars := 0, 0
	if n.left != nil {
		leftLines = n.left.subLineBreaks
		leftChars = n.left.subChars
	}
	if target <= leftLines {
		return afterNthNewline(n.left, target)
	}
	target -= leftLines
	if target <= n.lineBreaks {
		off := nthNewlineCharOffset(n.text, target)
		return leftChars + off, true
	}
	target -= n.lineBreaks
	off, ok := afterNthNewline(n.right, target)
	return leftChars + n.chars + off, ok
}

// nthNewlineCharOffset returns the rune offset immediately after the nth
// (1-indexed) '\n' in s.
func nthNewlineCharOffset(s string, n int) int {
	seen := 0
	i := 0
	for _, r := range s {
		i++
		if r == '\n' {
			seen++
			if seen == n {
				return i
			}
		}
	}
	return i
}

// CharToByte converts a character index to its byte offset.
func (b *Buffer) CharToByte(charIdx int) (int, error) {
	if charIdx < 0 || charIdx > b.TotalChars() {
		return 0, scerr.Bounds("char index out of range")
	}
	off, _ := charToByte(b.root, charIdx)
	return off, nil
}

func charToByte(n *node, charIdx int) (int, bool) {
	if n == nil {
		return 0, charIdx == 0
	}
	leftChars, leftBytes := 0, 0
	if n.left != nil {
		leftChars = n.left.subChars
		leftBytes = n.left.subBytes
	}
	if charIdx <= leftChars {
		return charToByte(n.left, charIdx)
	}
	charIdx -= leftChars
	if charIdx <= n.chars {
		return leftBytes + runeIndexToByteOffset(n.text, charIdx), true
	}
	charIdx -= n.chars
	off, ok := charToByte(n.right, charIdx)
	return leftBytes + n.bytes + off, ok
}

func runeIndexToByteOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for byteOff := range s {
		if i == n {
			return byteOff
		}
		i++
	}
	return len(s)
}

// ByteToChar converts a byte offset to its character index.
func (b *Buffer) ByteToChar(byteIdx int) (int, error) {
	if byteIdx < 0 || byteIdx > b.TotalBytes() {
		return 0, scerr.Bounds("byte index out of range")
	}
	idx, _ := byteToChar(b.root, byteIdx)
	return idx, nil
}

func byteToChar(n *node, byteIdx int) (int, bool) {
	if n == nil {
		return 0, byteIdx == 0
	}
	leftChars, leftBytes := 0, 0
	if n.left != nil {
		leftChars = n.left.subChars
		leftBytes = n.left.subBytes
	}
	if byteIdx <= leftBytes {
		return byteToChar(n.left, byteIdx)
	}
	byteIdx -= leftBytes
	if byteIdx <= n.bytes {
		return leftChars + byteOffsetToRuneIndex(n.text, byteIdx), true
	}
	byteIdx -= n.bytes
	idx, ok := byteToChar(n.right, byteIdx)
	return leftChars + n.chars + idx, ok
}

func byteOffsetToRuneIndex(s string, byteIdx int) int {
	i := 0
	for off := range s {
		if off >= byteIdx {
			return i
		}
		i++
	}
	return i
}

// Slice returns the substring spanning [startChar, endChar).
func (b *Buffer) Slice(startChar, endChar int) (string, error) {
	if startChar < 0 || endChar > b.TotalChars() || startChar > endChar {
		return "", scerr.Bounds("slice range out of bounds")
	}
	var sb strings.Builder
	collectRange(b.root, startChar, endChar, &sb)
	return sb.String(), nil
}

func collectRange(n *node, start, end int, sb *strings.Builder) {
	if n == nil || start >= end {
		return
	}
	leftChars := 0
	if n.left != nil {
		leftChars = n.left.subChars
	}
	if start < leftChars {
		collectRange(n.left, start, min(end, leftChars), sb)
	}
	ownStart, ownEnd := leftChars, leftChars+n.chars
	if end > ownStart && start < ownEnd {
		s := max(start, ownStart) - ownStart
		e := min(end, ownEnd) - ownStart
		sb.WriteString(substringByRune(n.text, s, e))
	}
	if end > ownEnd {
		rightStart := max(start, ownEnd) - ownEnd
		collectRange(n.right, rightStart, end-ownEnd, sb)
	}
}

func substringByRune(s string, start, end int) string {
	if start == 0 && end == utf8.RuneCountInString(s) {
		return s
	}
	startByte, endByte := -1, len(s)
	i := 0
	for byteOff := range s {
		if i == start {
			startByte = byteOff
		}
		if i == end {
			endByte = byteOff
			break
		}
		i++
	}
	if startByte == -1 {
		startByte = len(s)
	}
	return s[startByte:endByte]
}

// Remove deletes the character range [startChar, endChar).
func (b *Buffer) Remove(startChar, endChar int) error {
	if startChar < 0 || endChar > b.TotalChars() || startChar > endChar {
		return scerr.Bounds("remove range out of bounds")
	}
	left, rest := split(b.root, startChar)
	_, right := split(rest, endChar-startChar)
	b.root = merge(left, right)
	return nil
}

// Insert inserts s at character position at.
func (b *Buffer) Insert(at int, s string) error {
	if at < 0 || at > b.TotalChars() {
		return scerr.Bounds("insert position out of bounds")
	}
	if s == "" {
		return nil
	}
	left, right := split(b.root, at)
	b.root = merge(merge(left, buildLeaves(s)), right)
	return nil
}
