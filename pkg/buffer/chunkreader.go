package buffer

import "github.com/bastiangx/scls-go/internal/wordutil"

// ChunkReader presents a Buffer as a byte stream for the word search's
// streaming automaton (spec.md §4.2, component C2), guaranteeing it never
// splits a run of word characters across two emitted chunks. Aho-Corasick
// runs on bytes; without this guarantee a match straddling an internal rope
// chunk boundary would be missed.
type ChunkReader struct {
	inner *ChunkIterator
	tail  []byte
	done  bool
}

// NewChunkReader wraps the buffer's internal chunk iterator.
func NewChunkReader(b *Buffer) *ChunkReader {
	return &ChunkReader{inner: b.Chunks()}
}

// Next returns the next byte chunk, or (nil, false) once the stream is
// exhausted. Each returned chunk is safe to feed to a byte-oriented matcher
// without losing a word run across the boundary with the next call.
func (r *ChunkReader) Next() ([]byte, bool) {
	if r.done {
		return nil, false
	}
	for {
		raw, ok := r.inner.Next()
		if !ok {
			r.done = true
			if len(r.tail) == 0 {
				return nil, false
			}
			out := r.tail
			r.tail = nil
			return out, true
		}
		if raw == "" {
			continue
		}
		chunk := append(r.tail, []byte(raw)...)
		r.tail = nil

		splitAt := lastNonWordBoundary(chunk)
		if splitAt == len(chunk) {
			return chunk, true
		}
		if splitAt == 0 {
			// the whole chunk is one word run; buffer it and pull more.
			r.tail = chunk
			continue
		}
		r.tail = append([]byte(nil), chunk[splitAt:]...)
		return chunk[:splitAt], true
	}
}

// lastNonWordBoundary scans backward from the end of chunk and returns the
// byte offset just past the last non-word-character rune, i.e. the split
// point that keeps any trailing word run intact for the next chunk. Returns
// len(chunk) if chunk does not end mid-word-run, 0 if the entire chunk is a
// single word run with no earlier boundary.
func lastNonWordBoundary(chunk []byte) int {
	n := len(chunk)
	if n == 0 {
		return 0
	}
	// decode runes from the end
	i := n
	var lastRune rune
	var lastRuneStart int
	for i > 0 {
		r, start := decodeLastRune(chunk[:i])
		lastRune = r
		lastRuneStart = start
		break
	}
	if !wordutil.IsWordChar(lastRune) {
		return n
	}
	// walk backward rune by rune looking for a non-word boundary
	pos := lastRuneStart
	for pos > 0 {
		r, start := decodeLastRune(chunk[:pos])
		if !wordutil.IsWordChar(r) {
			return pos
		}
		pos = start
	}
	return 0
}

// decodeLastRune decodes the final rune of b, returning the rune and the
// byte offset where it starts.
func decodeLastRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	// UTF-8 continuation bytes have the high bits 10xxxxxx; walk back over
	// them to find the lead byte (max 4 bytes for any valid rune).
	i := len(b) - 1
	for start := i; start >= 0 && start > len(b)-5; start-- {
		if b[start]&0xC0 != 0x80 {
			r := []rune(string(b[start:]))
			if len(r) > 0 {
				return r[0], start
			}
			break
		}
	}
	return rune(b[i]), i
}
