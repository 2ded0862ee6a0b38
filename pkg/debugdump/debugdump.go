// Package debugdump msgpack-encodes completion request/response pairs for
// offline inspection (spec.md §4.13/§4.16, components C13/C16), mirroring
// the teacher's msgpack IPC wire shape.
package debugdump

import (
	"errors"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// CompletionRequestRecord is one recorded textDocument/completion call.
type CompletionRequestRecord struct {
	ID         string `msgpack:"id"`
	URI        string `msgpack:"uri"`
	Line       int    `msgpack:"line"`
	Character  int    `msgpack:"character"`
	WordPrefix string `msgpack:"word_prefix,omitempty"`
	CharPrefix string `msgpack:"char_prefix,omitempty"`
}

// CompletionItemRecord is one completion.Item flattened for the wire.
type CompletionItemRecord struct {
	Label      string `msgpack:"label"`
	InsertText string `msgpack:"insert_text"`
	Kind       int    `msgpack:"kind"`
	FilterText string `msgpack:"filter_text,omitempty"`
}

// CompletionResponseRecord is the reply paired with a CompletionRequestRecord.
type CompletionResponseRecord struct {
	ID        string                 `msgpack:"id"`
	Items     []CompletionItemRecord `msgpack:"items"`
	Count     int                    `msgpack:"count"`
	Error     string                 `msgpack:"error,omitempty"`
	TimeTaken int64                  `msgpack:"time_taken_ns"`
}

// Pair is one recorded request/response round-trip.
type Pair struct {
	Request  CompletionRequestRecord  `msgpack:"request"`
	Response CompletionResponseRecord `msgpack:"response"`
}

// Recorder appends msgpack-encoded Pair values to a file, one per call.
type Recorder struct {
	file    *os.File
	encoder *msgpack.Encoder
}

// NewRecorder opens (creating/truncating) path for msgpack-encoded dumps.
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Recorder{file: f, encoder: msgpack.NewEncoder(f)}, nil
}

// Record writes one Pair to the underlying file.
func (r *Recorder) Record(p Pair) error {
	return r.encoder.Encode(p)
}

// Close closes the underlying file.
func (r *Recorder) Close() error { return r.file.Close() }

// ReadAll decodes every Pair in path, for offline playback/inspection.
func ReadAll(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := msgpack.NewDecoder(f)
	var pairs []Pair
	for {
		var p Pair
		if err := dec.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return pairs, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
