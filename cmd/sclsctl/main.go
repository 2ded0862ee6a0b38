// Package main implements sclsctl, an interactive debugging shell for the
// completion engine (spec.md §4.13, component C13), useful for testing
// providers against a synthetic single-document buffer without a real
// editor attached.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/scls-go/pkg/config"
	"github.com/bastiangx/scls-go/pkg/debugdump"
	"github.com/bastiangx/scls-go/pkg/engine"
	"github.com/bastiangx/scls-go/pkg/prefix"
	"github.com/bastiangx/scls-go/pkg/snippet"
	"github.com/bastiangx/scls-go/pkg/unicodeinput"
)

const docURI = "file:///sclsctl-scratch.txt"

func main() {
	configFile := flag.String("config", "", "Path to custom config.toml file")
	snippetsPath := flag.String("snippets", "", "Path to a snippets TOML file or directory")
	recordPath := flag.String("record", "", "Record every completion request/response pair as msgpack to this file")
	flag.Parse()

	log.SetReportTimestamp(false)

	settings := config.Default()
	if *configFile != "" {
		if loaded, err := config.Load(*configFile); err != nil {
			log.Warnf("failed to load config from %s, using defaults: %v", *configFile, err)
		} else {
			settings = loaded
		}
	}

	var snippets []snippet.Snippet
	if *snippetsPath != "" {
		loaded, err := snippet.LoadFromPath(*snippetsPath, nil)
		if err != nil {
			log.Warnf("failed to load snippets from %s: %v", *snippetsPath, err)
		}
		snippets = loaded
	}

	eng := engine.New(settings, snippet.NewTable(snippets), unicodeinput.NewTable(nil))
	go eng.Run()
	defer eng.Close()

	eng.Submit(engine.NewDoc{URI: docURI, Language: "plaintext", Text: ""})

	var recorder *debugdump.Recorder
	if *recordPath != "" {
		rec, err := debugdump.NewRecorder(*recordPath)
		if err != nil {
			log.Fatalf("failed to open -record file: %v", err)
		}
		recorder = rec
		defer recorder.Close()
	}

	runShell(eng, recorder)
}

func runShell(eng *engine.Engine, recorder *debugdump.Recorder) {
	log.Print("scls CLI [debug]")
	log.Print("type a line of buffer text, then a cursor column, to request completions.")
	log.Print("commands: :text <line>   set the scratch document's single line")
	log.Print("          :at <column>   request completions at that column on line 0")
	log.Print("          :quit          exit")

	reader := bufio.NewReader(os.Stdin)
	requestID := 0
	var line string

	for {
		fmt.Print("> ")
		raw, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		input := strings.TrimRight(raw, "\n")

		switch {
		case input == ":quit":
			return
		case strings.HasPrefix(input, ":text "):
			line = strings.TrimPrefix(input, ":text ")
			eng.Submit(engine.ChangeDoc{
				URI:      docURI,
				Changes:  []engine.ChangeEvent{{Text: line}},
				Encoding: prefix.EncodingUTF32,
			})
			log.Infof("document set to: %q", line)
		case strings.HasPrefix(input, ":at "):
			var col int
			if _, err := fmt.Sscanf(strings.TrimPrefix(input, ":at "), "%d", &col); err != nil {
				log.Errorf("usage: :at <column>")
				continue
			}
			requestID++
			requestCompletion(eng, recorder, requestID, col)
		default:
			log.Errorf("unrecognized command: %q", input)
		}
	}
}

func requestCompletion(eng *engine.Engine, recorder *debugdump.Recorder, id, column int) {
	reply := make(chan engine.CompletionReply, 1)
	start := time.Now()
	eng.Submit(engine.CompletionRequest{
		URI:      docURI,
		Position: prefix.Position{Line: 0, Column: column},
		Encoding: prefix.EncodingUTF32,
		Reply:    reply,
	})
	result := <-reply
	elapsed := time.Since(start)

	if result.Err != nil {
		log.Errorf("completion error: %v", result.Err)
	} else {
		log.Printf("found %d completions at column %d:", len(result.Items), column)
		for i, it := range result.Items {
			log.Printf("%2d. %-30s -> %s", i+1, it.Label, it.InsertText)
		}
	}

	if recorder != nil {
		if err := recorder.Record(toRecordPair(id, column, result, elapsed)); err != nil {
			log.Errorf("failed to record request/response pair: %v", err)
		}
	}
}

func toRecordPair(id, column int, result engine.CompletionReply, elapsed time.Duration) debugdump.Pair {
	items := make([]debugdump.CompletionItemRecord, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, debugdump.CompletionItemRecord{
			Label:      it.Label,
			InsertText: it.InsertText,
			Kind:       int(it.Kind),
			FilterText: it.FilterText,
		})
	}
	resp := debugdump.CompletionResponseRecord{
		ID:        fmt.Sprint(id),
		Items:     items,
		Count:     len(items),
		TimeTaken: elapsed.Nanoseconds(),
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}
	return debugdump.Pair{
		Request: debugdump.CompletionRequestRecord{
			ID:        fmt.Sprint(id),
			URI:       docURI,
			Line:      0,
			Character: column,
		},
		Response: resp,
	}
}
