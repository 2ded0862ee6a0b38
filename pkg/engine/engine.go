package engine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/coregx/coregex"

	"github.com/bastiangx/scls-go/internal/logger"
	"github.com/bastiangx/scls-go/pkg/citation"
	"github.com/bastiangx/scls-go/pkg/completion"
	"github.com/bastiangx/scls-go/pkg/config"
	"github.com/bastiangx/scls-go/pkg/document"
	"github.com/bastiangx/scls-go/pkg/pathcomplete"
	"github.com/bastiangx/scls-go/pkg/prefix"
	"github.com/bastiangx/scls-go/pkg/scerr"
	"github.com/bastiangx/scls-go/pkg/snippet"
	"github.com/bastiangx/scls-go/pkg/unicodeinput"
	"github.com/bastiangx/scls-go/pkg/wordsearch"
)

var log = logger.New("engine")

// State is the per-process lifecycle (spec.md §4.9: "Uninitialized ->
// Initialized -> (Loop) -> Shutdown").
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateShutdown
)

// Engine owns every open document and the current settings, consuming
// Messages off a single channel (spec.md §4.9: "Single-threaded consumer
// of a bounded-free multi-producer queue"). inbox is a large buffered
// channel rather than a truly unbounded queue — a pragmatic stand-in, since
// no caller in this system is expected to ever queue more than a handful of
// in-flight requests.
type Engine struct {
	state    State
	docs     map[string]*document.Document
	settings *config.Settings
	homeDir  string

	citationRe *coregex.Regex

	snippets *snippet.Table
	unicode  *unicodeinput.Table

	inbox chan Message
}

// New builds an Engine from an already-loaded settings object and the
// snippet/unicode-input tables built at startup (spec.md §6.4 loaders).
func New(settings *config.Settings, snippets *snippet.Table, unicode *unicodeinput.Table) *Engine {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("could not resolve home directory: %v", err)
	}
	e := &Engine{
		state:    StateInitialized,
		docs:     make(map[string]*document.Document),
		settings: settings,
		homeDir:  home,
		snippets: snippets,
		unicode:  unicode,
		inbox:    make(chan Message, 1024),
	}
	e.compileCitationRegexp()
	return e
}

func (e *Engine) compileCitationRegexp() {
	re, err := coregex.Compile(e.settings.CitationBibfileExtractRegexp)
	if err != nil {
		log.Errorf("invalid citation_bibfile_extract_regexp %q: %v", e.settings.CitationBibfileExtractRegexp, err)
		return
	}
	e.citationRe = re
}

// Submit enqueues msg for the loop. Safe to call from any goroutine.
func (e *Engine) Submit(msg Message) { e.inbox <- msg }

// Run drains the inbox until it is closed, dispatching each Message by
// kind. Intended to run on its own goroutine for the lifetime of the
// process; returning marks the transition into Shutdown.
func (e *Engine) Run() {
	for msg := range e.inbox {
		switch m := msg.(type) {
		case NewDoc:
			e.handleNewDoc(m)
		case SaveDoc:
			e.handleSaveDoc(m)
		case ChangeDoc:
			e.handleChangeDoc(m)
		case ChangeConfiguration:
			e.handleChangeConfiguration(m)
		case CompletionRequest:
			e.handleCompletionRequest(m)
		default:
			log.Errorf("unknown message type %T", msg)
		}
	}
	e.state = StateShutdown
}

// Close stops Run's loop once the inbox drains.
func (e *Engine) Close() { close(e.inbox) }

func (e *Engine) handleNewDoc(m NewDoc) {
	e.docs[m.URI] = document.New(m.URI, m.Language, m.Text)
}

func (e *Engine) handleSaveDoc(m SaveDoc) {
	doc, ok := e.docs[m.URI]
	if !ok {
		log.Errorf("SaveDoc for unknown document %s", m.URI)
		return
	}
	if m.Text != nil {
		doc.Replace(*m.Text)
		return
	}
	path := uriToPath(m.URI)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("failed to reread saved file %s: %v", path, err)
		return
	}
	doc.Replace(string(data))
}

func (e *Engine) handleChangeDoc(m ChangeDoc) {
	doc, ok := e.docs[m.URI]
	if !ok {
		log.Errorf("ChangeDoc for unknown document %s", m.URI)
		return
	}
	for _, ch := range m.Changes {
		if err := applyChange(doc, ch, m.Encoding); err != nil {
			log.Errorf("failed to apply change to %s: %v", m.URI, err)
		}
	}
}

func (e *Engine) handleChangeConfiguration(m ChangeConfiguration) {
	if m.Partial == nil {
		return
	}
	m.Partial.Apply(e.settings)
	if m.Partial.CitationBibfileExtractRegexp != nil {
		e.compileCitationRegexp()
	}
}

func (e *Engine) handleCompletionRequest(m CompletionRequest) {
	items, err := e.complete(m.URI, m.Position, m.Encoding)
	m.Reply <- CompletionReply{Items: items, Err: err}
}

// complete implements the C9 CompletionRequest pipeline: run the prefix
// extractor, then assemble an ordered completion array per the feature
// flags and merge order (spec.md §4.9).
func (e *Engine) complete(uri string, pos prefix.Position, encoding prefix.Encoding) ([]completion.Item, error) {
	doc, ok := e.docs[uri]
	if !ok {
		return nil, scerr.DocumentNotFound(uri)
	}

	ext, err := prefix.Extract(doc, pos, encoding, e.settings.MaxCharsPrefixLen)
	if err != nil {
		return nil, err
	}

	if ext.CharPrefix == "" || leadingWhitespace(ext.CharPrefix) {
		return []completion.Item{}, nil
	}

	cursorChar, err := cursorCharOffset(doc, pos, encoding)
	if err != nil {
		return nil, err
	}

	if e.settings.FeatureCitations && citation.Triggered(ext.CharPrefix, e.settings.CitationPrefixTrigger) {
		return e.completeCitations(doc, ext.WordPrefix, cursorChar), nil
	}

	var items []completion.Item
	if e.settings.SnippetsFirst {
		items = append(items, e.completeSnippets(ext, cursorChar)...)
	}
	if e.settings.FeatureWords {
		items = append(items, e.completeWords(ext.WordPrefix, uri)...)
	}
	if !e.settings.SnippetsFirst {
		items = append(items, e.completeSnippets(ext, cursorChar)...)
	}
	if e.settings.FeatureUnicodeInput {
		items = append(items, e.unicode.Complete(ext.WordPrefix, ext.CharPrefix, cursorChar,
			e.settings.MinCharsPrefixLen, e.settings.MaxUnicodePrefixLen, e.settings.MaxCompletionItems)...)
	}
	if e.settings.FeaturePaths {
		items = append(items, e.completePaths(doc, ext, cursorChar)...)
	}

	if len(items) > e.settings.MaxCompletionItems {
		items = items[:e.settings.MaxCompletionItems]
	}
	return items, nil
}

func (e *Engine) completeSnippets(ext *prefix.Extracted, cursorChar int) []completion.Item {
	if !e.settings.FeatureSnippets || e.snippets == nil {
		return nil
	}
	if e.settings.SnippetsInlineByWordTail {
		return e.snippets.CompleteByWordTail(ext.CharPrefix, cursorChar, ext.Document.Language,
			e.settings.MinCharsPrefixLen, e.settings.MaxSnippetPrefixLen, e.settings.MaxCompletionItems)
	}
	return e.snippets.CompleteByWordPrefix(ext.WordPrefix, cursorChar, ext.Document.Language, e.settings.SnippetsFirst)
}

func (e *Engine) completeWords(wordPrefix, cursorURI string) []completion.Item {
	if wordPrefix == "" {
		return nil
	}
	words := wordsearch.Search(wordPrefix, e.docs, cursorURI, e.settings.MaxCompletionItems)
	items := make([]completion.Item, 0, len(words))
	for _, w := range words {
		items = append(items, completion.Item{
			Label:      w,
			InsertText: w,
			Kind:       completion.KindText,
			FilterText: w,
		})
	}
	return items
}

func (e *Engine) completePaths(doc *document.Document, ext *prefix.Extracted, cursorChar int) []completion.Item {
	if !e.settings.FeaturePaths {
		return nil
	}
	docDir := filepath.Dir(uriToPath(doc.URI))
	return pathcomplete.Complete(ext.WordPrefix, ext.CharPrefix, cursorChar, docDir, e.homeDir, e.settings.MaxCompletionItems)
}

func (e *Engine) completeCitations(doc *document.Document, wordPrefix string, cursorChar int) []completion.Item {
	if e.citationRe == nil {
		return []completion.Item{}
	}
	paths := citation.ExtractBibPaths(doc.Buffer.String(), e.citationRe)
	entries := citation.LoadEntries(paths, e.homeDir)
	return citation.Complete(entries, wordPrefix, cursorChar, e.settings.MaxCompletionItems)
}

func leadingWhitespace(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return r == ' ' || r == '\t' || r == '\n'
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}
