// Package lspserver wires Engine into a Language Server Protocol transport
// via tliron/glsp (spec.md §4.11/§9, component C11).
package lspserver

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/bastiangx/scls-go/internal/logger"
	"github.com/bastiangx/scls-go/pkg/completion"
	"github.com/bastiangx/scls-go/pkg/config"
	"github.com/bastiangx/scls-go/pkg/engine"
	"github.com/bastiangx/scls-go/pkg/prefix"
)

var log = logger.New("lspserver")

const lsName = "scls"

// triggerCharacters is the ASCII punctuation set advertised as completion
// triggers, plus the platform path separator when it is not already in that
// set (spec.md §4.3, §4.7).
var triggerCharacters = func() []string {
	const punct = `!#$%&'"()*+,-./:;<=>?@[\]^_` + "`" + `{|}~`
	chars := make([]string, 0, len(punct)+1)
	for _, r := range punct {
		chars = append(chars, string(r))
	}
	sep := string(filepath.Separator)
	if !strings.Contains(punct, sep) {
		chars = append(chars, sep)
	}
	return chars
}()

// Server binds an Engine to a glsp protocol handler and stdio transport.
type Server struct {
	eng      *engine.Engine
	encoding prefix.Encoding
	handler  protocol.Handler
}

// New builds a Server over eng. Call Run to start serving over stdio.
func New(eng *engine.Engine) *Server {
	s := &Server{eng: eng, encoding: prefix.EncodingUTF16}
	s.handler = protocol.Handler{
		Initialize:                      s.initialize,
		Initialized:                     s.initialized,
		Shutdown:                        s.shutdown,
		SetTrace:                        s.setTrace,
		TextDocumentDidOpen:             s.didOpen,
		TextDocumentDidChange:           s.didChange,
		TextDocumentDidSave:             s.didSave,
		TextDocumentCompletion:          s.completion,
		CompletionItemResolve:           s.completionResolve,
		WorkspaceDidChangeConfiguration: s.didChangeConfiguration,
	}
	return s
}

// Run starts the engine's consumer loop and serves LSP frames over stdio
// until the client disconnects.
func (s *Server) Run() error {
	go s.eng.Run()
	srv := glspserver.NewServer(&s.handler, lsName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	for _, enc := range params.Capabilities.General.PositionEncodings {
		if enc == protocol.PositionEncodingKindUTF32 {
			s.encoding = prefix.EncodingUTF32
			break
		}
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	trueVal := true
	falseVal := false
	negotiatedEncoding := protocol.PositionEncodingKindUTF16
	if s.encoding == prefix.EncodingUTF32 {
		negotiatedEncoding = protocol.PositionEncodingKindUTF32
	}

	capabilities := protocol.ServerCapabilities{
		PositionEncoding: &negotiatedEncoding,
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &trueVal,
			Change:    &syncKind,
			Save:      &protocol.SaveOptions{IncludeText: &trueVal},
		},
		CompletionProvider: &protocol.CompletionOptions{
			TriggerCharacters: triggerCharacters,
			ResolveProvider:   &falseVal,
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: versionString(),
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	s.eng.Close()
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.eng.Submit(engine.NewDoc{
		URI:      string(params.TextDocument.URI),
		Language: params.TextDocument.LanguageID,
		Text:     params.TextDocument.Text,
	})
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	changes := make([]engine.ChangeEvent, 0, len(params.ContentChanges))
	for _, raw := range params.ContentChanges {
		switch c := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, engine.ChangeEvent{
				Range: toEngineRange(c.Range),
				Text:  c.Text,
			})
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, engine.ChangeEvent{Text: c.Text})
		}
	}
	s.eng.Submit(engine.ChangeDoc{
		URI:      string(params.TextDocument.URI),
		Changes:  changes,
		Encoding: s.encoding,
	})
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.eng.Submit(engine.SaveDoc{
		URI:  string(params.TextDocument.URI),
		Text: params.Text,
	})
	return nil
}

func (s *Server) didChangeConfiguration(ctx *glsp.Context, params *protocol.DidChangeConfigurationParams) error {
	partial, err := decodeConfigurationPayload(params.Settings)
	if err != nil {
		log.Errorf("failed to decode didChangeConfiguration payload: %v", err)
		return nil
	}
	s.eng.Submit(engine.ChangeConfiguration{Partial: partial})
	return nil
}

func (s *Server) completion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	reply := make(chan engine.CompletionReply, 1)
	s.eng.Submit(engine.CompletionRequest{
		URI: string(params.TextDocument.URI),
		Position: prefix.Position{
			Line:   int(params.Position.Line),
			Column: int(params.Position.Character),
		},
		Encoding: s.encoding,
		Reply:    reply,
	})
	result := <-reply
	if result.Err != nil {
		log.Errorf("completion request failed: %v", result.Err)
		return nil, nil
	}
	return toProtocolItems(result.Items), nil
}

// completionResolve is an identity passthrough: resolveProvider is false in
// the advertised capabilities, but glsp still routes any resolve call here.
func (s *Server) completionResolve(ctx *glsp.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	return params, nil
}

func toEngineRange(r *protocol.Range) *engine.Range {
	if r == nil {
		return nil
	}
	return &engine.Range{
		Start: prefix.Position{Line: int(r.Start.Line), Column: int(r.Start.Character)},
		End:   prefix.Position{Line: int(r.End.Line), Column: int(r.End.Character)},
	}
}

func toProtocolItems(items []completion.Item) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		out = append(out, toProtocolItem(it))
	}
	return out
}

func toProtocolItem(it completion.Item) protocol.CompletionItem {
	kind := toProtocolKind(it.Kind)
	insertText := it.InsertText
	filterText := it.FilterText
	item := protocol.CompletionItem{
		Label:      it.Label,
		Kind:       &kind,
		InsertText: &insertText,
		FilterText: &filterText,
	}
	if it.IsSnippetFormat {
		format := protocol.InsertTextFormatSnippet
		item.InsertTextFormat = &format
	}
	if it.SortText != "" {
		sortText := it.SortText
		item.SortText = &sortText
	}
	if it.Documentation != "" {
		item.Documentation = protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: it.Documentation}
	}
	return item
}

func toProtocolKind(k completion.Kind) protocol.CompletionItemKind {
	switch k {
	case completion.KindSnippet:
		return protocol.CompletionItemKindSnippet
	case completion.KindFile:
		return protocol.CompletionItemKindFile
	case completion.KindFolder:
		return protocol.CompletionItemKindFolder
	case completion.KindReference:
		return protocol.CompletionItemKindReference
	default:
		return protocol.CompletionItemKindText
	}
}

func decodeConfigurationPayload(settings any) (*config.PartialSettings, error) {
	// glsp decodes params.Settings into interface{}-typed maps; the actual
	// field-by-field extraction lives alongside the rest of the
	// configuration payload handling so it can share mapstructure-style
	// decoding helpers. Full JSON payloads from didChangeConfiguration are
	// already map[string]any by the time they reach here.
	m, ok := settings.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected settings payload type %T", settings)
	}
	return decodePartialSettingsMap(m)
}

func versionString() string {
	return "dev"
}
