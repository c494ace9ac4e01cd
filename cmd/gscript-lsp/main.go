// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command gscript-lsp is a minimal Language Server Protocol front end for
// extended G-code: it re-lexes and re-parses a document on every change and
// republishes on_error diagnostics as LSP Diagnostics, grounded on
// dhamidi-sai's java/codebase/lsp.go glsp wiring.
package main

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/archon-cnc/gscript"
	"github.com/archon-cnc/gscript/ast"
	"github.com/archon-cnc/gscript/diag"
)

const lsName = "gscript-lsp"

var version = "0.1.0"

func main() {
	commonlog.Configure(1, nil)

	ls := newLSPServer()
	if err := ls.RunStdio(); err != nil {
		os.Exit(1)
	}
}

// LSPServer holds the glsp plumbing; documents is the only mutable state,
// keyed by file URI.
type LSPServer struct {
	handler   protocol.Handler
	server    *server.Server
	documents map[string][]byte
}

func newLSPServer() *LSPServer {
	ls := &LSPServer{documents: make(map[string][]byte)}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	text := []byte(params.TextDocument.Text)
	ls.documents[uri] = text
	ls.publishDiagnostics(ctx, uri, text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return nil
	}
	text := []byte(whole.Text)
	ls.documents[uri] = text
	ls.publishDiagnostics(ctx, uri, text)
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	delete(ls.documents, uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// publishDiagnostics runs text through a fresh Frontend and republishes
// every diagnostic it reports, one LSP round trip per keystroke-at-most,
// exercising the same incremental Feed/Finish contract cmd/gscript-dump
// does, just fed the whole document at once since glsp already hands us
// the full text on every change under Full sync.
func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string, text []byte) {
	var diags []protocol.Diagnostic
	collector := diagCollector{out: &diags}

	fe := gscript.New(uriToPath(uri), gscript.StatementFunc(func(n *ast.Node) {
		ast.Release(n)
	}), collector)
	fe.Feed(text)
	fe.Finish()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

type diagCollector struct {
	out *[]protocol.Diagnostic
}

func (c diagCollector) Error(d diag.Diagnostic) bool {
	line := protocol.UInteger(0)
	if d.Position.Line > 0 {
		line = protocol.UInteger(d.Position.Line - 1)
	}
	col := protocol.UInteger(0)
	if d.Position.Column > 0 {
		col = protocol.UInteger(d.Position.Column - 1)
	}
	severity := protocol.DiagnosticSeverityError
	*c.out = append(*c.out, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: &severity,
		Source:   strPtr(lsName),
		Message:  d.Message,
	})
	return true
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if parsed, err := url.Parse(uri); err == nil {
			return filepath.Clean(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
