// Copyright 2024 The gscript Authors
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command gscript-dump lexes and parses an extended G-code file and prints
// either its token stream or its statement tree, demonstrating the
// incremental Feed contract: the input is read into memory whole, then
// handed to the lexer or Frontend in --chunk-size pieces.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archon-cnc/gscript"
	"github.com/archon-cnc/gscript/ast"
	"github.com/archon-cnc/gscript/diag"
	"github.com/archon-cnc/gscript/lexer"
	"github.com/archon-cnc/gscript/token"
)

var (
	chunkSize int
	logLevel  string
	logger    *slog.Logger
)

func main() {
	root := &cobra.Command{
		Use:   "gscript-dump",
		Short: "Lex and parse extended G-code and dump tokens or statements",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
			return nil
		},
	}
	root.PersistentFlags().IntVar(&chunkSize, "chunk-size", 4096, "bytes fed to the frontend per read")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn, or error")

	root.AddCommand(lexCmd(), parseCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func lexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex [file]",
		Short: "Print the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readInput(args)
			if err != nil {
				return err
			}

			lx := lexer.New(name, tokenPrinter{}, newDiagPrinter(data), lexer.WithBufferCapacity(chunkSize))

			feedInChunks(data, lx.Feed, lx.Finish)
			return nil
		},
	}
}

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Print the parsed statement tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readInput(args)
			if err != nil {
				return err
			}

			fe := gscript.New(name, statementPrinter{}, newDiagPrinter(data), gscript.WithBufferCapacity(chunkSize))

			feedInChunks(data, fe.Feed, fe.Finish)
			return nil
		},
	}
}

// readInput reads the whole of args[0] (or stdin) into memory up front, so
// that diagPrinter can show the offending source line in its output; the
// incremental Feed contract is still exercised by feedInChunks splitting
// this buffer into chunkSize pieces before handing it to the lexer/parser.
func readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return data, "<stdin>", err
	}
	data, err := os.ReadFile(args[0])
	return data, args[0], err
}

func feedInChunks(data []byte, feed func([]byte), finish func()) {
	br := bufio.NewReaderSize(bytes.NewReader(data), chunkSize)
	buf := make([]byte, chunkSize)
	for {
		n, err := br.Read(buf)
		if n > 0 {
			logger.Debug("feeding chunk", "bytes", n)
			feed(buf[:n])
		}
		if err != nil {
			break
		}
	}
	finish()
}

type tokenPrinter struct{}

func (tokenPrinter) Token(tok token.Token) {
	fmt.Println(tok.String())
}

type statementPrinter struct{}

func (statementPrinter) Statement(n *ast.Node) {
	dumpNode(n, 0)
	ast.Release(n)
}

func dumpNode(n *ast.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case ast.Integer:
		fmt.Printf("%s%s %d\n", indent, n.Kind, n.Int)
	case ast.Float:
		fmt.Printf("%s%s %g\n", indent, n.Kind, n.Flt)
	case ast.Bool:
		fmt.Printf("%s%s %t\n", indent, n.Kind, n.Bln)
	case ast.String:
		fmt.Printf("%s%s %q\n", indent, n.Kind, n.Str)
	case ast.Parameter:
		fmt.Printf("%s%s %s\n", indent, n.Kind, n.Str)
	case ast.Operator:
		fmt.Printf("%s%s %s\n", indent, n.Kind, n.Op)
	case ast.Function:
		fmt.Printf("%s%s %s\n", indent, n.Kind, n.Str)
	default:
		fmt.Printf("%s%s\n", indent, n.Kind)
	}
	for c := n.Child; c != nil; c = c.Next {
		dumpNode(c, depth+1)
	}
}

// diagPrinter renders diagnostics with diag.Format, which needs the raw text
// of the offending line to align its caret; lines holds the input split on
// '\n' once, up front.
type diagPrinter struct {
	lines []string
}

func newDiagPrinter(data []byte) diagPrinter {
	return diagPrinter{lines: strings.Split(string(data), "\n")}
}

func (d diagPrinter) Error(diagnostic diag.Diagnostic) bool {
	var line string
	if i := diagnostic.Position.Line - 1; i >= 0 && i < len(d.lines) {
		line = d.lines[i]
	}
	fmt.Fprintln(os.Stderr, diag.Format(line, diagnostic))
	return true
}
