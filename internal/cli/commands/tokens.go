package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlfront/pkg/parser"
	"github.com/leapstack-labs/sqlfront/pkg/token"
	"github.com/spf13/cobra"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	Whitespace bool // include spaces, tabs and newlines
	Comments   bool // list only comments
}

// TokenDoc is the structured form of a token.
type TokenDoc struct {
	Index  int    `json:"index" yaml:"index"`
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// CommentDoc is the structured form of a comment.
type CommentDoc struct {
	Kind  string `json:"kind" yaml:"kind"`
	Text  string `json:"text" yaml:"text"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Show the token stream of SQL input",
		Long: `Tokenize a SQL file (or stdin) with the configured dialect and print
each token with its kind and line:column position.`,
		Example: `  # Token table for a file
  sqlfront tokens query.sql

  # Comments only
  sqlfront tokens --comments query.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Whitespace, "whitespace", false, "Include whitespace tokens")
	cmd.Flags().BoolVar(&opts.Comments, "comments", false, "List only comments")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, opts *TokensOptions) error {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	src := sources[0]

	tokens, err := parser.Tokenize(cc.Dialect, src.SQL)
	if err != nil {
		return fmt.Errorf("%s: %w", src.Name, err)
	}

	if opts.Comments {
		return renderComments(cc, token.Comments(tokens))
	}
	return renderTokens(cc, tokens, opts.Whitespace)
}

func renderTokens(cc *CommandContext, tokens []token.Token, whitespace bool) error {
	var docs []TokenDoc
	for i, tok := range tokens {
		if !whitespace && isPlainWhitespace(tok) {
			continue
		}
		docs = append(docs, TokenDoc{
			Index:  i,
			Kind:   tokenKind(tok),
			Text:   tok.String(),
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}

	r := cc.Renderer
	if ok, err := r.Structured(docs); ok {
		return err
	}

	t := newTable(r, "#", "KIND", "TEXT", "POS")
	for _, d := range docs {
		t.AppendRow(table.Row{d.Index, d.Kind, displayText(d.Text), fmt.Sprintf("%d:%d", d.Line, d.Column)})
	}
	t.Render()
	return nil
}

func renderComments(cc *CommandContext, comments []*token.Comment) error {
	docs := make([]CommentDoc, len(comments))
	for i, c := range comments {
		kind := "line"
		if c.IsBlockComment() {
			kind = "block"
		}
		docs[i] = CommentDoc{Kind: kind, Text: c.Text, Start: c.Span.Start.String(), End: c.Span.End.String()}
	}

	r := cc.Renderer
	if ok, err := r.Structured(docs); ok {
		return err
	}

	if len(docs) == 0 {
		r.Println(r.Muted("(no comments)"))
		return nil
	}
	t := newTable(r, "KIND", "TEXT", "START", "END")
	for _, d := range docs {
		t.AppendRow(table.Row{d.Kind, displayText(d.Text), d.Start, d.End})
	}
	t.Render()
	return nil
}

func isPlainWhitespace(tok token.Token) bool {
	if tok.Type != token.WHITESPACE {
		return false
	}
	return tok.Space.Kind != token.SingleLineComment && tok.Space.Kind != token.MultiLineComment
}

// tokenKind labels a token for display: keywords and comments get their
// own kinds, everything else uses its token type.
func tokenKind(tok token.Token) string {
	switch {
	case tok.Type == token.WORD && tok.Word.Keyword != "":
		return "KEYWORD"
	case tok.Type == token.WHITESPACE && !isPlainWhitespace(tok):
		return "COMMENT"
	}
	return tok.Type.String()
}
