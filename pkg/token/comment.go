package token

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment represents a SQL comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (-- or /* */)
	Span Span
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// IsBlockComment returns true if this is a block comment.
func (c *Comment) IsBlockComment() bool {
	return c.Kind == BlockComment
}

// Comments extracts the comments from a token stream in source order.
// The span of each comment ends where the following token starts.
func Comments(tokens []Token) []*Comment {
	var out []*Comment
	for i, tok := range tokens {
		if tok.Type != WHITESPACE {
			continue
		}
		var kind CommentKind
		switch tok.Space.Kind {
		case SingleLineComment:
			kind = LineComment
		case MultiLineComment:
			kind = BlockComment
		default:
			continue
		}
		end := Advance(tok.Pos, tok)
		if i+1 < len(tokens) {
			end = tokens[i+1].Pos
		}
		out = append(out, &Comment{
			Kind: kind,
			Text: tok.Space.String(),
			Span: Span{Start: tok.Pos, End: end},
		})
	}
	return out
}
