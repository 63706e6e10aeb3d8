package parser

import "github.com/nihei9/javalyzer/token"

// TraceSink observes every terminal the parser consumes. role is the grammar role the token was consumed as.
type TraceSink interface {
	Consume(role string, tok *token.Token)
}
