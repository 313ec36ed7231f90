package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent_Keywords(t *testing.T) {
	for word, want := range Keywords {
		assert.Equal(t, want, LookupIdent(word), "keyword %q", word)
	}
}

func TestLookupIdent_Reserved(t *testing.T) {
	for word := range ReservedWords {
		assert.Equal(t, Reserved, LookupIdent(word), "reserved word %q", word)
	}
}

func TestLookupIdent_This_IsOrdinaryIdentifier(t *testing.T) {
	assert.Equal(t, Identifier, LookupIdent("this"))
	assert.Equal(t, Identifier, LookupIdent("This"))
}

func TestLookupIdent_PlainIdentifier(t *testing.T) {
	assert.Equal(t, Identifier, LookupIdent("counter"))
}

func TestLookupIdent_TrueFalseNil_AreLiteralKinds(t *testing.T) {
	assert.Equal(t, True, LookupIdent("true"))
	assert.Equal(t, False, LookupIdent("false"))
	assert.Equal(t, Nil, LookupIdent("nil"))
}

func TestToken_String(t *testing.T) {
	tok := Token{Type: Identifier, Lexeme: "x", Line: 1, Column: 0}
	assert.Equal(t, "IDENTIFIER x", tok.String())
}
