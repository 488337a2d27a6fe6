package engine

import (
	"fmt"
	"strings"
)

// Attribute is one of the four binary dimensions of a piece.
type Attribute uint8

const (
	AttrSize   Attribute = iota // 0: bit 0 of Token
	AttrShape                   // 1: bit 1
	AttrColor                   // 2: bit 2
	AttrHollow                  // 3: bit 3

	NumAttributes = 4
)

// Attributes lists every attribute in token bit order.
var Attributes = [NumAttributes]Attribute{AttrSize, AttrShape, AttrColor, AttrHollow}

var attributeNames = [NumAttributes]string{"size", "shape", "color", "hollow"}

// String returns the lower-case attribute name.
func (a Attribute) String() string {
	if a >= NumAttributes {
		return fmt.Sprintf("Attribute(%d)", uint8(a))
	}
	return attributeNames[a]
}

// ParseAttribute resolves an attribute by name. "colour" and "hole" are
// accepted as aliases.
func ParseAttribute(name string) (Attribute, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "size":
		return AttrSize, nil
	case "shape":
		return AttrShape, nil
	case "color", "colour":
		return AttrColor, nil
	case "hollow", "hole":
		return AttrHollow, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCharacteristic, name)
}

// mustBit returns the token bit for a. An attribute outside the closed set
// is a programming error.
func (a Attribute) mustBit() uint8 {
	if a >= NumAttributes {
		panic(fmt.Sprintf("engine: attribute %d out of range", uint8(a)))
	}
	return 1 << a
}

// Attribute values. Each is the value of the corresponding token bit.
type (
	Size   uint8
	Shape  uint8
	Color  uint8
	Hollow uint8
)

const (
	SizeSmall Size = 0
	SizeLarge Size = 1

	ShapeCircle Shape = 0
	ShapeSquare Shape = 1

	ColorBlue Color = 0
	ColorRed  Color = 1

	HollowSolid Hollow = 0
	HollowHole  Hollow = 1
)

// Token is a packed uint8: bit 0 = size, bit 1 = shape, bit 2 = color,
// bit 3 = hollow. Valid tokens are 0..15.
type Token uint8

// NoToken represents the absence of a token (empty cell, nothing pending).
const NoToken Token = 0xFF

// NumTokens is the size of the token universe.
const NumTokens = 16

// NewToken constructs a Token from its four attribute values.
func NewToken(size Size, shape Shape, color Color, hollow Hollow) Token {
	return Token((uint8(size) & 1) |
		(uint8(shape)&1)<<1 |
		(uint8(color)&1)<<2 |
		(uint8(hollow)&1)<<3)
}

// Valid reports whether t is one of the 16 real tokens.
func (t Token) Valid() bool { return t < NumTokens }

func (t Token) Size() Size     { return Size(t & 1) }
func (t Token) Shape() Shape   { return Shape(t >> 1 & 1) }
func (t Token) Color() Color   { return Color(t >> 2 & 1) }
func (t Token) Hollow() Hollow { return Hollow(t >> 3 & 1) }

// Value returns the 0/1 value of t on attribute a.
func (t Token) Value(a Attribute) uint8 {
	return uint8(t) & a.mustBit() >> a
}

// Catalog returns the 16 tokens, the Cartesian product of the attribute
// domains. Size varies fastest, hollow slowest.
func Catalog() [NumTokens]Token {
	var out [NumTokens]Token
	for i := range out {
		out[i] = Token(i)
	}
	return out
}

// ---------------------------------------------------------------------------
// Codes
// ---------------------------------------------------------------------------

// Code letters per attribute, indexed by the bit value.
var codeLetters = [NumAttributes][2]byte{
	{'S', 'L'}, // size: small, large
	{'C', 'Q'}, // shape: circle, square
	{'B', 'R'}, // color: blue, red
	{'F', 'H'}, // hollow: solid (filled), hollow
}

// Code returns the 4-character display code: size, shape, color, hollow.
// A small blue solid circle is "SCBF".
func (t Token) Code() string {
	if !t.Valid() {
		return "----"
	}
	var b [NumAttributes]byte
	for _, a := range Attributes {
		b[a] = codeLetters[a][t.Value(a)]
	}
	return string(b[:])
}

// String implements fmt.Stringer using the display code.
func (t Token) String() string { return t.Code() }

// ParseToken parses a display code produced by Code. Case-insensitive.
func ParseToken(code string) (Token, error) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if len(s) != NumAttributes {
		return NoToken, fmt.Errorf("%w: %q must be %d letters", ErrInvalidToken, code, NumAttributes)
	}
	var t uint8
	for _, a := range Attributes {
		switch s[a] {
		case codeLetters[a][0]:
		case codeLetters[a][1]:
			t |= 1 << a
		default:
			return NoToken, fmt.Errorf("%w: %q has bad %s letter %q", ErrInvalidToken, code, a, s[a])
		}
	}
	return Token(t), nil
}

// Name returns the descriptive name used by the drawing layer, e.g.
// "large_red_square_hole".
func (t Token) Name() string {
	if !t.Valid() {
		return ""
	}
	var sb strings.Builder
	if t.Size() == SizeLarge {
		sb.WriteString("large_")
	} else {
		sb.WriteString("small_")
	}
	if t.Color() == ColorRed {
		sb.WriteString("red_")
	} else {
		sb.WriteString("blue_")
	}
	if t.Shape() == ShapeSquare {
		sb.WriteString("square")
	} else {
		sb.WriteString("circle")
	}
	if t.Hollow() == HollowHole {
		sb.WriteString("_hole")
	}
	return sb.String()
}

// ParseTokenName is the inverse of Name.
func ParseTokenName(name string) (Token, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, t := range Catalog() {
		if t.Name() == n {
			return t, nil
		}
	}
	return NoToken, fmt.Errorf("%w: unknown piece name %q", ErrInvalidToken, name)
}

// ---------------------------------------------------------------------------
// Pool: bitmask of tokens
// ---------------------------------------------------------------------------

// Pool is a set of tokens; bit i is set when Token(i) is a member.
type Pool uint16

// FullPool holds all 16 tokens.
const FullPool Pool = 0xFFFF

func (p Pool) Has(t Token) bool { return t.Valid() && p&(1<<t) != 0 }

func (p Pool) With(t Token) Pool    { return p | 1<<t }
func (p Pool) Without(t Token) Pool { return p &^ (1 << t) }

// Len returns the number of tokens in the pool.
func (p Pool) Len() int {
	n := 0
	for x := p; x != 0; x &= x - 1 {
		n++
	}
	return n
}

// Tokens returns the members in catalog order.
func (p Pool) Tokens() []Token {
	out := make([]Token, 0, p.Len())
	for t := Token(0); t < NumTokens; t++ {
		if p.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
