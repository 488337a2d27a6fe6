package engine

// Win describes a completed uniform line.
type Win struct {
	Line      Line
	LineIdx   uint8
	Attribute Attribute
	Value     uint8 // shared attribute value (0 or 1)
}

// uniformMask returns the attribute bits on which every token of l agrees,
// and ok=false when l is not full. Bits set in the result are attributes
// whose value is shared by all four tokens.
func (b *Board) uniformMask(l Line) (mask uint8, ok bool) {
	common, union := uint8(0x0F), uint8(0)
	for _, c := range l {
		t := b.Cells[c]
		if t == NoToken {
			return 0, false
		}
		common &= uint8(t)
		union |= uint8(t)
	}
	// Bits set in every token, plus bits clear in every token.
	return (common | ^union) & 0x0F, true
}

// LineIsUniform reports whether l is full and all four tokens share the same
// value of attr. A line that is not full is never uniform.
func (b *Board) LineIsUniform(l Line, attr Attribute) bool {
	bit := attr.mustBit()
	mask, ok := b.uniformMask(l)
	return ok && mask&bit != 0
}

// LineIsUniformByName is LineIsUniform with the attribute given by name.
// Unknown names return ErrInvalidCharacteristic.
func (b *Board) LineIsUniformByName(l Line, name string) (bool, error) {
	attr, err := ParseAttribute(name)
	if err != nil {
		return false, err
	}
	return b.LineIsUniform(l, attr), nil
}

// AnyWin reports whether some line is uniform on some attribute.
func (b *Board) AnyWin() bool {
	_, ok := b.FindWin()
	return ok
}

// FindWin returns the first winning line in Lines order, with the lowest
// uniform attribute.
func (b *Board) FindWin() (Win, bool) {
	for li := range lines {
		if w, ok := b.lineWin(uint8(li)); ok {
			return w, true
		}
	}
	return Win{}, false
}

// WinThrough restricts FindWin to the lines containing c. After placing at
// c, a new win can only appear on one of these lines.
func (b *Board) WinThrough(c Cell) (Win, bool) {
	if !c.Valid() {
		return Win{}, false
	}
	for _, li := range linesThrough[c] {
		if w, ok := b.lineWin(li); ok {
			return w, true
		}
	}
	return Win{}, false
}

func (b *Board) lineWin(li uint8) (Win, bool) {
	l := lines[li]
	mask, ok := b.uniformMask(l)
	if !ok || mask == 0 {
		return Win{}, false
	}
	for _, a := range Attributes {
		if mask&a.mustBit() != 0 {
			return Win{
				Line:      l,
				LineIdx:   li,
				Attribute: a,
				Value:     b.Cells[l[0]].Value(a),
			}, true
		}
	}
	return Win{}, false
}

// wouldWin reports whether placing t on the empty cell c completes a
// uniform line. The board is restored before returning.
func (b *Board) wouldWin(c Cell, t Token) bool {
	b.Cells[c] = t
	_, win := b.WinThrough(c)
	b.Cells[c] = NoToken
	return win
}
