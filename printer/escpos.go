package printer

import "bytes"

// ESC/POS control sequences used by 58mm thermal printers.
var (
	cmdInit      = []byte{0x1B, 0x40}
	cmdFontA     = []byte{0x1B, 0x4D, 0x00}
	cmdCondensed = []byte{0x0F}
	cmdFeed8     = []byte{0x1B, 0x64, 0x08}
)

type Align byte

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

// Encoder accumulates an ESC/POS byte stream.
type Encoder struct {
	buf   bytes.Buffer
	align Align
	bold  bool
}

func NewEncoder() *Encoder {
	e := &Encoder{}
	e.buf.Write(cmdInit)
	e.buf.Write(cmdFontA)
	e.buf.Write(cmdCondensed)
	e.buf.WriteString("\n\n")
	return e
}

func (e *Encoder) SetAlign(a Align) {
	e.align = a
	e.buf.Write([]byte{0x1B, 0x61, byte(a)})
}

func (e *Encoder) SetBold(on bool) {
	e.bold = on
	var n byte
	if on {
		n = 1
	}
	e.buf.Write([]byte{0x1B, 0x45, n})
}

// Text writes s as Latin-1; runes outside it are dropped.
func (e *Encoder) Text(s string) {
	e.buf.Write(latin1(s))
}

func (e *Encoder) Line(s string) {
	e.Text(s)
	e.buf.WriteByte('\n')
}

func (e *Encoder) Feed() {
	e.buf.Write(cmdFeed8)
}

func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

func latin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x100 {
			out = append(out, byte(r))
		}
	}
	return out
}
