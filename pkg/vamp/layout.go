package vamp

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Kind is the scalar type stored in a layout field.
type Kind uint8

const (
	KindU8 Kind = iota
	KindBool
	KindU64
	KindPubkey
	KindPadding
)

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindBool:
		return "bool"
	case KindU64:
		return "u64le"
	case KindPubkey:
		return "pubkey"
	case KindPadding:
		return "padding"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type Field struct {
	Name   string
	Offset int
	Kind   Kind
	Len    int // padding fields only
}

func U8(name string) Field { return Field{Name: name, Kind: KindU8} }
func Bool(name string) Field { return Field{Name: name, Kind: KindBool} }
func U64(name string) Field { return Field{Name: name, Kind: KindU64} }
func Pubkey(name string) Field { return Field{Name: name, Kind: KindPubkey} }
func Padding(name string, n int) Field { return Field{Name: name, Kind: KindPadding, Len: n} }

// At returns a copy of f placed at the given offset.
func (f Field) At(offset int) Field {
	f.Offset = offset
	return f
}

func (f Field) Size() int {
	switch f.Kind {
	case KindU8, KindBool:
		return 1
	case KindU64:
		return 8
	case KindPubkey:
		return solana.PublicKeyLength
	case KindPadding:
		return f.Len
	}
	return 0
}

func (f Field) End() int {
	return f.Offset + f.Size()
}

// Layout is a packed byte-level schema. Fields cover [0, Size) exactly, in
// offset order, with explicit padding and no implicit alignment.
type Layout struct {
	Name   string
	Size   int
	Fields []Field
	index  map[string]int
}

// NewLayout validates the field table and panics if it is malformed.
func NewLayout(name string, size int, fields ...Field) *Layout {
	l := &Layout{Name: name, Size: size, Fields: fields, index: make(map[string]int, len(fields))}
	next := 0
	for i, f := range fields {
		if f.Size() <= 0 {
			panic(fmt.Sprintf("layout %s: field %s has no size", name, f.Name))
		}
		if f.Offset != next {
			panic(fmt.Sprintf("layout %s: field %s at offset %d, expected %d", name, f.Name, f.Offset, next))
		}
		if _, dup := l.index[f.Name]; dup {
			panic(fmt.Sprintf("layout %s: duplicate field %s", name, f.Name))
		}
		l.index[f.Name] = i
		next = f.End()
	}
	if next != size {
		panic(fmt.Sprintf("layout %s: fields cover %d bytes, declared %d", name, next, size))
	}
	return l
}

// Packed places fields back to back from offset zero.
func Packed(name string, fields ...Field) *Layout {
	placed := make([]Field, len(fields))
	offset := 0
	for i, f := range fields {
		placed[i] = f.At(offset)
		offset = placed[i].End()
	}
	return NewLayout(name, offset, placed...)
}

func (l *Layout) Field(name string) Field {
	i, ok := l.index[name]
	if !ok {
		panic(fmt.Sprintf("layout %s: no field %s", l.Name, name))
	}
	return l.Fields[i]
}

// Marshal encodes one value per non-padding field, in field order.
func (l *Layout) Marshal(values ...any) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(l.Size)
	enc := bin.NewBinEncoder(buf)

	vi := 0
	for _, f := range l.Fields {
		if f.Kind == KindPadding {
			if err := enc.WriteBytes(make([]byte, f.Len), false); err != nil {
				return nil, err
			}
			continue
		}
		if vi >= len(values) {
			return nil, fmt.Errorf("layout %s: missing value for %s", l.Name, f.Name)
		}
		if err := writeField(enc, f, values[vi]); err != nil {
			return nil, fmt.Errorf("layout %s: %w", l.Name, err)
		}
		vi++
	}
	if vi != len(values) {
		return nil, fmt.Errorf("layout %s: %d values given, %d used", l.Name, len(values), vi)
	}
	if buf.Len() != l.Size {
		return nil, fmt.Errorf("layout %s: encoded %d bytes, expected %d", l.Name, buf.Len(), l.Size)
	}
	return buf.Bytes(), nil
}

func writeField(enc *bin.Encoder, f Field, v any) error {
	switch f.Kind {
	case KindU8:
		switch x := v.(type) {
		case uint8:
			return enc.WriteUint8(x)
		case Opcode:
			return enc.WriteUint8(uint8(x))
		}
	case KindBool:
		if x, ok := v.(bool); ok {
			return enc.WriteBool(x)
		}
	case KindU64:
		if x, ok := v.(uint64); ok {
			return enc.WriteUint64(x, bin.LE)
		}
	case KindPubkey:
		if x, ok := v.(solana.PublicKey); ok {
			return enc.WriteBytes(x[:], false)
		}
	}
	return fmt.Errorf("field %s: cannot encode %T as %s", f.Name, v, f.Kind)
}

// View reads fields of an encoded layout by name.
type View struct {
	layout *Layout
	data   []byte
}

func (l *Layout) View(data []byte) (View, error) {
	if len(data) != l.Size {
		return View{}, fmt.Errorf("layout %s: got %d bytes, expected %d", l.Name, len(data), l.Size)
	}
	return View{layout: l, data: data}, nil
}

func (v View) decoder(name string, kind Kind) *bin.Decoder {
	f := v.layout.Field(name)
	if f.Kind != kind {
		panic(fmt.Sprintf("layout %s: field %s is %s, read as %s", v.layout.Name, name, f.Kind, kind))
	}
	return bin.NewBinDecoder(v.data[f.Offset:f.End()])
}

// The length check in View makes every fixed-offset read infallible.
func mustRead[T any](val T, err error) T {
	if err != nil {
		panic(err.Error())
	}
	return val
}

func (v View) U8(name string) uint8 {
	return mustRead(v.decoder(name, KindU8).ReadUint8())
}

func (v View) Bool(name string) bool {
	return mustRead(v.decoder(name, KindBool).ReadBool())
}

func (v View) U64(name string) uint64 {
	return mustRead(v.decoder(name, KindU64).ReadUint64(bin.LE))
}

func (v View) Pubkey(name string) solana.PublicKey {
	b := mustRead(v.decoder(name, KindPubkey).ReadBytes(solana.PublicKeyLength))
	return solana.PublicKeyFromBytes(b)
}
