package lang

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/encoding/protowire"
)

// Model files are protobuf wire format:
//
//	message Language {
//	  string name = 1;
//	  uint32 alphabet_len = 2;
//	  repeated Alphabet alphabets = 3;
//	  repeated Ligature ligatures = 4;
//	  repeated double unigrams = 5 [packed = true];
//	  repeated double bigrams = 6 [packed = true];
//	  repeated double trigrams = 7 [packed = true];
//	  repeated double quadgrams = 8 [packed = true];
//	}
//	message Alphabet {
//	  string upper = 1;
//	  string lower = 2;
//	  repeated string upper_aliases = 3;
//	  repeated string lower_aliases = 4;
//	  repeated uint32 scoring_table = 5 [packed = true];
//	  double expected_ioc = 6;
//	}
//	message Ligature {
//	  uint32 rune = 1;
//	  string expansion = 2;
//	}
const (
	fieldName        protowire.Number = 1
	fieldAlphabetLen protowire.Number = 2
	fieldAlphabets   protowire.Number = 3
	fieldLigatures   protowire.Number = 4
	fieldTables      protowire.Number = 5

	fieldUpper        protowire.Number = 1
	fieldLower        protowire.Number = 2
	fieldUpperAliases protowire.Number = 3
	fieldLowerAliases protowire.Number = 4
	fieldScoringTable protowire.Number = 5
	fieldExpectedIOC  protowire.Number = 6

	fieldLigatureRune      protowire.Number = 1
	fieldLigatureExpansion protowire.Number = 2
)

// ModelExtension is the file extension of serialized models.
const ModelExtension = ".ccm"

// MarshalBinary serializes the model.
func (l *Language) MarshalBinary() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, fieldName, protowire.BytesType)
	b = protowire.AppendString(b, l.Name)
	b = protowire.AppendTag(b, fieldAlphabetLen, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(l.AlphabetLen))
	for _, a := range l.Alphabets {
		b = protowire.AppendTag(b, fieldAlphabets, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalAlphabet(a))
	}
	for _, r := range slices.Sorted(maps.Keys(l.Ligatures)) {
		exp := l.Ligatures[r]
		var lb []byte
		lb = protowire.AppendTag(lb, fieldLigatureRune, protowire.VarintType)
		lb = protowire.AppendVarint(lb, uint64(r))
		lb = protowire.AppendTag(lb, fieldLigatureExpansion, protowire.BytesType)
		lb = protowire.AppendString(lb, exp)
		b = protowire.AppendTag(b, fieldLigatures, protowire.BytesType)
		b = protowire.AppendBytes(b, lb)
	}
	for k, table := range l.tables {
		packed := make([]byte, 0, 8*len(table))
		for _, f := range table {
			packed = protowire.AppendFixed64(packed, math.Float64bits(f))
		}
		b = protowire.AppendTag(b, fieldTables+protowire.Number(k), protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	return b, nil
}

func marshalAlphabet(a *Alphabet) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldUpper, protowire.BytesType)
	b = protowire.AppendString(b, a.Upper)
	b = protowire.AppendTag(b, fieldLower, protowire.BytesType)
	b = protowire.AppendString(b, a.Lower)
	for _, s := range a.UpperAliases {
		b = protowire.AppendTag(b, fieldUpperAliases, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	for _, s := range a.LowerAliases {
		b = protowire.AppendTag(b, fieldLowerAliases, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	var packed []byte
	for _, s := range a.ScoringTable {
		packed = protowire.AppendVarint(packed, uint64(s))
	}
	b = protowire.AppendTag(b, fieldScoringTable, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	b = protowire.AppendTag(b, fieldExpectedIOC, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(a.ExpectedIOC))
	return b
}

// skipField tells walkFields to step over a field it does not know.
const skipField = math.MinInt32

// walkFields calls fn with the number, wire type and trailing bytes of each
// field in a message. fn returns how many of those bytes it consumed, or
// skipField.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if n == skipField {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	if typ != protowire.BytesType {
		return 0, errors.New("expected length-delimited field")
	}
	s, n := protowire.ConsumeString(b)
	*dst = s
	return n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errors.New("expected length-delimited field")
	}
	v, n := protowire.ConsumeBytes(b)
	return v, n, nil
}

// UnmarshalLanguage deserializes a model written by MarshalBinary and
// validates every alphabet in it.
func UnmarshalLanguage(b []byte) (*Language, error) {
	l := &Language{}
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == fieldName:
			return consumeString(typ, b, &l.Name)
		case num == fieldAlphabetLen:
			if typ != protowire.VarintType {
				return 0, errors.New("alphabet_len: expected varint")
			}
			v, n := protowire.ConsumeVarint(b)
			l.AlphabetLen = int(v)
			return n, nil
		case num == fieldAlphabets:
			msg, n, err := consumeBytes(typ, b)
			if err != nil || n < 0 {
				return n, err
			}
			a, err := unmarshalAlphabet(msg)
			if err != nil {
				return 0, err
			}
			l.Alphabets = append(l.Alphabets, a)
			return n, nil
		case num == fieldLigatures:
			msg, n, err := consumeBytes(typ, b)
			if err != nil || n < 0 {
				return n, err
			}
			if err := l.unmarshalLigature(msg); err != nil {
				return 0, err
			}
			return n, nil
		case num >= fieldTables && num < fieldTables+4:
			packed, n, err := consumeBytes(typ, b)
			if err != nil || n < 0 {
				return n, err
			}
			k := int(num - fieldTables)
			if len(packed) != 8*tableSize(ScoreSize(k+1)) {
				return 0, fmt.Errorf("table %d has %d bytes", k+1, len(packed))
			}
			table := make([]float64, 0, len(packed)/8)
			for len(packed) > 0 {
				v, m := protowire.ConsumeFixed64(packed)
				table = append(table, math.Float64frombits(v))
				packed = packed[m:]
			}
			l.tables[k] = table
			return n, nil
		}
		return skipField, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	for k, table := range l.tables {
		if table == nil {
			return nil, fmt.Errorf("%w: missing %d-gram table", ErrDeserialization, k+1)
		}
	}
	for _, a := range l.Alphabets {
		if err := a.Init(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
		}
	}
	if _, err := l.Variant(l.AlphabetLen); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	l.deriveUnigramProbs()
	return l, nil
}

func unmarshalAlphabet(b []byte) (*Alphabet, error) {
	a := &Alphabet{}
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldUpper:
			return consumeString(typ, b, &a.Upper)
		case fieldLower:
			return consumeString(typ, b, &a.Lower)
		case fieldUpperAliases, fieldLowerAliases:
			var s string
			n, err := consumeString(typ, b, &s)
			if num == fieldUpperAliases {
				a.UpperAliases = append(a.UpperAliases, s)
			} else {
				a.LowerAliases = append(a.LowerAliases, s)
			}
			return n, err
		case fieldScoringTable:
			packed, n, err := consumeBytes(typ, b)
			if err != nil || n < 0 {
				return n, err
			}
			for len(packed) > 0 {
				v, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return m, nil
				}
				a.ScoringTable = append(a.ScoringTable, int(v))
				packed = packed[m:]
			}
			return n, nil
		case fieldExpectedIOC:
			if typ != protowire.Fixed64Type {
				return 0, errors.New("expected_ioc: expected fixed64")
			}
			v, n := protowire.ConsumeFixed64(b)
			a.ExpectedIOC = math.Float64frombits(v)
			return n, nil
		}
		return skipField, nil
	})
	return a, err
}

func (l *Language) unmarshalLigature(b []byte) error {
	var r rune
	var exp string
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldLigatureRune:
			if typ != protowire.VarintType {
				return 0, errors.New("rune: expected varint")
			}
			v, n := protowire.ConsumeVarint(b)
			r = rune(v)
			return n, nil
		case fieldLigatureExpansion:
			return consumeString(typ, b, &exp)
		}
		return skipField, nil
	})
	if err != nil {
		return err
	}
	if l.Ligatures == nil {
		l.Ligatures = map[rune]string{}
	}
	l.Ligatures[r] = exp
	return nil
}

// SaveFile writes the model to path.
func (l *Language) SaveFile(path string) error {
	bts, err := l.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, bts, 0644)
}

// LoadFile reads a model written by SaveFile.
func LoadFile(path string) (*Language, error) {
	bts, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	l, err := UnmarshalLanguage(bts)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Str("lang", l.Name).Msg("loaded-model")
	return l, nil
}
