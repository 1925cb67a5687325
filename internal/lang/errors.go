package lang

import "errors"

var (
	ErrFileNotFound               = errors.New("model file not found")
	ErrRead                       = errors.New("could not read model")
	ErrDeserialization            = errors.New("could not deserialize model")
	ErrInsufficientCorpus         = errors.New("corpus has too few letters")
	ErrAlphabetLengthUnmatched    = errors.New("no alphabet matches the requested length")
	ErrAlphabetLengthMismatch     = errors.New("upper and lower alphabets differ in length")
	ErrScoringTableLengthMismatch = errors.New("scoring table length differs from alphabet length")
	ErrScoringIndexOutOfRange     = errors.New("scoring table entry out of range")
	ErrMaxAlphabetLengthExceeded  = errors.New("alphabet is too long")
	ErrRepeatedCharacter          = errors.New("alphabet repeats a character")
	ErrSubstitutionsNotPaired     = errors.New("alias entries must be exactly two characters")
	ErrSubstitutionsNotUnique     = errors.New("alias characters must be unique")
	ErrInvalidSubstitutionTarget  = errors.New("alias target is not in the alphabet")
	ErrInsufficientInput          = errors.New("input too short")
)
