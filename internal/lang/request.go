package lang

import (
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// TrainRequest describes a language to train. It is usually read from a YAML
// file such as:
//
//	name: english
//	alphabet_len: 26
//	alphabets:
//	  - upper: ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	    lower: abcdefghijklmnopqrstuvwxyz
//	ligatures:
//	  Æ: AE
type TrainRequest struct {
	Name        string            `yaml:"name"`
	AlphabetLen int               `yaml:"alphabet_len"`
	Alphabets   []*Alphabet       `yaml:"alphabets"`
	Ligatures   map[string]string `yaml:"ligatures"`
}

// LoadTrainRequest reads a TrainRequest from a YAML file.
func LoadTrainRequest(path string) (*TrainRequest, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	req := &TrainRequest{}
	if err := yaml.Unmarshal(bts, req); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for k := range req.Ligatures {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("parsing %s: ligature key %q must be one character", path, k)
		}
	}
	return req, nil
}

func (r *TrainRequest) ligatureMap() map[rune]string {
	if len(r.Ligatures) == 0 {
		return nil
	}
	m := make(map[rune]string, len(r.Ligatures))
	for k, v := range r.Ligatures {
		lr, _ := utf8.DecodeRuneInString(k)
		m[lr] = v
	}
	return m
}

// English is the request for the standard 26-letter English model with a
// 25-letter variant that folds J into I.
func English() *TrainRequest {
	return &TrainRequest{
		Name:        "english",
		AlphabetLen: 26,
		Alphabets: []*Alphabet{
			{
				Upper: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
				Lower: "abcdefghijklmnopqrstuvwxyz",
			},
			{
				Upper:        "ABCDEFGHIKLMNOPQRSTUVWXYZ",
				Lower:        "abcdefghiklmnopqrstuvwxyz",
				UpperAliases: []string{"JI"},
				LowerAliases: []string{"ji"},
				ScoringTable: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 13, 14,
					15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25},
			},
		},
		Ligatures: map[string]string{"Æ": "AE", "æ": "ae", "Œ": "OE", "œ": "oe"},
	}
}
