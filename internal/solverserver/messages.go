package solverserver

import (
	"encoding/json"
	"time"
)

const (
	SolveProcedure   = "/classiccrypto.v1.Solver/Solve"
	AnalyseProcedure = "/classiccrypto.v1.Solver/Analyse"
	RecentProcedure  = "/classiccrypto.v1.Solver/Recent"
)

type SolveRequest struct {
	Language    string `json:"language"`
	AlphabetLen int    `json:"alphabet_len,omitempty"`
	Cipher      string `json:"cipher"`
	Ciphertext  string `json:"ciphertext"`
	// Seed fixes the substitution solver's random source; 0 means unseeded.
	Seed uint64 `json:"seed,omitempty"`
}

type SolveResponse struct {
	Cipher    string  `json:"cipher"`
	Key       string  `json:"key"`
	Plaintext string  `json:"plaintext"`
	Score     float64 `json:"score"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

type AnalyseRequest struct {
	Language    string `json:"language"`
	AlphabetLen int    `json:"alphabet_len,omitempty"`
	Text        string `json:"text"`
	MaxPeriod   int    `json:"max_period,omitempty"`
}

type AnalyseResponse struct {
	Letters      int       `json:"letters"`
	IOC          float64   `json:"ioc"`
	ExpectedIOC  float64   `json:"expected_ioc"`
	ChiSquared   float64   `json:"chi_squared"`
	PeriodicIOC  []float64 `json:"periodic_ioc"`
	LikelyPeriod int       `json:"likely_period"`
}

type RecentRequest struct {
	Limit int `json:"limit,omitempty"`
}

type RecentSolve struct {
	Language      string    `json:"language"`
	Cipher        string    `json:"cipher"`
	CiphertextLen int       `json:"ciphertext_len"`
	Key           string    `json:"key"`
	Score         float64   `json:"score"`
	ElapsedMS     int64     `json:"elapsed_ms"`
	Username      string    `json:"username"`
	CreatedAt     time.Time `json:"created_at"`
}

type RecentResponse struct {
	Solves []RecentSolve `json:"solves"`
}

// JSONCodec lets connect carry the plain Go messages above as JSON.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
