package solverserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/matryer/is"

	"github.com/domino14/classic_crypto/config"
	"github.com/domino14/classic_crypto/internal/auth"
	"github.com/domino14/classic_crypto/internal/cipher"
	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/langtest"
	"github.com/domino14/classic_crypto/internal/modelstore"
	"github.com/domino14/classic_crypto/internal/solvelog"
)

type mapSource map[string]*lang.Language

func (m mapSource) Language(_ context.Context, name string) (*lang.Language, error) {
	l, ok := m[name]
	if !ok {
		return nil, modelstore.ErrNotFound
	}
	return l, nil
}

type memJournal struct {
	sync.Mutex
	entries []solvelog.Entry
}

func (j *memJournal) Record(_ context.Context, e solvelog.Entry) (int64, error) {
	j.Lock()
	defer j.Unlock()
	j.entries = append(j.entries, e)
	return int64(len(j.entries)), nil
}

func (j *memJournal) Recent(_ context.Context, limit int) ([]solvelog.Entry, error) {
	j.Lock()
	defer j.Unlock()
	var out []solvelog.Entry
	for i := len(j.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.entries[i])
	}
	return out, nil
}

func newTestServer(t *testing.T, timeout time.Duration) (*Server, *memJournal) {
	j := &memJournal{}
	cfg := &config.Config{SolveTimeout: timeout}
	return NewServer(cfg, mapSource{"english": langtest.English(t)}, j), j
}

func encrypt(t *testing.T, name, key, text string) string {
	v := langtest.English(t).Primary()
	c, err := cipher.New(name, v, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetKey(v, key); err != nil {
		t.Fatal(err)
	}
	return cipher.EncryptText(c, v, text)
}

func TestSolveCaesar(t *testing.T) {
	is := is.New(t)
	s, j := newTestServer(t, time.Minute)
	plain := langtest.Corpus(t)[:600]
	ctx := auth.WithCaller(context.Background(), auth.Caller{ID: 3, Username: "cesar"})

	resp, err := s.Solve(ctx, connect.NewRequest(&SolveRequest{
		Language:   "english",
		Cipher:     "caesar",
		Ciphertext: encrypt(t, "caesar", "D", plain),
	}))
	is.NoErr(err)
	is.Equal(resp.Msg.Key, "D")
	is.Equal(resp.Msg.Plaintext, plain)
	is.True(resp.Msg.Score < 0)

	is.Equal(len(j.entries), 1)
	is.Equal(j.entries[0].Username, "cesar")
	is.Equal(j.entries[0].Key, "D")
	is.Equal(j.entries[0].Cipher, "caesar")
}

func TestSolveErrors(t *testing.T) {
	is := is.New(t)
	s, j := newTestServer(t, time.Minute)
	ctx := context.Background()
	plain := langtest.Corpus(t)[:200]

	for _, tc := range []struct {
		req  SolveRequest
		code connect.Code
	}{
		{SolveRequest{Language: "klingon", Cipher: "caesar", Ciphertext: plain}, connect.CodeNotFound},
		{SolveRequest{Cipher: "caesar", Ciphertext: plain}, connect.CodeInvalidArgument},
		{SolveRequest{Language: "english", Cipher: "enigma", Ciphertext: plain}, connect.CodeInvalidArgument},
		{SolveRequest{Language: "english", Cipher: "caesar", Ciphertext: "a b!"}, connect.CodeInvalidArgument},
		{SolveRequest{Language: "english", AlphabetLen: 24, Cipher: "caesar", Ciphertext: plain}, connect.CodeInvalidArgument},
		{SolveRequest{Language: "english", AlphabetLen: 25, Cipher: "porta", Ciphertext: plain}, connect.CodeInvalidArgument},
	} {
		_, err := s.Solve(ctx, connect.NewRequest(&tc.req))
		is.Equal(connect.CodeOf(err), tc.code)
	}
	is.Equal(len(j.entries), 0)
}

func TestSolveTimeout(t *testing.T) {
	is := is.New(t)
	s, j := newTestServer(t, time.Nanosecond)
	_, err := s.Solve(context.Background(), connect.NewRequest(&SolveRequest{
		Language:   "english",
		Cipher:     "substitution",
		Ciphertext: langtest.Corpus(t)[:2000],
		Seed:       7,
	}))
	is.Equal(connect.CodeOf(err), connect.CodeDeadlineExceeded)
	is.Equal(len(j.entries), 0)
}

func TestAnalyse(t *testing.T) {
	is := is.New(t)
	s, _ := newTestServer(t, time.Minute)
	plain := langtest.Corpus(t)[:3000]
	v := langtest.English(t).Primary()

	resp, err := s.Analyse(context.Background(), connect.NewRequest(&AnalyseRequest{
		Language: "english",
		Text:     plain,
	}))
	is.NoErr(err)
	is.Equal(resp.Msg.Letters, len(v.CodePoints(plain)))
	is.Equal(len(resp.Msg.PeriodicIOC), DefaultMaxPeriod)
	is.Equal(resp.Msg.PeriodicIOC[0], resp.Msg.IOC)
	is.Equal(resp.Msg.ExpectedIOC, v.ExpectedIOC())
	is.Equal(resp.Msg.LikelyPeriod, 1)

	_, err = s.Analyse(context.Background(), connect.NewRequest(&AnalyseRequest{
		Language:  "english",
		Text:      plain,
		MaxPeriod: MaxPeriod + 1,
	}))
	is.Equal(connect.CodeOf(err), connect.CodeInvalidArgument)
}

func TestConnectRoundTrip(t *testing.T) {
	is := is.New(t)
	s, _ := newTestServer(t, time.Minute)
	mux := http.NewServeMux()
	s.Register(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := connect.NewClient[AnalyseRequest, AnalyseResponse](
		srv.Client(), srv.URL+AnalyseProcedure, connect.WithCodec(JSONCodec{}))
	resp, err := client.CallUnary(context.Background(), connect.NewRequest(&AnalyseRequest{
		Language:  "english",
		Text:      langtest.Corpus(t)[:1000],
		MaxPeriod: 5,
	}))
	is.NoErr(err)
	is.Equal(len(resp.Msg.PeriodicIOC), 5)
	is.True(resp.Msg.IOC > 0.05)

	_, err = client.CallUnary(context.Background(), connect.NewRequest(&AnalyseRequest{
		Language: "latin",
		Text:     "gallia est omnis divisa",
	}))
	is.Equal(connect.CodeOf(err), connect.CodeNotFound)
}

func TestRecent(t *testing.T) {
	is := is.New(t)
	s, j := newTestServer(t, time.Minute)
	for _, c := range []string{"caesar", "affine", "vigenere"} {
		_, err := j.Record(context.Background(), solvelog.Entry{
			Language: "english", Cipher: c, Elapsed: 1500 * time.Millisecond, Username: "cesar"})
		is.NoErr(err)
	}

	resp, err := s.Recent(context.Background(), connect.NewRequest(&RecentRequest{Limit: 2}))
	is.NoErr(err)
	is.Equal(len(resp.Msg.Solves), 2)
	is.Equal(resp.Msg.Solves[0].Cipher, "vigenere")
	is.Equal(resp.Msg.Solves[1].Cipher, "affine")
	is.Equal(resp.Msg.Solves[0].ElapsedMS, int64(1500))

	resp, err = s.Recent(context.Background(), connect.NewRequest(&RecentRequest{}))
	is.NoErr(err)
	is.Equal(len(resp.Msg.Solves), 3)

	_, err = s.Recent(context.Background(), connect.NewRequest(&RecentRequest{Limit: MaxRecentLimit + 1}))
	is.Equal(connect.CodeOf(err), connect.CodeInvalidArgument)

	s.Journal = nil
	_, err = s.Recent(context.Background(), connect.NewRequest(&RecentRequest{}))
	is.Equal(connect.CodeOf(err), connect.CodeUnavailable)
}
