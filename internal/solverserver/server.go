package solverserver

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/config"
	"github.com/domino14/classic_crypto/internal/auth"
	"github.com/domino14/classic_crypto/internal/cipher"
	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modelstore"
	"github.com/domino14/classic_crypto/internal/solvelog"
)

const (
	// MaxTextLen bounds the letters in one request.
	MaxTextLen = 20000
	// MinTextLen is the fewest letters worth analysing or solving.
	MinTextLen       = 4
	DefaultMaxPeriod = 20
	MaxPeriod        = 100

	DefaultRecentLimit = 20
	MaxRecentLimit     = 200
)

// A Journal records finished solves and reads back the latest ones.
type Journal interface {
	Record(ctx context.Context, e solvelog.Entry) (int64, error)
	Recent(ctx context.Context, limit int) ([]solvelog.Entry, error)
}

// Server implements the Solver service.
type Server struct {
	Config  *config.Config
	Models  modelstore.Source
	Journal Journal
}

func NewServer(cfg *config.Config, models modelstore.Source, journal Journal) *Server {
	return &Server{Config: cfg, Models: models, Journal: journal}
}

// Register mounts the service's procedures on mux.
func (s *Server) Register(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append(opts, connect.WithCodec(JSONCodec{}))
	mux.Handle(SolveProcedure, connect.NewUnaryHandler(SolveProcedure, s.Solve, opts...))
	mux.Handle(AnalyseProcedure, connect.NewUnaryHandler(AnalyseProcedure, s.Analyse, opts...))
	mux.Handle(RecentProcedure, connect.NewUnaryHandler(RecentProcedure, s.Recent, opts...))
}

func timeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	log.Info().Msgf("%s took %s", name, elapsed)
}

func invalidArgError(msg string) *connect.Error {
	return connect.NewError(connect.CodeInvalidArgument, errors.New(msg))
}

func (s *Server) variant(ctx context.Context, name string, alphabetLen int) (*lang.Variant, error) {
	if name == "" {
		return nil, invalidArgError("language not specified")
	}
	l, err := s.Models.Language(ctx, name)
	if errors.Is(err, modelstore.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if alphabetLen == 0 {
		return l.Primary(), nil
	}
	v, err := l.Variant(alphabetLen)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return v, nil
}

func checkLength(cps []int) error {
	if len(cps) < MinTextLen {
		return invalidArgError("text has too few letters")
	}
	if len(cps) > MaxTextLen {
		return invalidArgError("text has too many letters")
	}
	return nil
}

func (s *Server) Solve(ctx context.Context, req *connect.Request[SolveRequest]) (
	*connect.Response[SolveResponse], error) {
	defer timeTrack(time.Now(), "solve")

	v, err := s.variant(ctx, req.Msg.Language, req.Msg.AlphabetLen)
	if err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if req.Msg.Seed != 0 {
		rng = rand.New(rand.NewPCG(req.Msg.Seed, req.Msg.Seed))
	}
	c, err := cipher.New(req.Msg.Cipher, v, rng)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	cps := v.CodePoints(req.Msg.Ciphertext)
	if err := checkLength(cps); err != nil {
		return nil, err
	}

	if s.Config.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Config.SolveTimeout)
		defer cancel()
	}
	start := time.Now()
	done := make(chan struct{})
	// The solvers cannot be interrupted; an abandoned solve finishes in the
	// background and its result is dropped.
	go func() {
		c.Solve(v, cps)
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Ctx(ctx).Info().Str("cipher", req.Msg.Cipher).Int("letters", len(cps)).Msg("solve-timed-out")
		return nil, connect.NewError(connect.CodeDeadlineExceeded, errors.New("solve timed out"))
	}
	elapsed := time.Since(start)

	resp := &SolveResponse{
		Cipher:    req.Msg.Cipher,
		Key:       c.Key(v),
		Plaintext: cipher.DecryptText(c, v, req.Msg.Ciphertext),
		Score:     v.Score(c.Decrypt(cps), lang.Quadgrams),
		ElapsedMS: elapsed.Milliseconds(),
	}
	if s.Journal != nil {
		_, err := s.Journal.Record(ctx, solvelog.Entry{
			Language:      req.Msg.Language,
			Cipher:        req.Msg.Cipher,
			CiphertextLen: len(cps),
			Key:           resp.Key,
			Score:         resp.Score,
			Elapsed:       elapsed,
			Username:      auth.Username(ctx),
		})
		if err != nil {
			// The solve itself succeeded; don't fail the request over the journal.
			log.Ctx(ctx).Err(err).Msg("journal-record-failed")
		}
	}
	return connect.NewResponse(resp), nil
}

func (s *Server) Analyse(ctx context.Context, req *connect.Request[AnalyseRequest]) (
	*connect.Response[AnalyseResponse], error) {

	v, err := s.variant(ctx, req.Msg.Language, req.Msg.AlphabetLen)
	if err != nil {
		return nil, err
	}
	cps := v.CodePoints(req.Msg.Text)
	if err := checkLength(cps); err != nil {
		return nil, err
	}
	maxPeriod := req.Msg.MaxPeriod
	if maxPeriod == 0 {
		maxPeriod = DefaultMaxPeriod
	}
	if maxPeriod < 1 || maxPeriod > MaxPeriod {
		return nil, invalidArgError("max period out of range")
	}
	ioc, err := lang.IndexOfCoincidence(cps)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	chi, err := v.ChiSquared(cps)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&AnalyseResponse{
		Letters:      len(cps),
		IOC:          ioc,
		ExpectedIOC:  v.ExpectedIOC(),
		ChiSquared:   chi,
		PeriodicIOC:  lang.PeriodicIOCs(cps, maxPeriod),
		LikelyPeriod: v.LikelyPeriod(cps, maxPeriod),
	}), nil
}

// Recent lists the latest journaled solves, newest first.
func (s *Server) Recent(ctx context.Context, req *connect.Request[RecentRequest]) (
	*connect.Response[RecentResponse], error) {

	if s.Journal == nil {
		return nil, connect.NewError(connect.CodeUnavailable, errors.New("solve journal is not configured"))
	}
	limit := req.Msg.Limit
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 1 || limit > MaxRecentLimit {
		return nil, invalidArgError("limit out of range")
	}
	entries, err := s.Journal.Recent(ctx, limit)
	if err != nil {
		log.Ctx(ctx).Err(err).Msg("journal-recent-failed")
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	resp := &RecentResponse{Solves: make([]RecentSolve, len(entries))}
	for i, e := range entries {
		resp.Solves[i] = RecentSolve{
			Language:      e.Language,
			Cipher:        e.Cipher,
			CiphertextLen: e.CiphertextLen,
			Key:           e.Key,
			Score:         e.Score,
			ElapsedMS:     e.Elapsed.Milliseconds(),
			Username:      e.Username,
			CreatedAt:     e.CreatedAt,
		}
	}
	return connect.NewResponse(resp), nil
}
