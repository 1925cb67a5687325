package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/cipher"
	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modelstore"
)

// Use more specific env var names here to avoid colliding with other
// env vars user might have on their system.
var LogLevel = os.Getenv("CRYPTOCLI_LOG_LEVEL")

type Config struct {
	dataPath    string
	modelDB     string
	language    string
	alphabetLen int
	cipher      string
	key         string
	seed        uint64
	maxPeriod   int

	command string
	text    string
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("cryptocli", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: cryptocli [flags] solve|encrypt|decrypt|analyse [text]\n")
		fmt.Fprintf(os.Stderr, "ciphers: %s\n", strings.Join(cipher.Names(), ", "))
		fs.PrintDefaults()
	}

	fs.StringVar(&c.dataPath, "data-path", os.Getenv("CC_DATA_PATH"), "directory holding trained model files")
	fs.StringVar(&c.modelDB, "model-db-path", "", "sqlite database holding trained models")
	fs.StringVar(&c.language, "model", "english", "language model to use")
	fs.IntVar(&c.alphabetLen, "alphabet-len", 0, "alphabet variant; 0 is the language's primary alphabet")
	fs.StringVar(&c.cipher, "cipher", "caesar", "cipher name")
	fs.StringVar(&c.key, "key", "", "key for encrypt and decrypt")
	fs.Uint64Var(&c.seed, "seed", 0, "seed for the substitution solver")
	fs.IntVar(&c.maxPeriod, "max-period", 20, "largest period analyse reports")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("no command given")
	}
	c.command = fs.Arg(0)
	c.text = strings.Join(fs.Args()[1:], " ")
	return nil
}

func loadVariant(ctx context.Context, cfg *Config) (*lang.Variant, error) {
	var src modelstore.Source = &modelstore.Dir{Path: cfg.dataPath}
	if cfg.modelDB != "" {
		store, err := modelstore.OpenSQLite(cfg.modelDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		src = store
	}
	l, err := src.Language(ctx, cfg.language)
	if err != nil {
		return nil, err
	}
	if cfg.alphabetLen == 0 {
		return l.Primary(), nil
	}
	return l.Variant(cfg.alphabetLen)
}

func main() {
	cfg := &Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if strings.ToLower(LogLevel) == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if cfg.text == "" {
		bts, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("reading-stdin")
		}
		cfg.text = string(bts)
	}
	log.Debug().Str("command", cfg.command).Str("cipher", cfg.cipher).Int("bytes", len(cfg.text)).Msg("input")

	v, err := loadVariant(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("model", cfg.language).Msg("loading-model")
	}
	if err := run(os.Stdout, cfg, v); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

func run(w io.Writer, cfg *Config, v *lang.Variant) error {
	if cfg.command == "analyse" {
		return analyse(w, v, cfg.text, cfg.maxPeriod)
	}

	var rng *rand.Rand
	if cfg.seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	}
	c, err := cipher.New(cfg.cipher, v, rng)
	if err != nil {
		return err
	}

	switch cfg.command {
	case "encrypt", "decrypt":
		if err := c.SetKey(v, cfg.key); err != nil {
			return err
		}
		if cfg.command == "encrypt" {
			fmt.Fprintln(w, cipher.EncryptText(c, v, cfg.text))
		} else {
			fmt.Fprintln(w, cipher.DecryptText(c, v, cfg.text))
		}
	case "solve":
		cps := v.CodePoints(cfg.text)
		if len(cps) == 0 {
			return errors.New("no letters to solve")
		}
		c.Solve(v, cps)
		fmt.Fprintf(w, "\u001b[32mkey: %s  score: %.2f\033[0m\n", c.Key(v), v.Score(c.Decrypt(cps), lang.Quadgrams))
		fmt.Fprintln(w, cipher.DecryptText(c, v, cfg.text))
	default:
		return fmt.Errorf("unknown command %q", cfg.command)
	}
	return nil
}

func analyse(w io.Writer, v *lang.Variant, text string, maxPeriod int) error {
	cps := v.CodePoints(text)
	ioc, err := lang.IndexOfCoincidence(cps)
	if err != nil {
		return err
	}
	chi, err := v.ChiSquared(cps)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "letters: %d\nioc: %.4f (expected %.4f)\nchi-squared: %.1f\n",
		len(cps), ioc, v.ExpectedIOC(), chi)
	for i, pioc := range lang.PeriodicIOCs(cps, maxPeriod) {
		fmt.Fprintf(w, "  period %2d: %.4f\n", i+1, pioc)
	}
	fmt.Fprintf(w, "likely period: %d\n", v.LikelyPeriod(cps, maxPeriod))
	return nil
}
