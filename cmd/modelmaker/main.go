// The caller of the model maker.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/modelstore"
	"github.com/domino14/classic_crypto/modelmaker"
)

type Config struct {
	langs       string
	forceCreate bool
	outputDir   string
	dataPath    string
	modelDB     string
	list        bool
}

// Load loads the configs from the given arguments
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("modelmaker", flag.ContinueOnError)

	fs.StringVar(&c.langs, "langs", "", "Comma-separated list of languages to train, instead of all")
	fs.BoolVar(&c.forceCreate, "force", false, "Train even if the model file already exists (overwrite)")
	fs.StringVar(&c.outputDir, "outputdir", ".", "The output directory")
	fs.StringVar(&c.dataPath, "datapath", os.Getenv("CC_DATA_PATH"), "The data path")
	fs.StringVar(&c.modelDB, "modeldb", "", "Also store the models in this SQLite database")
	fs.BoolVar(&c.list, "list", false, "List the models stored in -modeldb and exit")
	return fs.Parse(args)
}

// listModels writes one line per stored model.
func listModels(ctx context.Context, store *modelstore.SQLite, w io.Writer) error {
	infos, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%s\n", info.Name, info.AlphabetLen, info.ExpectedIOC,
			info.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func main() {
	cfg := &Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("bad-config")
	}
	if cfg.list {
		if cfg.modelDB == "" {
			log.Fatal().Msg("-list requires -modeldb")
		}
		store, err := modelstore.OpenSQLite(cfg.modelDB)
		if err != nil {
			log.Fatal().Err(err).Msg("opening-model-db")
		}
		defer store.Close()
		if err := listModels(context.Background(), store, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("listing-models")
		}
		return
	}
	log.Info().Str("datapath", cfg.dataPath).Str("outputdir", cfg.outputDir).
		Str("langs", cfg.langs).Msg("modelmaker-started")

	if err := os.MkdirAll(cfg.outputDir, os.ModePerm); err != nil {
		log.Fatal().Err(err).Msg("creating-output-dir")
	}
	langMap, err := modelmaker.LanguageMappings(cfg.dataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("reading-data-path")
	}

	var store *modelstore.SQLite
	if cfg.modelDB != "" {
		store, err = modelstore.OpenSQLite(cfg.modelDB)
		if err != nil {
			log.Fatal().Err(err).Msg("opening-model-db")
		}
		defer store.Close()
	}

	names := langMap.Names()
	if cfg.langs != "" {
		names = strings.Split(cfg.langs, ",")
	}
	ctx := context.Background()
	for _, name := range names {
		info, err := langMap.GetLanguageInfo(name)
		if err != nil {
			log.Err(err).Msgf("%v was not in list of languages, skipping...", name)
			continue
		}
		l, err := modelmaker.CreateLanguageModel(ctx, info, cfg.outputDir, store, cfg.forceCreate)
		if err != nil {
			log.Err(err).Str("lang", name).Msg("model-not-created")
			continue
		}
		log.Info().Str("lang", l.Name).Int("alphabets", len(l.Alphabets)).Msg("model-created")
	}
}
