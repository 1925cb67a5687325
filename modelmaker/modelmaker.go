// Package modelmaker trains language models from corpora on disk and writes
// them out as model files and, optionally, into a SQLite model store.
package modelmaker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modelstore"
)

// LanguageInfo says where the inputs for one language live.
type LanguageInfo struct {
	Name            string
	RequestFilename string
	CorpusFilenames []string
}

type LanguageMap map[string]*LanguageInfo

// LanguageMappings finds every language under dataPath. A language needs a
// training request at languages/<name>.yaml and one or more corpus files at
// corpora/<name>/*.txt.
func LanguageMappings(dataPath string) (LanguageMap, error) {
	reqs, err := filepath.Glob(filepath.Join(dataPath, "languages", "*.yaml"))
	if err != nil {
		return nil, err
	}
	m := LanguageMap{}
	for _, req := range reqs {
		name := strings.TrimSuffix(filepath.Base(req), ".yaml")
		corpora, err := filepath.Glob(filepath.Join(dataPath, "corpora", name, "*.txt"))
		if err != nil {
			return nil, err
		}
		if len(corpora) == 0 {
			log.Info().Str("lang", name).Msg("no corpus files, skipping")
			continue
		}
		sort.Strings(corpora)
		m[name] = &LanguageInfo{
			Name:            name,
			RequestFilename: req,
			CorpusFilenames: corpora,
		}
	}
	return m, nil
}

func (m LanguageMap) GetLanguageInfo(name string) (*LanguageInfo, error) {
	info, ok := m[name]
	if !ok {
		return nil, errors.New("language not found")
	}
	return info, nil
}

// Names returns the languages in m, sorted.
func (m LanguageMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func readCorpus(filenames []string) (string, error) {
	var sb strings.Builder
	for _, fn := range filenames {
		bts, err := os.ReadFile(fn)
		if err != nil {
			return "", err
		}
		sb.Write(bts)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// CreateLanguageModel trains the model described by info. It writes
// <outputDir>/<name>.ccm unless the file exists and force is false, and
// stores the model in store when store is not nil.
func CreateLanguageModel(ctx context.Context, info *LanguageInfo, outputDir string,
	store *modelstore.SQLite, force bool) (*lang.Language, error) {

	req, err := lang.LoadTrainRequest(info.RequestFilename)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		req.Name = info.Name
	}
	out := filepath.Join(outputDir, req.Name+lang.ModelExtension)
	if _, err := os.Stat(out); err == nil && !force {
		return nil, fmt.Errorf("%s already exists; use force to overwrite", out)
	}
	corpus, err := readCorpus(info.CorpusFilenames)
	if err != nil {
		return nil, err
	}
	log.Info().Str("lang", req.Name).Int("corpus-files", len(info.CorpusFilenames)).
		Int("bytes", len(corpus)).Msg("training")
	l, err := lang.Train(req, corpus)
	if err != nil {
		return nil, err
	}
	if err := l.SaveFile(out); err != nil {
		return nil, err
	}
	log.Info().Str("path", out).Msg("wrote-model")
	if store != nil {
		if err := store.Put(ctx, l); err != nil {
			return nil, err
		}
	}
	return l, nil
}
