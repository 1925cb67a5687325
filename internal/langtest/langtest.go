// Package langtest trains a small English model for tests in other packages.
package langtest

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/domino14/classic_crypto/internal/lang"
)

var (
	once    sync.Once
	english *lang.Language
	corpus  string
	loadErr error
)

// CorpusPath is the English corpus shipped in the lang package's testdata.
func CorpusPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "lang", "testdata", "english.txt")
}

func load() {
	bts, err := os.ReadFile(CorpusPath())
	if err != nil {
		loadErr = err
		return
	}
	corpus = string(bts)
	english, loadErr = lang.Train(lang.English(), corpus)
}

// English returns the model trained on the test corpus. It is trained once
// per test binary.
func English(t testing.TB) *lang.Language {
	t.Helper()
	once.Do(load)
	if loadErr != nil {
		t.Fatalf("training test model: %v", loadErr)
	}
	return english
}

// Corpus returns the raw training text.
func Corpus(t testing.TB) string {
	t.Helper()
	English(t)
	return corpus
}

// Letters returns n code points of the corpus, starting at letter offset,
// in the primary alphabet.
func Letters(t testing.TB, offset, n int) []int {
	t.Helper()
	cps := English(t).Primary().CodePoints(Corpus(t))
	if offset+n > len(cps) {
		t.Fatalf("corpus has %d letters, want %d", len(cps), offset+n)
	}
	return cps[offset : offset+n]
}
