package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"

	"github.com/domino14/classic_crypto/internal/cipher"
	"github.com/domino14/classic_crypto/internal/langtest"
)

func TestAnalyseView(t *testing.T) {
	is := is.New(t)
	v := langtest.English(t).Primary()
	a, err := analyse(v, langtest.Corpus(t)[:2000])
	is.NoErr(err)
	is.Equal(a.likelyPeriod, 1)
	is.Equal(len(a.periodic), maxPeriod)
	is.True(strings.Contains(a.View(v), "*  1"))

	_, err = analyse(v, "a")
	is.True(err != nil)
}

func TestBar(t *testing.T) {
	is := is.New(t)
	is.Equal(bar(0.066, 0.066), strings.Repeat("#", 30))
	is.Equal(bar(1, 0.066), strings.Repeat("#", 45))
	is.Equal(bar(0, 0.066), "")
}

func TestSubmitAndSolve(t *testing.T) {
	is := is.New(t)
	v := langtest.English(t).Primary()
	plain := langtest.Corpus(t)[:600]
	c, err := cipher.New("caesar", v, nil)
	is.NoErr(err)
	is.NoErr(c.SetKey(v, "R"))
	ct := cipher.EncryptText(c, v, plain)

	m := initialModel(v)
	m, cmd := m.submit(":solve caesar")
	is.True(cmd == nil)
	is.True(m.err != nil)

	m, cmd = m.submit(ct)
	is.True(cmd == nil)
	is.True(m.result != nil)

	m, cmd = m.submit(":solve caesar")
	is.True(m.solving)
	msg := cmd()
	next, _ := m.Update(msg)
	m = next.(model)
	is.True(!m.solving)
	is.Equal(m.solution.key, "R")
	is.Equal(m.solution.plaintext, plain)
	is.True(strings.Contains(m.View(), "caesar key: R"))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	is.True(cmd != nil)
}
