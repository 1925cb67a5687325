package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/namsral/flag"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/classic_crypto/internal/cipher"
	"github.com/domino14/classic_crypto/internal/lang"
	"github.com/domino14/classic_crypto/internal/modelstore"
)

const maxPeriod = 20

type analysis struct {
	letters      int
	ioc          float64
	chi          float64
	periodic     []float64
	likelyPeriod int
}

func analyse(v *lang.Variant, text string) (*analysis, error) {
	cps := v.CodePoints(text)
	ioc, err := lang.IndexOfCoincidence(cps)
	if err != nil {
		return nil, err
	}
	chi, err := v.ChiSquared(cps)
	if err != nil {
		return nil, err
	}
	return &analysis{
		letters:      len(cps),
		ioc:          ioc,
		chi:          chi,
		periodic:     lang.PeriodicIOCs(cps, maxPeriod),
		likelyPeriod: v.LikelyPeriod(cps, maxPeriod),
	}, nil
}

// bar draws ioc as a row of #s scaled so the expected value is 30 wide.
func bar(ioc, expected float64) string {
	n := int(30 * ioc / expected)
	n = max(0, min(n, 45))
	return strings.Repeat("#", n)
}

func (a *analysis) View(v *lang.Variant) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "letters %d   ioc %.4f (expected %.4f)   chi² %.1f\n\n",
		a.letters, a.ioc, v.ExpectedIOC(), a.chi)
	for i, pioc := range a.periodic {
		marker := " "
		if i+1 == a.likelyPeriod {
			marker = "*"
		}
		fmt.Fprintf(&sb, "%s %2d  %.4f  %s\n", marker, i+1, pioc, bar(pioc, v.ExpectedIOC()))
	}
	return sb.String()
}

type solved struct {
	cipher    string
	key       string
	plaintext string
}

type solveErr struct{ err error }

type model struct {
	textInput textinput.Model
	variant   *lang.Variant
	text      string
	result    *analysis
	solution  *solved
	solving   bool
	err       error
}

func initialModel(v *lang.Variant) model {
	ti := textinput.New()
	ti.Placeholder = "Paste ciphertext, or :solve <cipher>"
	ti.Focus()
	ti.CharLimit = 10000
	ti.Width = 60

	return model{textInput: ti, variant: v}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func solveCmd(v *lang.Variant, name, text string) tea.Cmd {
	return func() tea.Msg {
		c, err := cipher.New(name, v, nil)
		if err != nil {
			return solveErr{err}
		}
		cps := v.CodePoints(text)
		if len(cps) == 0 {
			return solveErr{fmt.Errorf("nothing to solve")}
		}
		c.Solve(v, cps)
		return solved{cipher: name, key: c.Key(v), plaintext: cipher.DecryptText(c, v, text)}
	}
}

func (m model) submit(input string) (model, tea.Cmd) {
	if name, ok := strings.CutPrefix(input, ":solve "); ok {
		if m.text == "" {
			m.err = fmt.Errorf("enter some ciphertext first")
			return m, nil
		}
		m.solving = true
		m.solution = nil
		return m, solveCmd(m.variant, strings.TrimSpace(name), m.text)
	}
	res, err := analyse(m.variant, input)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.text = input
	m.result = res
	m.solution = nil
	return m, nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.solving {
				return m, nil
			}
			m.err = nil
			m, cmd = m.submit(m.textInput.Value())
			m.textInput.Reset()
			return m, cmd
		}

	case solved:
		m.solving = false
		m.solution = &msg

	case solveErr:
		m.solving = false
		m.err = msg.err
	}
	m.textInput, cmd = m.textInput.Update(msg)

	return m, cmd
}

func (m model) View() string {
	var body string
	switch {
	case m.result == nil:
		body = "No text analysed yet."
	default:
		body = m.result.View(m.variant)
	}
	if m.solving {
		body += "\nsolving..."
	}
	if m.solution != nil {
		body += fmt.Sprintf("\n%s key: %s\n\n%s\n", m.solution.cipher, m.solution.key, m.solution.plaintext)
	}
	if m.err != nil {
		body += "\nerror: " + m.err.Error()
	}
	return fmt.Sprintf("%s\n\n%s\n%s\n", body, strings.Repeat("-", 25), m.textInput.View())
}

func main() {
	fs := flag.NewFlagSet("analysetui", flag.ExitOnError)
	dataPath := fs.String("data-path", os.Getenv("CC_DATA_PATH"), "directory holding trained model files")
	language := fs.String("model", "english", "language model to use")
	alphabetLen := fs.Int("alphabet-len", 0, "alphabet variant; 0 is the language's primary alphabet")
	fs.Parse(os.Args[1:])

	// The terminal belongs to the UI; only report problems.
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	l, err := (&modelstore.Dir{Path: *dataPath}).Language(context.Background(), *language)
	if err != nil {
		log.Fatal().Err(err).Msg("loading-model")
	}
	v := l.Primary()
	if *alphabetLen != 0 {
		if v, err = l.Variant(*alphabetLen); err != nil {
			log.Fatal().Err(err).Msg("loading-variant")
		}
	}

	p := tea.NewProgram(initialModel(v))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
