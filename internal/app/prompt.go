package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Prompter reads answers from the user. Secrets are read without echo when
// stdin is a terminal and as a plain line otherwise, so scripts can pipe them in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewPrompter reads from stdin and writes prompts to out.
func NewPrompter(out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(os.Stdin), out: out, fd: int(os.Stdin.Fd())}
}

// Line prints prompt and reads one trimmed line. A final line without a newline is accepted.
func (p *Prompter) Line(prompt string) (string, error) {
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Secret prints prompt and reads a value without echoing it.
func (p *Prompter) Secret(prompt string) (string, error) {
	if !isTerminal(p.fd) {
		return p.Line(prompt)
	}
	if _, err := fmt.Fprint(p.out, prompt+": "); err != nil {
		return "", err
	}
	secret, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// Passphrase returns the key passphrase from COOKBOOK_PASSPHRASE, prompting when it is unset.
func (p *Prompter) Passphrase() (string, error) {
	if v := os.Getenv(EnvPassphrase); v != "" {
		return v, nil
	}
	return p.Secret("Passphrase")
}

// NewPassphrase asks for a new passphrase twice and checks both entries match.
func (p *Prompter) NewPassphrase() (string, error) {
	if v := os.Getenv(EnvPassphrase); v != "" {
		return v, nil
	}
	first, err := p.Secret("New passphrase")
	if err != nil {
		return "", err
	}
	second, err := p.Secret("Repeat passphrase")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", fmt.Errorf("passphrases do not match")
	}
	return first, nil
}
