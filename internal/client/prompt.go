package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// termPrompter reads from a terminal without echo, or line by line from a
// pipe so the CLI can be scripted.
type termPrompter struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
}

func newTermPrompter(in *os.File, out io.Writer) *termPrompter {
	return &termPrompter{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *termPrompter) Secret(label string) (string, error) {
	fmt.Fprint(p.out, label)

	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		return p.readLine()
	}

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(b), nil
}

func (p *termPrompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.readLine()
}

func (p *termPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
