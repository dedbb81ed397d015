package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type answer int

const (
	answerNo answer = iota
	answerYes
	answerAll
	answerQuit
)

// prompter asks the per-project clean question.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask repeats the question until it gets a valid answer. An empty answer
// means no; end of input means quit.
func (p *prompter) ask(question string) answer {
	for {
		fmt.Fprintf(p.out, "  %s? ([y]es, [n]o, [a]ll, [q]uit): ", question)
		line, err := p.in.ReadString('\n')

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return answerYes
		case "n", "no":
			return answerNo
		case "a", "all":
			return answerAll
		case "q", "quit":
			return answerQuit
		case "":
			if err == nil {
				return answerNo
			}
		}

		if err != nil {
			fmt.Fprintln(p.out)
			return answerQuit
		}
		fmt.Fprintln(p.out, "  please answer y, n, a or q")
	}
}
