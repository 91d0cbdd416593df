package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrReported is returned by an executor that already printed the
// failure. The shell moves on without printing anything.
var ErrReported = errors.New("failure already reported")

// Executor runs one parsed command line.
type Executor func(ctx context.Context, args []string) error

// Shell is a read-eval-print loop.
type Shell struct {
	in     io.Reader
	out    io.Writer
	prompt func() string
	exec   Executor
}

// New creates a shell reading lines from in and writing prompts and
// errors to out. prompt is evaluated before every line.
func New(in io.Reader, out io.Writer, prompt func() string, exec Executor) *Shell {
	return &Shell{in: in, out: out, prompt: prompt, exec: exec}
}

// Run loops until "exit", "quit", end of input or ctx is done. Errors of
// individual commands are printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(s.out, "%s ", s.prompt())
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := Split(line)
		if err != nil {
			_, _ = fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return nil
		}

		if err := s.exec(ctx, args); err != nil {
			if errors.Is(err, ErrReported) {
				continue
			}
			var unavailable *UnavailableError
			if errors.As(err, &unavailable) {
				_, _ = fmt.Fprintln(s.out, unavailable.Error())
				continue
			}
			_, _ = fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}
