package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/imamik/blueprintctl/internal/config"
	"github.com/imamik/blueprintctl/internal/ui/prompt"
)

var confirm = prompt.Confirm

// ConfigInit writes a default configuration file. An existing file is
// only replaced with force, or after confirmation on a terminal.
func ConfigInit(ctx context.Context, out io.Writer, path string, force bool) error {
	if path == "" {
		path = config.DefaultPath()
		if path == "" {
			return errors.New("cannot resolve home directory, pass --config")
		}
	}

	err := config.WriteDefault(path, force)
	if errors.Is(err, config.ErrConfigExists) && isInteractiveTTY() {
		ok, cerr := confirm(ctx, fmt.Sprintf("%s exists. Overwrite?", path))
		if cerr != nil {
			return cerr
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Left existing configuration untouched")
			return nil
		}
		err = config.WriteDefault(path, true)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Wrote default configuration to %s\n", path)
	return nil
}
