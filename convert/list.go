package convert

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"fdc/state"
	"fdc/store"
)

// List prints the contents of the document store.
func List(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("list")

	storePath := env.Cfg.Storage.Path
	if flagPath := cmd.String("store"); len(flagPath) > 0 {
		storePath = flagPath
	}
	if len(storePath) == 0 {
		return errors.New("no document store has been configured")
	}

	s, err := store.Open(storePath, log)
	if err != nil {
		return err
	}
	defer func() {
		if er := s.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close document store: %w", er))
		}
	}()

	entries, err := s.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "store is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(os.Stdout, e.Describe())
	}
	return nil
}
