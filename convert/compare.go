package convert

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fdc/fdx"
	"fdc/state"
)

// Compare diffs two FDX files and reports scene changes.
func Compare(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("compare")

	if cmd.Args().Len() < 2 {
		return errors.New("compare needs an original and a revised file")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, extra arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	original, err := parseFile(cmd.Args().Get(0), log)
	if err != nil {
		return err
	}
	revised, err := parseFile(cmd.Args().Get(1), log)
	if err != nil {
		return err
	}

	cs := fdx.Compare(original, revised)
	fmt.Fprintf(os.Stdout, "%d added / %d modified / %d removed\n", cs.Added(), cs.Modified(), cs.Removed())
	for _, h := range cs.AddedHeadings {
		fmt.Fprintf(os.Stdout, "  + %s\n", h)
	}
	for _, h := range cs.RemovedHeadings {
		fmt.Fprintf(os.Stdout, "  - %s\n", h)
	}
	return nil
}
