package convert

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"fdc/state"
)

// Dump prints the parse result tree of an FDX file for troubleshooting.
func Dump(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}

	result, err := parseFile(src, log)
	if err != nil {
		return err
	}

	out := os.Stdout
	if dst := cmd.Args().Get(1); len(dst) > 0 {
		if out, err = os.Create(dst); err != nil {
			return fmt.Errorf("unable to create destination file %q: %w", dst, err)
		}
		defer out.Close()
		log.Info("Writing parse tree", zap.String("file", dst))
	}

	if _, err := fmt.Fprint(out, result.String()); err != nil {
		return fmt.Errorf("unable to write parse tree: %w", err)
	}
	return nil
}
