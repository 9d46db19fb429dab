// Package convert implements the CLI actions around the fdx core.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fdc/fdx"
	"fdc/state"
	"fdc/store"
)

// Run converts a single FDX file into the internal document and optionally
// persists it to the document store.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	storePath := env.Cfg.Storage.Path
	if flagPath := cmd.String("store"); len(flagPath) > 0 {
		storePath = flagPath
	}

	log.Info("Processing starting", zap.String("source", src))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	result, err := parseFile(src, log)
	if err != nil {
		return err
	}
	doc := fdx.BuildDocument(result)

	log.Info("Document assembled",
		zap.String("title", doc.Title),
		zap.Int("elements", len(doc.Elements)),
		zap.Int("scenes", result.SceneCount),
		zap.Int("pages", result.PageCount))

	if len(storePath) == 0 {
		log.Debug("No document store configured, skipping persistence")
		return nil
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

	key, err := s.Save(&doc)
	if err != nil {
		return err
	}
	log.Info("Document stored", zap.String("key", key), zap.String("store", storePath))
	return nil
}

func parseFile(path string, log *zap.Logger) (*fdx.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", path, err)
	}
	result, err := fdx.Convert(data, log)
	if err != nil {
		return nil, fmt.Errorf("unable to convert %q: %w", path, err)
	}
	return result, nil
}
