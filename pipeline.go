package ebf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/MuhammadImtananWali/ebf/raster"
)

func (e *EBF) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if _, ok := raster.ProfileByExt(filepath.Ext(file)); !ok {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// invalid reports whether err means the file itself failed validation
// rather than being unreadable.
func invalid(err error) bool {
	switch ExitStatus(err) {
	case BadMagicNumber, BadDim, BadMalloc, BadData:
		return true
	}
	return false
}

func (e *EBF) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			g, err := e.DecodeFile(file)
			if err != nil {
				if invalid(err) {
					e.logger.Warn().Err(err).Str("file", file).Msg("skipping invalid file")
					continue
				}
				errc <- err
				return
			}

			if err := e.catalog.Add(file, g); err != nil {
				errc <- err
				return
			}

			sum, err := Checksum(g)
			if err != nil {
				errc <- err
				return
			}

			e.logger.Info().Str("file", file).Int("height", g.Height).Int("width", g.Width).Str("crc", sum).Msg("catalogued")

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan decodes every ebf, ebu and ebc file under path and records it in the
// catalog. Files that fail validation are logged and skipped.
func (e *EBF) Scan(ctx context.Context, path string) error {
	if e.catalog == nil {
		return errNoCatalog
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := e.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := e.config.Workers
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		errc, err := e.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return err
	}

	n, err := e.catalog.Len()
	if err != nil {
		return err
	}
	e.logger.Info().Str("dir", dir).Int("files", n).Msg("scan complete")

	return nil
}

// Find decodes file using the profile matching its extension and returns
// the catalogued files holding an identical grid.
func (e *EBF) Find(file string) ([]string, error) {
	if e.catalog == nil {
		return nil, errNoCatalog
	}

	g, err := e.DecodeFile(file)
	if err != nil {
		return nil, err
	}
	return e.catalog.FindIdentical(g)
}
