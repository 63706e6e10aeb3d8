package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
)

// watch validates the source file once and then again on every write until ctx is done or an interrupt arrives.
// A rejected source doesn't stop watching.
func watch(ctx context.Context, w io.Writer, srcPath string, opts *validateOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srcPath, err := filepath.Abs(srcPath)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("Cannot watch the source file: %w", err)
	}
	defer watcher.Close()

	// Editors often replace a file instead of writing it in place, so the directory is watched rather than the file.
	err = watcher.Add(filepath.Dir(srcPath))
	if err != nil {
		return fmt.Errorf("Cannot watch the source file: %w", err)
	}

	revalidate := func() error {
		err := validate(w, srcPath, opts)
		if err != nil && !errors.Is(err, errRejected) {
			return err
		}
		return nil
	}

	err = revalidate()
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSourceUpdate(ev, srcPath) {
				continue
			}
			err := revalidate()
			if err != nil {
				// The file may be momentarily missing while an editor replaces it.
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("Failed to watch the source file: %w", err)
		}
	}
}

func isSourceUpdate(ev fsnotify.Event, srcPath string) bool {
	if filepath.Clean(ev.Name) != srcPath {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
