package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/cf-readme/internal/config"
	"github.com/pfrederiksen/cf-readme/internal/logger"
	"github.com/pfrederiksen/cf-readme/internal/readme"
	"github.com/pfrederiksen/cf-readme/internal/storage"
	"github.com/spf13/cobra"
)

// outputName picks the file name for format. The default README.md follows
// the format's extension; an explicit name is used as given.
func outputName(name string, format readme.Format) string {
	if name == "" || name == storage.DefaultFileName {
		return strings.TrimSuffix(storage.DefaultFileName, ".md") + format.Extension()
	}
	return name
}

// writeOutput sends the rendered document to stdout or saves it.
func writeOutput(cmd *cobra.Command, cfg *config.Config, format readme.Format, doc string) error {
	if flagStdout {
		_, err := io.WriteString(cmd.OutOrStdout(), doc)
		return err
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	path, err := store.Save(outputName(cfg.Output, format), []byte(doc), cfg.Overwrite)
	if err != nil {
		return fmt.Errorf("saving README: %w", err)
	}

	logger.Info("Saved README", logger.Fields{
		"path":  path,
		"bytes": len(doc),
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
