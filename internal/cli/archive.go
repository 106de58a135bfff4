package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BayAreaMetro/tm2kit/internal/infra/archiver"
	"github.com/BayAreaMetro/tm2kit/internal/infra/logger"
	"github.com/BayAreaMetro/tm2kit/internal/infra/manifest"
	"github.com/BayAreaMetro/tm2kit/internal/usecase"
)

func archiveCmd(debug *bool) *cobra.Command {
	var name string
	var exe string
	var dirs []string

	c := &cobra.Command{
		Use:   "archive <model_directory> <archive_directory>",
		Short: "Bundle a model run into a compressed archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelDir, archiveDir := args[0], args[1]
			defer setupLogging(modelDir, *debug)()

			store := manifest.NewJSONStore(archiveDir, manifest.WithIndex(true))
			uc := usecase.NewArchiveRun(
				archiver.New(archiver.WithExecutable(exe)),
				store,
			)

			m, err := uc.Execute(cmd.Context(), usecase.ArchiveInput{
				ModelDir:   modelDir,
				ArchiveDir: archiveDir,
				Name:       name,
				Dirs:       dirs,
			})
			if err != nil {
				return err
			}

			logger.L().Info("archive.done", "archive", m.Archive, "entries", len(m.Entries))
			fmt.Printf("Archive: %s\n", m.Archive)
			for _, e := range m.Entries {
				fmt.Printf("- %s (%d bytes)\n", e.Path, e.Bytes)
			}
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "Archive name (default: model directory base name)")
	c.Flags().StringVar(&exe, "compressor", "7za", "Compressor executable")
	c.Flags().StringSliceVar(&dirs, "dirs", nil, "Run subdirectories to archive (default: standard set)")
	return c
}
