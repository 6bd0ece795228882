package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"alfredoptarigan/prepio/internal/models"
	"alfredoptarigan/prepio/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "interview",
	Short:         "Practice a mock interview built from your résumé",
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug logs")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(extractCmd)
}

// loadDocument reads a local file and declares its media type from the
// extension. Unsupported extensions fail before anything is sent.
func loadDocument(path string) (*models.UploadedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	mediaType := models.MediaTypeFromFilename(path)
	if !mediaType.IsSupported() {
		return nil, &services.UnsupportedMediaTypeError{MediaType: mediaType}
	}

	return &models.UploadedDocument{
		Filename:  path,
		Data:      data,
		MediaType: mediaType,
	}, nil
}
