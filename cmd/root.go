/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/BYT0723/opuscover/utils/log"
	"github.com/BYT0723/opuscover/utils/song"
	"github.com/spf13/cobra"
)

var silent bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opuscover <audio-file> <cover.jpg>",
	Short: "replace the embedded cover art of an Ogg/Opus file",
	Long: `Replace the embedded cover art of an Ogg/Opus file with a JPEG image.

Every existing METADATA_BLOCK_PICTURE field is removed and the image is
embedded as the single front cover. The audio file is rewritten in place.
FLAC and MP3 files are handled the same way.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := song.ReplaceCover(args[0], args[1]); err != nil {
			return err
		}
		if !silent {
			log.Infof("%s cover replaced\n", args[0])
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("[Error] %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&silent, "silent", "s", false, "do not report success")
}
