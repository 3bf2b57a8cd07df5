package main

import (
	"fmt"
	"os"

	"github.com/oriel-ai/studio"
	"github.com/spf13/cobra"
)

var (
	speechOut   string
	speechVoice string
)

var speechCmd = &cobra.Command{
	Use:   "speech [text]",
	Short: "Synthesize speech to a WAV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.Speech.Synthesize(cmd.Context(), &studio.SpeechRequest{
			Text:  args[0],
			Voice: speechVoice,
			Model: flagModel,
		})
		if err != nil {
			return err
		}
		if err := os.WriteFile(speechOut, result.WAV, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes, %d Hz)\n", speechOut, len(result.WAV), result.SampleRate)
		return nil
	},
}

func init() {
	speechCmd.Flags().StringVarP(&speechOut, "out", "o", "speech.wav", "output WAV file")
	speechCmd.Flags().StringVar(&speechVoice, "voice", "", "prebuilt voice name")
}
