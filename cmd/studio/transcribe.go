package main

import (
	"fmt"

	"github.com/oriel-ai/studio"
	"github.com/spf13/cobra"
)

var transcribeMIME string

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [audio-file]",
	Short: "Transcribe an audio file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		att, err := readAttachment(args[0], transcribeMIME)
		if err != nil {
			return err
		}
		text, err := client.Transcription.Transcribe(cmd.Context(), &studio.TranscribeRequest{
			Audio: att,
			Model: flagModel,
		})
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().StringVar(&transcribeMIME, "mime", "audio/wav", "MIME type of the audio file")
}
