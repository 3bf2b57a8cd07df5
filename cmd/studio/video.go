package main

import (
	"fmt"
	"os"

	"github.com/oriel-ai/studio"
	"github.com/spf13/cobra"
)

var (
	videoAspect   string
	videoNegative string
	videoImage    string
	videoMIME     string
)

var videoCmd = &cobra.Command{
	Use:   "video [prompt]",
	Short: "Generate a video, polling until the job finishes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		req := &studio.VideoRequest{
			Prompt:         args[0],
			AspectRatio:    videoAspect,
			NegativePrompt: videoNegative,
			Model:          flagModel,
		}
		if videoImage != "" {
			att, err := readAttachment(videoImage, videoMIME)
			if err != nil {
				return err
			}
			req.Image = att
		}

		job, err := client.Videos.Generate(cmd.Context(), req)
		if err != nil {
			return err
		}

		for {
			p, ok := job.Next(cmd.Context())
			if !ok {
				return nil
			}
			if p.Err != nil {
				return p.Err
			}
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", p.Progress, p.Message)
			if p.Terminal() {
				fmt.Println(p.ResultURI)
			}
		}
	},
}

func init() {
	videoCmd.Flags().StringVar(&videoAspect, "aspect", "", `aspect ratio, e.g. "16:9"`)
	videoCmd.Flags().StringVar(&videoNegative, "negative", "", "negative prompt")
	videoCmd.Flags().StringVar(&videoImage, "image", "", "seed image file")
	videoCmd.Flags().StringVar(&videoMIME, "image-mime", "image/png", "MIME type of the seed image")
}
