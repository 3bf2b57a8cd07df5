package main

import (
	"fmt"
	"os"

	"github.com/oriel-ai/studio"
	"github.com/spf13/cobra"
)

var (
	imageOut    string
	imageAspect string
	imageInput  string
	imageMIME   string
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Generate, edit, or analyze images",
}

var imageGenerateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate an image from a prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		img, err := client.Images.Generate(cmd.Context(), &studio.GenerateImageRequest{
			Prompt:      args[0],
			AspectRatio: imageAspect,
			Model:       flagModel,
		})
		if err != nil {
			return err
		}
		return writeImage(img)
	},
}

var imageEditCmd = &cobra.Command{
	Use:   "edit [prompt]",
	Short: "Edit the input image per the prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		att, err := readAttachment(imageInput, imageMIME)
		if err != nil {
			return err
		}
		img, err := client.Images.Edit(cmd.Context(), &studio.EditImageRequest{
			Prompt:     args[0],
			Attachment: att,
			Model:      flagModel,
		})
		if err != nil {
			return err
		}
		return writeImage(img)
	},
}

var imageAnalyzeCmd = &cobra.Command{
	Use:   "analyze [prompt]",
	Short: "Describe the input image or video per the prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		att, err := readAttachment(imageInput, imageMIME)
		if err != nil {
			return err
		}
		text, err := client.Images.Analyze(cmd.Context(), &studio.AnalyzeRequest{
			Prompt:     args[0],
			Attachment: att,
			Model:      flagModel,
		})
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

func writeImage(img *studio.Image) error {
	if err := os.WriteFile(imageOut, img.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%s, %d bytes)\n", imageOut, img.MIMEType, len(img.Data))
	return nil
}

func init() {
	imageCmd.PersistentFlags().StringVarP(&imageOut, "out", "o", "out.png", "output file")
	imageCmd.PersistentFlags().StringVarP(&imageInput, "input", "i", "", "input media file (edit, analyze)")
	imageCmd.PersistentFlags().StringVar(&imageMIME, "input-mime", "image/png", "MIME type of the input file")
	imageGenerateCmd.Flags().StringVar(&imageAspect, "aspect", "", `aspect ratio, e.g. "1:1" or "16:9"`)

	imageCmd.AddCommand(imageGenerateCmd)
	imageCmd.AddCommand(imageEditCmd)
	imageCmd.AddCommand(imageAnalyzeCmd)
}
