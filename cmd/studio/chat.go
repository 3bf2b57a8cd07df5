package main

import (
	"fmt"
	"io"
	"os"

	"github.com/oriel-ai/studio"
	"github.com/spf13/cobra"
)

var (
	chatSystem     string
	chatSearch     bool
	chatMaps       bool
	chatAttachPath string
	chatAttachMIME string
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Stream a chat answer, optionally grounded in search or maps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		req := &studio.ChatRequest{
			Prompt: args[0],
			System: chatSystem,
			Model:  flagModel,
		}
		switch {
		case chatSearch:
			req.Grounding = studio.GroundingSearch
		case chatMaps:
			req.Grounding = studio.GroundingMaps
		}
		if chatAttachPath != "" {
			att, err := readAttachment(chatAttachPath, chatAttachMIME)
			if err != nil {
				return err
			}
			req.Attachment = att
		}

		stream, err := client.Chat.Stream(cmd.Context(), req)
		if err != nil {
			return err
		}
		defer stream.Close()

		var citations []studio.Citation
		for {
			chunk, err := stream.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			fmt.Print(chunk.Text)
			citations = append(citations, chunk.Citations...)
		}
		fmt.Println()

		if len(citations) > 0 {
			fmt.Fprintln(os.Stderr, "\nSources:")
			for i, c := range citations {
				fmt.Fprintf(os.Stderr, "  [%d] %s — %s\n", i+1, c.Title, c.URI)
			}
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSystem, "system", "s", "", "system instruction")
	chatCmd.Flags().BoolVar(&chatSearch, "search", false, "ground the answer in web search")
	chatCmd.Flags().BoolVar(&chatMaps, "maps", false, "ground the answer in maps")
	chatCmd.Flags().StringVar(&chatAttachPath, "attach", "", "attach a media file to the prompt")
	chatCmd.Flags().StringVar(&chatAttachMIME, "attach-mime", "image/png", "MIME type of the attached file")
}
