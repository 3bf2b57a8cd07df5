// Command studio is a terminal front-end for the studio SDK: chat, image,
// video, speech, transcription, and live voice against the Gemini API.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/oriel-ai/studio"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagAPIKey  string
	flagModel   string
	flagBaseURL string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "studio",
	Short:         "Generative AI toolbox: chat, images, video, speech, and live voice",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagAPIKey, "api-key", "k", "", "API key (defaults to GEMINI_API_KEY, then GOOGLE_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "model override for the invoked capability")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "REST endpoint override")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(speechCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(modelsCmd)
}

// newClient assembles the SDK client from flags and the environment,
// prompting on the terminal as a last resort.
func newClient() (*studio.Client, error) {
	key := flagAPIKey
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		key = os.Getenv("GOOGLE_API_KEY")
	}
	if key == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "API key: ")
		entered, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("read api key: %w", err)
		}
		key = string(entered)
	}
	if key == "" {
		return nil, fmt.Errorf("no API key: set --api-key or GEMINI_API_KEY")
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []studio.ClientOption{
		studio.WithAPIKey(key),
		studio.WithLogger(logger),
	}
	if flagBaseURL != "" {
		opts = append(opts, studio.WithBaseURL(flagBaseURL))
	}
	return studio.NewClient(opts...), nil
}

// readAttachment loads a file as a typed attachment.
func readAttachment(path, mimeType string) (*studio.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &studio.Attachment{MIMEType: mimeType, Data: data}, nil
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		if studio.IsInvalidCredential(err) {
			fmt.Fprintln(os.Stderr, "error: the API key was rejected; set a valid key with --api-key or GEMINI_API_KEY")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
