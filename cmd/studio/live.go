package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oriel-ai/studio"
	"github.com/oriel-ai/studio/pkg/device"
	"github.com/oriel-ai/studio/pkg/live"
	"github.com/spf13/cobra"
)

var (
	liveSystem string
	liveVoice  string
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Open a live voice conversation (Ctrl-C to hang up)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		speaker, err := device.OpenSpeaker(live.DefaultPlaybackRate)
		if err != nil {
			return err
		}

		session, err := client.Live.Connect(cmd.Context(), &studio.LiveRequest{
			System: liveSystem,
			Voice:  liveVoice,
			Model:  flagModel,
			OpenSource: func() (live.Source, error) {
				return device.OpenMicrophone(live.DefaultCaptureRate)
			},
			Sink: speaker,
		})
		if err != nil {
			var micErr *live.MicrophoneError
			if errors.As(err, &micErr) {
				_ = speaker.Close()
				return fmt.Errorf("microphone unavailable: %w", micErr.Err)
			}
			return err
		}
		defer session.Close()

		fmt.Fprintln(os.Stderr, "live session open, speak now (Ctrl-C to hang up)")

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		for {
			select {
			case <-interrupt:
				return session.Close()
			case ev, ok := <-session.Events():
				if !ok {
					return nil
				}
				switch ev.Type {
				case live.EventMessage:
					fmt.Fprintf(os.Stderr, "-- %s\n", ev.Message)
				case live.EventError:
					fmt.Fprintf(os.Stderr, "!! %v\n", ev.Err)
				case live.EventClosed:
					return nil
				}
			}
		}
	},
}

func init() {
	liveCmd.Flags().StringVarP(&liveSystem, "system", "s", "", "system instruction")
	liveCmd.Flags().StringVar(&liveVoice, "voice", "", "prebuilt voice name")
}
