// Command bubbled exports annotated scenes described in a TOML file to
// photo or video output.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/inklet/bubble"
	"github.com/inklet/bubble/export"
	"github.com/inklet/bubble/internal/ffmpeg"
	"github.com/inklet/bubble/media"
)

func main() {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "bubbled",
		Short: "Speech-bubble scene exporter",
		Long: `bubbled renders speech-bubble annotations described in a TOML scene
file onto photos and videos.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level: level,
			}))
			bubble.SetLogger(logger)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(exportCmd(), probeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func exportCmd() *cobra.Command {
	var (
		crf    int
		preset string
	)

	cmd := &cobra.Command{
		Use:   "export <scene.toml> <output>",
		Short: "Render a scene file to an image or video",
		Example: `  # Photo export, format chosen by extension
  bubbled export scene.toml out.png

  # Video export with tighter compression
  bubbled export scene.toml out.mp4 --crf 23`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadSceneConfig(args[0])
			if err != nil {
				return err
			}
			scene, err := BuildScene(cfg)
			if err != nil {
				return err
			}
			defer scene.Release()

			output := args[1]
			if media.IsVideoPath(output) {
				return exportVideo(scene, output, crf, preset)
			}
			if err := export.Photo(scene, output); err != nil {
				return err
			}
			fmt.Println(output)
			return nil
		},
	}
	cmd.Flags().IntVar(&crf, "crf", 18, "x264 quality (lower is better)")
	cmd.Flags().StringVar(&preset, "preset", "veryfast", "x264 speed preset")
	return cmd
}

func exportVideo(scene *bubble.Scene, output string, crf int, preset string) error {
	lastPct := -1
	err := export.Video(scene, output, export.VideoOptions{
		CRF:    crf,
		Preset: preset,
		Progress: func(done, total int) {
			pct := done * 100 / total
			if pct != lastPct {
				lastPct = pct
				fmt.Fprintf(os.Stderr, "\rexporting %3d%% (%d/%d frames)", pct, done, total)
			}
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		},
	})
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <media>",
		Short: "Print media stream information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			switch {
			case media.IsImagePath(path):
				src, err := media.OpenImage(path)
				if err != nil {
					return err
				}
				defer src.Release()
				w, h := src.Size()
				fmt.Printf("%s: image %dx%d\n", filepath.Base(path), w, h)
				return nil
			case media.IsVideoPath(path):
				info, err := ffmpeg.Probe(path)
				if err != nil {
					return err
				}
				audio := "no audio"
				if info.HasAudio {
					audio = "audio"
				}
				fmt.Printf("%s: video %dx%d, %.3f fps, %d frames, %.2fs, %s\n",
					filepath.Base(path), info.Width, info.Height,
					info.FPS, info.FrameCount, info.Duration, audio)
				return nil
			default:
				return fmt.Errorf("unsupported file type %q", strings.ToLower(filepath.Ext(path)))
			}
		},
	}
}
