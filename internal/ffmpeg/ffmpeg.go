// Package ffmpeg locates and drives the external ffmpeg/ffprobe binaries
// used for video decode, encode and audio remux.
package ffmpeg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNotFound reports that a required binary is missing from PATH.
var ErrNotFound = errors.New("ffmpeg: binary not found in PATH")

// defaultFPS is assumed when the container reports no frame rate.
const defaultFPS = 25.0

// LookFFmpeg returns the ffmpeg binary path.
func LookFFmpeg() (string, error) {
	p, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("%w: ffmpeg", ErrNotFound)
	}
	return p, nil
}

// LookFFprobe returns the ffprobe binary path.
func LookFFprobe() (string, error) {
	p, err := exec.LookPath("ffprobe")
	if err != nil {
		return "", fmt.Errorf("%w: ffprobe", ErrNotFound)
	}
	return p, nil
}

// Info describes the first video stream of a media file.
type Info struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	Duration   float64
	HasAudio   bool
}

// probeOutput mirrors the ffprobe JSON fields we consume.
type probeOutput struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe inspects a media file with ffprobe.
func Probe(path string) (Info, error) {
	probe, err := LookFFprobe()
	if err != nil {
		return Info{}, err
	}

	cmd := exec.Command(probe, //nolint:gosec // args are fixed, path is user input by design
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path)
	out, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffmpeg: probe %s: %w", path, err)
	}

	var po probeOutput
	if err := json.Unmarshal(out, &po); err != nil {
		return Info{}, fmt.Errorf("ffmpeg: parse probe output: %w", err)
	}

	var info Info
	info.Duration = parseFloat(po.Format.Duration)

	for _, s := range po.Streams {
		switch s.CodecType {
		case "audio":
			info.HasAudio = true
		case "video":
			if info.Width != 0 {
				continue // first video stream wins
			}
			info.Width = s.Width
			info.Height = s.Height
			info.FPS = parseRate(s.AvgFrameRate)
			if info.FPS <= 0 {
				info.FPS = parseRate(s.RFrameRate)
			}
			if info.FPS <= 0 {
				info.FPS = defaultFPS
			}
			info.FrameCount, _ = strconv.Atoi(s.NbFrames)
			if d := parseFloat(s.Duration); d > 0 && info.Duration <= 0 {
				info.Duration = d
			}
		}
	}

	if info.Width == 0 || info.Height == 0 {
		return Info{}, fmt.Errorf("ffmpeg: no video stream in %s", path)
	}
	if info.FrameCount <= 0 && info.Duration > 0 {
		// Containers like webm omit nb_frames; estimate from duration.
		info.FrameCount = int(info.Duration * info.FPS)
	}
	return info, nil
}

// parseRate parses an ffprobe rational like "30000/1001".
func parseRate(s string) float64 {
	if s == "" || s == "0/0" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FrameReader streams raw RGB24 frames from a decoding ffmpeg process.
// Frames arrive strictly in presentation order starting at the frame the
// reader was opened at; random access means opening a new reader.
type FrameReader struct {
	cmd  *exec.Cmd
	out  io.ReadCloser
	buf  []byte
	done bool
}

// OpenReader starts an ffmpeg decode at startFrame (converted to a seek
// time with fps) producing width x height RGB24 frames on its stdout.
func OpenReader(path string, startFrame int, fps float64, width, height int) (*FrameReader, error) {
	bin, err := LookFFmpeg()
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = defaultFPS
	}

	args := []string{"-v", "error"}
	if startFrame > 0 {
		args = append(args, "-ss", formatSeconds(float64(startFrame)/fps))
	}
	args = append(args,
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-vsync", "0",
		"pipe:1")

	cmd := exec.Command(bin, args...) //nolint:gosec // fixed args, user path by design
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg: start decoder: %w", err)
	}

	return &FrameReader{
		cmd: cmd,
		out: out,
		buf: make([]byte, width*height*3),
	}, nil
}

// Next reads the next frame. The returned buffer is reused on the
// following call; callers must copy what they keep.
func (r *FrameReader) Next() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}
	if _, err := io.ReadFull(r.out, r.buf); err != nil {
		r.done = true
		return nil, err
	}
	return r.buf, nil
}

// Close terminates the decoding process.
func (r *FrameReader) Close() error {
	if r.cmd == nil {
		return nil
	}
	_ = r.out.Close()
	if r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
	}
	err := r.cmd.Wait()
	r.cmd = nil
	return err
}

// FrameWriter feeds raw RGB24 frames into an encoding ffmpeg process.
type FrameWriter struct {
	cmd *exec.Cmd
	in  io.WriteCloser
}

// OpenWriter starts an x264 encode of width x height RGB24 frames read
// from stdin into the output file.
func OpenWriter(out string, width, height int, fps float64, crf int, preset string) (*FrameWriter, error) {
	bin, err := LookFFmpeg()
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = defaultFPS
	}
	if preset == "" {
		preset = "veryfast"
	}

	cmd := exec.Command(bin, //nolint:gosec // fixed args, user path by design
		"-y", "-v", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", formatSeconds(fps),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", preset,
		"-crf", strconv.Itoa(crf),
		"-pix_fmt", "yuv420p",
		out)
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg: start encoder: %w", err)
	}
	return &FrameWriter{cmd: cmd, in: in}, nil
}

// WriteFrame sends one raw frame to the encoder.
func (w *FrameWriter) WriteFrame(data []byte) error {
	_, err := w.in.Write(data)
	return err
}

// Close finishes the stream and waits for the encoder to exit.
func (w *FrameWriter) Close() error {
	if err := w.in.Close(); err != nil {
		_ = w.cmd.Wait()
		return err
	}
	return w.cmd.Wait()
}

// Abort kills the encoder without flushing; used on cancellation.
func (w *FrameWriter) Abort() {
	_ = w.in.Close()
	if w.cmd.Process != nil {
		_ = w.cmd.Process.Kill()
	}
	_ = w.cmd.Wait()
}

// MuxAudio copies the video stream of videoOnly and re-encodes the audio
// of source (offset by startSeconds) into out.
func MuxAudio(videoOnly, source, out string, startSeconds float64) error {
	bin, err := LookFFmpeg()
	if err != nil {
		return err
	}

	args := []string{"-y", "-v", "error", "-i", videoOnly}
	if startSeconds > 0 {
		args = append(args, "-ss", formatSeconds(startSeconds))
	}
	args = append(args,
		"-i", source,
		"-map", "0:v:0",
		"-map", "1:a:0?",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		out)

	cmd := exec.Command(bin, args...) //nolint:gosec // fixed args, user paths by design
	if outBytes, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg: audio mux: %w: %s", err, strings.TrimSpace(string(outBytes)))
	}
	return nil
}

// formatSeconds renders a float without exponent notation for ffmpeg.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
