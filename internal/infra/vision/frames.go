package vision

import (
	"bufio"
	"context"
	"image"
	"io"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// frameWidth/frameHeight match the model's input size so decoded frames go
// straight into inference without resizing.
const (
	frameWidth  = InputSize
	frameHeight = InputSize
	bytesPerPx  = 4 // RGBA
)

// ExtractThumbnail writes the first readable frame of a video as a JPEG.
// Any ffmpeg failure, including non-video input, surfaces as an error for
// the caller to decide on.
func ExtractThumbnail(ctx context.Context, ffmpegPath, videoPath, outPath string) error {
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y",
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		outPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "extract thumbnail: %s", truncate(out))
	}

	return nil
}

// Frames decodes a video into raw RGBA frames scaled to the model input size
// and invokes fn per frame. Iteration stops at the first fn error or at end
// of stream.
func Frames(ctx context.Context, ffmpegPath, videoPath string, fn func(image.Image) error) error {
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", videoPath,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-vf", "scale="+strconv.Itoa(frameWidth)+":"+strconv.Itoa(frameHeight),
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "start ffmpeg")
	}

	frameSize := frameWidth * frameHeight * bytesPerPx
	reader := bufio.NewReaderSize(stdout, frameSize)

	var fnErr error
	for {
		buf := make([]byte, frameSize)
		if _, err := io.ReadFull(reader, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			fnErr = errors.Wrap(err, "read frame")

			break
		}

		frame := &image.RGBA{
			Pix:    buf,
			Stride: frameWidth * bytesPerPx,
			Rect:   image.Rect(0, 0, frameWidth, frameHeight),
		}

		if err := fn(frame); err != nil {
			fnErr = err

			break
		}
	}

	if fnErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()

		return fnErr
	}

	if err := cmd.Wait(); err != nil {
		return errors.Wrap(err, "ffmpeg exited")
	}

	return nil
}

func truncate(out []byte) string {
	const maxLen = 512
	if len(out) > maxLen {
		out = out[len(out)-maxLen:]
	}

	return string(out)
}
