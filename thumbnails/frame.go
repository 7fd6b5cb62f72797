package thumbnails

import (
	"fmt"
	"os/exec"

	"gebo/config"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFmpegAvailable reports whether an ffmpeg binary is on PATH
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// ExtractFrame writes a single JPEG frame taken offsetSeconds into videoPath
func ExtractFrame(videoPath, outputPath string, offsetSeconds float64) error {
	err := ffmpeg.Input(videoPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.2f", offsetSeconds)}).
		Output(outputPath, ffmpeg.KwArgs{
			"vframes": 1,
			"vf":      fmt.Sprintf("scale=%d:-2", config.ThumbnailWidth),
			"q:v":     2,
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg frame grab failed: %w", err)
	}
	return nil
}
