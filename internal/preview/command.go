package preview

import (
	"bytes"
	"context"
	"fmt"
	"go-portfolio-backend/internal/domain"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const commandTimeout = 20 * time.Second

// Command renders a frame with an external tool. Args builds the argument list from
// the input path; the tool writes a PNG to stdout.
type Command struct {
	Path string
	Args func(input string) []string
	Ext  string
}

// PDFFirstPage renders page 1 at 72 dpi with poppler's pdftoppm.
func PDFFirstPage() *Command {
	return &Command{
		Path: "pdftoppm",
		Ext:  ".pdf",
		Args: func(input string) []string {
			return []string{"-f", "1", "-l", "1", "-r", "72", "-png", "-singlefile", input}
		},
	}
}

// VideoFrame grabs the frame at 0.1s, which avoids the black first frame of many encoders.
func VideoFrame() *Command {
	return &Command{
		Path: "ffmpeg",
		Ext:  ".mp4",
		Args: func(input string) []string {
			return []string{"-v", "error", "-ss", "0.1", "-i", input, "-frames:v", "1", "-f", "image2pipe", "-c:v", "png", "pipe:1"}
		},
	}
}

// Available reports whether the tool is on PATH.
func (c *Command) Available() bool {
	_, err := exec.LookPath(c.Path)
	return err == nil
}

func (c *Command) Generate(ctx context.Context, f domain.EvidenceFile) (image.Image, error) {
	bin, err := exec.LookPath(c.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not installed", ErrUnsupported, c.Path)
	}

	tmp, err := os.CreateTemp("", "evidence-*"+c.Ext)
	if err != nil {
		return nil, fmt.Errorf("preview temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(f.Data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("preview temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("preview temp file: %w", err)
	}

	execCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(execCtx, bin, c.Args(filepath.Clean(tmp.Name()))...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%s timed out after %v", c.Path, commandTimeout)
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrUnsupported, c.Path, err, bytes.TrimSpace(stderr.Bytes()))
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s output: %v", ErrUnsupported, c.Path, err)
	}
	return Fit(img, MaxSize), nil
}
