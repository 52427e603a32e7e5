// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

const errorCopyFormat = "copy to clipboard: %w"

var errUnsupported = errors.New("no clipboard utility available")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	write func(text string) error
}

// NewService constructs a Service backed by the system clipboard.
func NewService() *Service {
	return &Service{write: writeSystemClipboard}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	write := service.write
	if write == nil {
		write = writeSystemClipboard
	}
	if writeError := write(text); writeError != nil {
		return fmt.Errorf(errorCopyFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)

func writeSystemClipboard(text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}

// Recorder collects rendered output so it can be copied once rendering ends.
type Recorder struct {
	copier Copier
	buffer bytes.Buffer
}

// NewRecorder returns a Recorder that hands its content to copier on Commit.
func NewRecorder(copier Copier) *Recorder {
	return &Recorder{copier: copier}
}

// Write implements io.Writer.
func (recorder *Recorder) Write(data []byte) (int, error) {
	return recorder.buffer.Write(data)
}

// Commit copies everything written so far.
func (recorder *Recorder) Commit() error {
	return recorder.copier.Copy(recorder.buffer.String())
}
