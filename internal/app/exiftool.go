package app

import (
	"fmt"

	"imgor/internal/imgor"
	"imgor/internal/metadata"
)

// lazyExiftool starts exiftool on first use, so commands that never touch
// metadata work without it installed.
type lazyExiftool struct {
	binaryPath string
	client     *metadata.ExiftoolClient
	err        error
	started    bool
}

func (l *lazyExiftool) start() error {
	if !l.started {
		l.started = true
		l.client, l.err = metadata.NewExiftoolClient(l.binaryPath)
		if l.err != nil {
			l.err = fmt.Errorf("exiftool is required to read photo metadata: %w", l.err)
		}
	}
	return l.err
}

func (l *lazyExiftool) Tags(path string) (metadata.Tags, error) {
	if err := l.start(); err != nil {
		return nil, err
	}
	return l.client.Tags(path)
}

func (l *lazyExiftool) WriteDerivedFrom(path, reference string) error {
	if err := l.start(); err != nil {
		return err
	}
	return l.client.WriteDerivedFrom(path, reference)
}

func (l *lazyExiftool) Close() error {
	if l.client == nil {
		return nil
	}
	return l.client.Close()
}

var (
	_ metadata.TagSource   = (*lazyExiftool)(nil)
	_ imgor.MetadataWriter = (*lazyExiftool)(nil)
)
