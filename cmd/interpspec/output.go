package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/noriah/diwasp/config"
	"github.com/noriah/diwasp/spectrum"
)

// Output writes a remapped spectrum.
type Output interface {
	Write(*spectrum.Spectrum) error
}

func newOutput(cfg config.OutConfig, w io.Writer) Output {
	if cfg.Format == config.FormatRaw {
		return &RawOutput{w: w, precision: cfg.Precision}
	}
	return &YAMLOutput{w: w}
}

// YAMLOutput writes the spectrum file format.
type YAMLOutput struct {
	w io.Writer
}

var _ Output = &YAMLOutput{}

func (o *YAMLOutput) Write(sm *spectrum.Spectrum) error {
	return spectrum.Encode(o.w, sm)
}

// RawOutput prints the density one frequency per line, space separated.
type RawOutput struct {
	w         io.Writer
	precision int
}

var _ Output = &RawOutput{}

func (o *RawOutput) Write(sm *spectrum.Spectrum) error {
	bw := bufio.NewWriter(o.w)

	for _, row := range sm.Rows() {
		for xBin, v := range row {
			if xBin > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%.*f", o.precision, v)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
