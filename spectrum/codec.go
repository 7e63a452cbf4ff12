package spectrum

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// document is the on-disk layout of a spectrum.
type document struct {
	Freqs    []float64   `yaml:"freqs"`
	Dirs     []float64   `yaml:"dirs"`
	S        [][]float64 `yaml:"S,omitempty,flow"`
	FUnit    string      `yaml:"funit,omitempty"`
	DUnit    string      `yaml:"dunit,omitempty"`
	XAxisDir *float64    `yaml:"xaxisdir,omitempty"`
}

// Decode reads a YAML spectrum from r. The density may be absent, in which
// case only the axes are validated; this is how target templates are read.
func Decode(r io.Reader) (*Spectrum, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode spectrum")
	}

	fu, err := ParseFreqUnit(doc.FUnit)
	if err != nil {
		return nil, err
	}

	du, err := ParseDirUnit(doc.DUnit)
	if err != nil {
		return nil, err
	}

	var sm *Spectrum
	if doc.S == nil {
		sm = New(doc.Freqs, doc.Dirs)
	} else {
		if sm, err = NewWithDensity(doc.Freqs, doc.Dirs, doc.S); err != nil {
			return nil, err
		}
	}

	sm.FUnit = fu
	sm.DUnit = du
	if doc.XAxisDir != nil {
		sm.XAxisDir = *doc.XAxisDir
	}

	if sm.S == nil {
		return sm, sm.ValidateAxes()
	}

	return sm, sm.Validate()
}

// Encode writes sm to w as YAML.
func Encode(w io.Writer, sm *Spectrum) error {
	xaxis := sm.XAxisDir
	doc := document{
		Freqs:    sm.Freqs,
		Dirs:     sm.Dirs,
		S:        sm.Rows(),
		FUnit:    string(sm.FUnit),
		DUnit:    string(sm.DUnit),
		XAxisDir: &xaxis,
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "failed to encode spectrum")
	}

	return enc.Close()
}
