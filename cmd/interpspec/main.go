package main

import (
	"fmt"
	"io"
	"os"

	"github.com/noriah/diwasp"
	"github.com/noriah/diwasp/config"
	"github.com/noriah/diwasp/griddata"
	"github.com/noriah/diwasp/spectrum"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// AppName is the app name
const AppName = "interpspec"

// AppDesc is the app description
const AppDesc = "Interpolate directional wave spectra onto a new frequency/direction grid"

// AppSite is the app website
const AppSite = "https://github.com/noriah/diwasp"

var version = "unknown"

// flags holds command line values. Empty values leave the config file alone.
type flags struct {
	configFile string
	input      string
	target     string
	output     string
	method     string
	format     string
	level      string
	precision  int
	tolerance  float64
	hsigFile   string
}

func main() {
	var fl flags

	cmd := doFlags(&fl)

	cfg, err := config.Load(fl.configFile)
	chk(err, "failed to load config")

	fl.apply(cfg)
	chk(cfg.Validate(), "invalid config")

	log, err := cfg.Logger()
	chk(err, "failed to set up logging")

	switch cmd {
	case cmdListMethods:
		for _, m := range griddata.Methods {
			fmt.Printf("- %s\n", m)
		}

	case cmdHsig:
		sm, err := readSpectrum(fl.hsigFile)
		chk(err, "failed to read spectrum")

		hs, err := spectrum.Hsig(sm)
		chk(err, "failed to compute significant wave height")

		fmt.Printf("%g\n", hs)

	default:
		chk(remap(cfg, &fl, log), "failed to interpolate spectrum")
	}
}

type command int

const (
	cmdRemap command = iota
	cmdHsig
	cmdListMethods
)

func doFlags(fl *flags) command {
	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listMethodsCmd := flaggy.Subcommand{
		Name:        "list-methods",
		ShortName:   "lm",
		Description: "list all supported interpolation methods",
	}

	parser.AttachSubcommand(&listMethodsCmd, 1)

	hsigCmd := flaggy.Subcommand{
		Name:        "hsig",
		ShortName:   "hs",
		Description: "print the significant wave height of a spectrum file",
	}
	hsigCmd.AddPositionalValue(&fl.hsigFile, "file", 1, true, "spectrum file")

	parser.AttachSubcommand(&hsigCmd, 1)

	fl.configFile = "interpspec.yaml"
	fl.precision = -1
	fl.tolerance = -1

	parser.String(&fl.configFile, "c", "config", "config file")
	parser.String(&fl.input, "i", "input", "source spectrum file")
	parser.String(&fl.target, "t", "target", "target grid file (density ignored)")
	parser.String(&fl.output, "o", "output", "output file (default stdout)")
	parser.String(&fl.method, "m", "method", "interpolation method (linear, nearest)")
	parser.String(&fl.format, "f", "format", "output format (yaml, raw)")
	parser.String(&fl.level, "l", "log-level", "log level")
	parser.Int(&fl.precision, "p", "precision", "digits after the point for raw output")
	parser.Float64(&fl.tolerance, "tol", "tolerance", "relative Hs gain that marks a coarse grid (0 warns on any gain)")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listMethodsCmd.Used:
		return cmdListMethods
	case hsigCmd.Used:
		return cmdHsig
	}

	return cmdRemap
}

// apply overrides the config file with the flags that were given.
func (fl *flags) apply(cfg *config.Config) {
	if fl.method != "" {
		cfg.Method = fl.method
	}
	if fl.format != "" {
		cfg.Output.Format = fl.format
	}
	if fl.level != "" {
		cfg.Log.Level = fl.level
	}
	if fl.precision >= 0 {
		cfg.Output.Precision = fl.precision
	}
	if fl.tolerance >= 0 {
		cfg.Tolerance = fl.tolerance
	}
}

func remap(cfg *config.Config, fl *flags, log *logrus.Logger) error {
	if fl.input == "" || fl.target == "" {
		return errors.New("both -i and -t are required")
	}

	in, err := readSpectrum(fl.input)
	if err != nil {
		return errors.Wrap(err, "source")
	}

	target, err := readSpectrum(fl.target)
	if err != nil {
		return errors.Wrap(err, "target")
	}

	r, err := diwasp.New(cfg.Remapper(log))
	if err != nil {
		return err
	}

	res, rep, err := r.RemapReport(in, target)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"hs_in":        rep.HsIn,
		"hs_out":       rep.HsOut,
		"interpolated": rep.Interpolated,
	}).Debug("remap complete")

	if fl.output == "" {
		return newOutput(cfg.Output, os.Stdout).Write(res)
	}

	f, err := os.Create(fl.output)
	if err != nil {
		return errors.Wrap(err, "failed to create output")
	}

	return writeClose(newOutput(cfg.Output, f), f, res)
}

// writeClose writes sm and closes c. A failed close is reported since the
// file may be truncated.
func writeClose(out Output, c io.Closer, sm *spectrum.Spectrum) error {
	if err := out.Write(sm); err != nil {
		c.Close()
		return err
	}

	return errors.Wrap(c.Close(), "failed to close output")
}

func readSpectrum(name string) (*spectrum.Spectrum, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return spectrum.Decode(f)
}

func chk(err error, wrap string) {
	if err != nil {
		logrus.WithError(err).Fatal(wrap)
	}
}
