// Command citation renders a citation card to a file.
//
//	citation -o out.png -header "M.O.A. CITATION" -violations "Protocol Violated"
//	citation -gif -o out.gif -bg 0,0,0 -fg 255,255,255
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/youruser/citationgen/internal/assets"
	"github.com/youruser/citationgen/internal/citation"
	imagepkg "github.com/youruser/citationgen/internal/image"
	"github.com/youruser/citationgen/internal/logging"
	"github.com/youruser/citationgen/internal/params"
	"github.com/youruser/citationgen/internal/presets"
	"github.com/youruser/citationgen/internal/util"
)

func main() {
	var (
		opt      params.Options
		output   string
		logLevel string
	)
	fs := flag.NewFlagSet("citation", flag.ExitOnError)
	params.BindFlags(fs, &opt)
	fs.StringVar(&output, "o", "", "file to write; the format follows the extension")
	fs.StringVar(&output, "output", "", "alias for -o")
	fs.StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	fs.Parse(os.Args[1:])

	log := logging.New(logLevel, os.Stderr)
	if output == "" {
		fmt.Fprintln(os.Stderr, "citation: -o is required")
		fs.Usage()
		os.Exit(2)
	}

	if err := run(log, opt, output); err != nil {
		log.Error("render failed", "output", output, "err", err)
		os.Exit(1)
	}
	log.Info("wrote citation", "output", output, "gif", opt.GIF)
}

func run(log *slog.Logger, opt params.Options, output string) error {
	store := assets.MustDefault()
	catalogue, err := presets.Builtin()
	if err != nil {
		return err
	}
	if opt, err = catalogue.Apply(opt); err != nil {
		return err
	}
	d, err := opt.Data(store.Font())
	if err != nil {
		return err
	}
	log.Debug("rendering citation", "size", fmt.Sprintf("%dx%d", d.Width, d.Height), "violations", d.Violations.Count())
	r := citation.NewRenderer(store)

	if !opt.GIF {
		if err := util.EnsureDir(filepath.Dir(output)); err != nil {
			return err
		}
		return imagepkg.Save(output, r.Render(d))
	}

	if ext := filepath.Ext(output); ext != "" && !strings.EqualFold(ext, ".gif") {
		log.Warn("writing a gif into a non-gif file extension", "output", output)
	}
	b, err := r.RenderGIF(d)
	if err != nil {
		return err
	}
	return util.WriteFile(output, b)
}
