package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/youruser/citationgen/internal/api"
	"github.com/youruser/citationgen/internal/assets"
	"github.com/youruser/citationgen/internal/config"
	"github.com/youruser/citationgen/internal/logging"
	"github.com/youruser/citationgen/internal/presets"
	"github.com/youruser/citationgen/internal/server"
)

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		logging.New("error", os.Stderr).Error("load config", "err", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)

	start := time.Now()
	store, err := assets.Default()
	if err != nil {
		log.Error("load assets", "err", err)
		os.Exit(1)
	}
	log.Debug("assets loaded", "took", time.Since(start))

	catalogue, err := presets.Builtin()
	if err != nil {
		log.Error("load presets", "err", err)
		os.Exit(1)
	}
	if cfg.PresetsPath != "" {
		catalogue, err = loadPresets(cfg.PresetsPath, catalogue)
		if err != nil {
			log.Error("load presets", "path", cfg.PresetsPath, "err", err)
			os.Exit(1)
		}
	}
	log.Info("presets loaded", "count", len(catalogue))

	if cfg.SSHAddr != "" {
		created, err := server.EnsureHostKey(cfg.HostKeyPath)
		if err != nil {
			log.Error("host key", "path", cfg.HostKeyPath, "err", err)
			os.Exit(1)
		}
		if created {
			log.Info("generated host key", "path", cfg.HostKeyPath)
		}
		ssh := server.NewSSHServer(cfg.SSHAddr, cfg.HostKeyPath, store, catalogue, log)
		go func() {
			if err := ssh.Start(); err != nil {
				log.Error("ssh server stopped", "err", err)
			}
		}()
	}

	r := gin.Default()
	api.RegisterRoutes(r, api.NewHandler(store, catalogue, cfg.BaseURL, log))

	log.Info("starting server", "addr", cfg.Addr, "base_url", cfg.BaseURL)
	if err := r.Run(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server", "err", err)
		os.Exit(1)
	}
}

// loadPresets reads extra presets from path on top of base. Entries in the
// file replace builtin presets of the same name.
func loadPresets(path string, base presets.Catalogue) (presets.Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	extra, err := presets.Load(f)
	if err != nil {
		return nil, err
	}
	for k, p := range extra {
		base[k] = p
	}
	return base, nil
}
