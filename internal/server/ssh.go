package server

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/gliderlabs/ssh"

	"github.com/youruser/citationgen/internal/assets"
	"github.com/youruser/citationgen/internal/citation"
	"github.com/youruser/citationgen/internal/params"
	"github.com/youruser/citationgen/internal/presets"
)

// Terminal size assumed when a session has no PTY.
const (
	defaultCols = 80
	defaultRows = 24
)

// SSHServer prints citations to SSH clients. The session command holds the
// same flags as the citation CLI, e.g. `ssh host -- -header "M.O.A."`.
type SSHServer struct {
	addr     string
	hostKey  string
	store    *assets.Store
	presets  presets.Catalogue
	renderer *citation.Renderer
	log      *slog.Logger
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr, hostKey string, store *assets.Store, catalogue presets.Catalogue, log *slog.Logger) *SSHServer {
	return &SSHServer{
		addr:     addr,
		hostKey:  hostKey,
		store:    store,
		presets:  catalogue,
		renderer: citation.NewRenderer(store),
		log:      log,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	s.log.Info("ssh preview listening", "addr", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	cols, rows := defaultCols, defaultRows
	if pty, _, ok := sess.Pty(); ok {
		cols, rows = pty.Window.Width, pty.Window.Height
	}

	out, err := s.preview(sess.Command(), cols, rows)
	if err != nil {
		s.log.Debug("ssh preview rejected", "user", sess.User(), "err", err)
		fmt.Fprintln(sess.Stderr(), "Error:", err)
		sess.Exit(2)
		return
	}
	s.log.Info("ssh preview", "user", sess.User(), "cols", cols, "rows", rows)
	io.WriteString(sess, out)
	sess.Exit(0)
}

// preview renders the citation described by args for a cols×rows terminal,
// keeping the last row free for the prompt.
func (s *SSHServer) preview(args []string, cols, rows int) (string, error) {
	var opt params.Options
	fs := flag.NewFlagSet("citation", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	params.BindFlags(fs, &opt)
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	opt, err := s.presets.Apply(opt)
	if err != nil {
		return "", err
	}
	d, err := opt.Data(s.store.Font())
	if err != nil {
		return "", err
	}
	return HalfBlocks(s.renderer.Render(d), cols, rows-1), nil
}
