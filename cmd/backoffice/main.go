package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/naveenspark/backoffice/internal/config"
	"github.com/naveenspark/backoffice/internal/logging"
	"github.com/naveenspark/backoffice/internal/session"
	"github.com/naveenspark/backoffice/internal/tui"
	"github.com/naveenspark/backoffice/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		os.Exit(1)
	}
}

// errorText prefers the user-facing rendering for API errors.
func errorText(err error) string {
	if client.Classify(err) == client.KindUnknown {
		return err.Error()
	}
	return client.UserMessage(err)
}

// app is the state shared by every command, built once in PersistentPreRunE.
type app struct {
	cfg   *config.Config
	store *session.FileStore
	level zerolog.Level
}

// newClient builds an API client logging through log.
func (a *app) newClient(log zerolog.Logger) *client.Client {
	opts := []client.Option{
		client.WithTimeout(a.cfg.GetTimeout()),
		client.WithRateLimit(a.cfg.RequestsPerSecond, a.cfg.Burst),
		client.WithLogger(log),
		client.WithSessionExpiredHandler(func() {
			log.Warn().Str("session", a.store.Path()).Msg("session expired, local session cleared")
		}),
	}
	if a.cfg.CloudinaryUploadURL != "" {
		opts = append(opts, client.WithCloudinaryURL(a.cfg.CloudinaryUploadURL))
	}
	return client.New(a.cfg.APIURL, a.store, opts...)
}

// consoleClient is the client used by one-shot commands.
func (a *app) consoleClient(w io.Writer) *client.Client {
	return a.newClient(logging.Console(w, a.level))
}

func (a *app) load() error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	sessPath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	a.cfg, a.level, a.store = cfg, lvl, session.NewFileStore(sessPath)
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Back-office dashboard for the gifting platform",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.OutOrStdout())
		},
	}
	root.SetVersionTemplate("backoffice {{.Version}}\n")
	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newStatusCmd(a),
		newCategoriesCmd(a),
		newUploadCmd(a),
		newVersionCmd(),
	)
	return root
}

// logPath returns log_file from config or ~/.backoffice/backoffice.log.
func (a *app) logPath() (string, error) {
	if a.cfg.LogFile != "" {
		return a.cfg.LogFile, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backoffice.log"), nil
}

func (a *app) runTUI(out io.Writer) error {
	path, err := a.logPath()
	if err != nil {
		return err
	}
	log, closer, err := logging.File(path, a.level)
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	c := a.newClient(log)
	if !c.LoggedIn() {
		printGreeting(out)
		return nil
	}
	if _, err := c.Me(); errors.Is(err, client.ErrSessionExpired) {
		printGreeting(out)
		return nil
	}

	m := tui.NewApp(c, tui.Options{
		PageSize:  a.cfg.GetPageSize(),
		CacheSize: a.cfg.CacheSize,
		CacheTTL:  a.cfg.GetCacheTTL(),
	})
	log.Info().Str("api", a.cfg.APIURL).Msg("starting dashboard")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
