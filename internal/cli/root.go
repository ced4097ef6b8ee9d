// Package cli implements zamanictl, an operator command line for the Zamani
// backend. It drives the same resource hooks and forms as the dashboard and
// keeps its session in a local SQLite file.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zamanihq/dashboard/internal/cli/state"
	"github.com/zamanihq/dashboard/internal/cli/store"
	"github.com/zamanihq/dashboard/internal/cli/store/drivers/sqlite"
	"github.com/zamanihq/dashboard/internal/dashboard/forms"
	"github.com/zamanihq/dashboard/internal/dashboard/resource"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

const (
	EnvPrefix     = "ZAMANI"
	DefaultAPIURL = "http://localhost:8080/api/proxy"

	flagAPIURL    = "api-url"
	flagStateFile = "state-file"
	flagConfig    = "config"
	flagLogLevel  = "log-level"
)

var ErrMissingAPIURL = errors.New("api url is required (--api-url or ZAMANI_API_URL)")

// env is shared by every command of one invocation.
type env struct {
	v       *viper.Viper
	version string

	logger  *slog.Logger
	store   store.Store
	session *state.Session
	hooks   *resource.Hooks
}

// NewRootCommand builds the zamanictl command tree.
func NewRootCommand(version string) *cobra.Command {
	root, _ := newRootCommand(version)
	return root
}

func newRootCommand(version string) (*cobra.Command, *env) {
	e := &env{v: viper.New(), version: version}

	root := &cobra.Command{
		Use:           "zamanictl",
		Short:         "Operate a Zamani community platform from the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
	}

	flags := root.PersistentFlags()
	flags.String(flagAPIURL, DefaultAPIURL, "Zamani API base URL")
	flags.String(flagStateFile, defaultStateFile(), "path of the local session database")
	flags.String(flagConfig, "", "optional config file (yaml, json or toml)")
	flags.String(flagLogLevel, "warn", "log level (debug, info, warn, error)")

	e.v.SetEnvPrefix(EnvPrefix)
	e.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	e.v.AutomaticEnv()
	_ = e.v.BindPFlags(flags)

	root.AddCommand(
		newLoginCommand(e),
		newLogoutCommand(e),
		newSetPasswordCommand(e),
		newWhoamiCommand(e),
		newNavCommand(e),
		newCommunitiesCommand(e),
		newAccessCodesCommand(e),
		newWalletsCommand(e),
		newServiceGroupsCommand(e),
	)
	return root, e
}

// Execute runs the root command and prints any error the way the dashboard
// would show it.
func Execute(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	root, e := newRootCommand(version)
	// PersistentPostRunE is skipped when a command fails
	defer func() { _ = e.close() }()

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", zamanisdk.UserMessage(err, err.Error()))
		return 1
	}
	return 0
}

func (e *env) open(cmd *cobra.Command) error {
	if path := e.v.GetString(flagConfig); path != "" {
		e.v.SetConfigFile(path)
		if err := e.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	e.logger = slogx.New(slogx.Config{
		Service: "zamanictl",
		Version: e.version,
		Env:     "cli",
		Level:   e.v.GetString(flagLogLevel),
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})

	apiURL := e.v.GetString(flagAPIURL)
	if apiURL == "" {
		return ErrMissingAPIURL
	}

	path := e.v.GetString(flagStateFile)
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	s, err := sqlite.NewStore(path)
	if err != nil {
		return fmt.Errorf("open state %s: %w", path, err)
	}
	if err := s.ApplyMigrations(); err != nil {
		_ = s.Close()
		return fmt.Errorf("migrate state: %w", err)
	}

	e.store = s
	e.session = state.NewSession(s)
	e.hooks = resource.New(zamanisdk.NewClient(apiURL, e.session), nil)

	cmd.SetContext(slogx.WithContext(cmd.Context(), e.logger))
	e.logger.Debug("cli ready", "api_url", apiURL, "state_file", path)
	return nil
}

func (e *env) close() error {
	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	return err
}

// notifier prints form notifications to stderr.
func (e *env) notifier(cmd *cobra.Command) forms.Notifier {
	return &forms.WriterNotifier{W: cmd.ErrOrStderr()}
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "zamani", "state.db")
}
