// Package cli - командная строка go-lloyd.
package cli

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/0x0FACED/go-lloyd/internal/config"
	"github.com/0x0FACED/go-lloyd/pkg/logger"
)

const appName = "go-lloyd"

// Уровни логов для main.go.
const (
	LogDebug = zapcore.DebugLevel
	LogInfo  = zapcore.InfoLevel
)

// CLI - общее состояние всех команд.
type CLI struct {
	Logger *logger.ZapLogger

	logOut     io.Writer
	configPath string
	cfg        config.Config
}

// New создает CLI с логами в w.
func New(w io.Writer, level zapcore.Level) *CLI {
	return &CLI{
		Logger: logger.NewConsole(w, level),
		logOut: w,
		cfg:    config.Default(),
	}
}

// SetLogLevel пересоздает логгер с заданным уровнем.
func (c *CLI) SetLogLevel(level zapcore.Level) {
	c.Logger = logger.NewConsole(c.logOut, level)
}

// RootCommand создает корневую команду cobra со всеми подкомандами.
// Конфиг загружается один раз до запуска подкоманды.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Bounded Voronoi diagrams with Lloyd relaxation",
		Long: `go-lloyd builds Voronoi diagrams inside a rectangle by half-plane clipping,
relaxes the sites with Lloyd's algorithm and shades the cells with value noise.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())

	return root
}
