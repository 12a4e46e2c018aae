package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/MKRhere/TeMiCross/internal/auth"
	"github.com/MKRhere/TeMiCross/internal/config"
	"github.com/MKRhere/TeMiCross/internal/game"
	"github.com/MKRhere/TeMiCross/internal/relay"
	"github.com/MKRhere/TeMiCross/internal/updates"
)

var (
	logger     *slog.Logger
	configPath string // overridable via --config flag
)

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "temicross",
		Short: "TeMiCross: Telegram to Minecraft chat bridge",
		Long:  "TeMiCross relays chat between a Telegram group and a Minecraft server, both ways.",
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "temicross.json", "path to config file (.json or .yaml)")

	root.AddCommand(initCmd())
	root.AddCommand(runCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config skeleton to the config path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(configPath, config.Defaults()); err != nil {
				return err
			}
			logger.Info("config written", "path", configPath)
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bridge",
		RunE:  runBridge,
	}
}

func runBridge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	client, err := game.Launch(game.Options{
		Command:    cfg.Server.Command,
		Args:       cfg.Server.Args,
		Dir:        cfg.Server.Dir,
		ServerType: cfg.Server.Type,
	}, logger)
	if err != nil {
		return err
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		client.Close()
		return err
	}
	logger.Info("telegram bot connected", "username", bot.Self.UserName, "id", bot.Self.ID)

	messenger := relay.NewTelegramMessenger(bot, cfg.Telegram.ChatID, logger)
	sess := relay.New(relay.Config{
		ChatID:    cfg.Telegram.ChatID,
		BotID:     bot.Self.ID,
		AllowList: cfg.AllowList,
	}, client, messenger, logger)

	if cfg.LocalAuth {
		store, err := auth.Open(expandHome(cfg.Auth.DBPath))
		if err != nil {
			client.Close()
			return err
		}
		defer store.Close()
		window := time.Duration(cfg.Auth.WindowSeconds) * time.Second
		sess.AttachGuard(auth.NewGuard(store, client.Send, window, logger))
	}

	if cfg.PostUpdates {
		poller := updates.New(updates.Config{
			ManifestURL: cfg.Updates.ManifestURL,
			Interval:    time.Duration(cfg.Updates.IntervalMinutes) * time.Minute,
		}, func(version string) {
			messenger.Send("<b>New version released:</b> <code>" + version + "</code>")
		}, logger)
		go poller.Run(runCtx)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	err = sess.Run(runCtx, bot.GetUpdatesChan(u))
	bot.StopReceivingUpdates()
	return err
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
