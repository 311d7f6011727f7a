package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relentiousdragon/Mac-Clipper/internal/app"
	"github.com/relentiousdragon/Mac-Clipper/internal/clip"
	"github.com/relentiousdragon/Mac-Clipper/internal/config"
	"github.com/relentiousdragon/Mac-Clipper/internal/hotkey"
	"github.com/relentiousdragon/Mac-Clipper/internal/ipc"
	"github.com/relentiousdragon/Mac-Clipper/internal/paste"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard history daemon",
		Long: fmt.Sprintf(`Starts the clipper daemon: the clipboard watcher, the global hotkey,
and the local control socket the other sub-commands talk to.

Preferences are read from %s
(override with --config) and re-applied whenever the file changes.`,
			config.Path()),
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	return cmd
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	cfgPath := v.GetString("config")
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg := config.Load(cfgPath)

	slog.Info("clipper starting",
		"version", Version,
		"hotkey", cfg.Hotkey.Key,
		"max_items", cfg.MaxItems,
		"config", cfgPath,
	)

	backend := clip.New()
	a, err := app.Wire(
		cfg,
		backend,
		hotkey.NewTap(),
		hotkey.NewPermissionChecker(),
		paste.NewBridge(),
		app.NewLogPresenter(),
		config.PinnedPath(),
		hotkey.Options{},
	)
	if err != nil {
		return fmt.Errorf("hotkey config: %w", err)
	}

	ln, err := ipc.Listen()
	if err != nil {
		slog.Warn("control socket unavailable, CLI commands will not work", "err", err)
	} else {
		slog.Info("control socket listening", "path", ipc.SocketPath())
		go serveIPC(ln, a)
		defer ln.Close()
	}

	config.Watch(cfgPath, func(c *config.Config) {
		if err := a.ApplyConfig(c); err != nil {
			slog.Warn("config reload failed", "err", err)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Run(ctx)
	return nil
}

func serveIPC(ln net.Listener, a *app.App) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go handleIPCConn(conn, a)
	}
}

func handleIPCConn(conn net.Conn, a *app.App) {
	defer conn.Close()
	wc := ipc.NewConn(conn)

	var req ipc.Request
	if err := wc.Read(&req); err != nil {
		return
	}

	resp := dispatch(a, &req)
	if err := wc.Write(resp); err != nil {
		slog.Debug("ipc response write failed", "err", err)
	}
}

func dispatch(a *app.App, req *ipc.Request) *ipc.Response {
	fail := func(err error) *ipc.Response {
		return &ipc.Response{Err: err.Error()}
	}

	switch req.Op {
	case ipc.OpList:
		entries, err := a.List(req.Filter)
		if err != nil {
			return fail(err)
		}
		return &ipc.Response{OK: true, Entries: entries}

	case ipc.OpCopy:
		if err := a.CopyIn(req.Kind, req.Data); err != nil {
			return fail(err)
		}
		return &ipc.Response{OK: true}

	case ipc.OpPaste:
		if err := a.PasteKey(req.Key); err != nil {
			return fail(err)
		}
		return &ipc.Response{OK: true}

	case ipc.OpPin:
		if err := a.Pin(req.Key); err != nil {
			return fail(err)
		}
		return &ipc.Response{OK: true}

	case ipc.OpDelete:
		if err := a.Delete(req.Key); err != nil {
			return fail(err)
		}
		return &ipc.Response{OK: true}

	case ipc.OpStatus:
		st, err := a.Status()
		if err != nil {
			return fail(err)
		}
		return &ipc.Response{OK: true, Status: st}
	}
	return &ipc.Response{Err: fmt.Sprintf("unknown op %q", req.Op)}
}
