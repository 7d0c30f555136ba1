package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rawjson/use-in-view/internal/app"
	"github.com/rawjson/use-in-view/internal/config"
	"github.com/rawjson/use-in-view/internal/document"
	"github.com/rawjson/use-in-view/internal/remote"
)

func main() {
	docPath := flag.String("doc", "README.md", "Markdown document to track")
	cfgPath := flag.String("config", "", "Optional YAML config file")
	listen := flag.String("listen", "", "Serve a visibility mirror on this address (e.g. 127.0.0.1:8080)")
	token := flag.String("token", "", "Auth token required by the mirror (empty disables auth)")
	flag.Parse()

	if err := run(*docPath, *cfgPath, *listen, *token); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(docPath, cfgPath, listen, token string) error {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return err
	}
	sections := document.Split(string(data))
	if len(sections) == 0 {
		return fmt.Errorf("%s has no sections to track", docPath)
	}

	cfg := config.Default()
	if cfgPath != "" {
		if cfg, err = config.Load(cfgPath); err != nil {
			return err
		}
	}

	m, err := app.New(sections, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if listen != "" {
		bc := m.Scheduler().Broadcaster()
		mirror := remote.NewMirror(document.IDs(sections), bc.Current(), cfg.Mirror.Throttle.Std())

		updates, cancelSub := bc.Subscribe()
		defer cancelSub()
		go mirror.Run(ctx, updates)

		mux := http.NewServeMux()
		remote.NewServer(mirror, token).SetupRoutes(mux)
		go func() {
			if err := remote.ListenAndServe(listen, mux); err != nil {
				fmt.Fprintf(os.Stderr, "mirror: %v\n", err)
			}
		}()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
