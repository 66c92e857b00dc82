package main

import (
	"flag"
	"fmt"
	"os"

	logs "github.com/danmuck/mirbot/internal/logging"
	"github.com/danmuck/mirbot/internal/runner"
)

func main() {
	path := flag.String("config", "mirbot.toml", "path to the bot config file")
	flag.Parse()

	logs.ConfigureRuntime()
	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mirbot: %v\n", err)
		os.Exit(1)
	}
	if cfg.LogLevel != "" {
		lvl, ok := logs.ParseLevel(cfg.LogLevel)
		if !ok {
			fmt.Fprintf(os.Stderr, "mirbot: unknown log_level %q\n", cfg.LogLevel)
			os.Exit(1)
		}
		logs.SetLevel(lvl)
	}

	svc, err := runner.NewService(cfg.Runner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mirbot: %v\n", err)
		os.Exit(1)
	}
	if err := svc.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "mirbot: %v\n", err)
		os.Exit(1)
	}
}
