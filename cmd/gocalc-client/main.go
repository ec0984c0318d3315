package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chess10kp/gocalc/internal/config"
	"github.com/chess10kp/gocalc/internal/ipc"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gocalc-client <command> [argument]\n\nCommands: %s\n",
		strings.Join(ipc.Commands(), ", "))
}

func socketPath() string {
	if path := os.Getenv("GOCALC_SOCKET"); path != "" {
		return path
	}
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		return config.Default().SocketPath
	}
	return cfg.SocketPath
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	line := strings.Join(os.Args[1:], " ")
	if _, err := ipc.ParseCommand(line); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	reply, err := ipc.Send(socketPath(), line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(reply)
}
