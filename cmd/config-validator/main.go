package main

import (
	"fmt"
	"os"

	"github.com/chess10kp/gocalc/internal/config"
)

func main() {
	configPath := config.DefaultPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	fmt.Printf("Validating config: %s\n", configPath)

	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Config is valid!")
	fmt.Printf("   window:  %q %dx%d\n", cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	fmt.Printf("   socket:  %s\n", cfg.SocketPath)
	if cfg.DBus.Enabled {
		fmt.Printf("   d-bus:   %s\n", cfg.DBus.Name)
	}
}
