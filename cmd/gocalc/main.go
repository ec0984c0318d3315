package main

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/chess10kp/gocalc/internal/config"
	"github.com/chess10kp/gocalc/internal/core"
	"github.com/chess10kp/gocalc/internal/ipc"
)

// runningInstance returns true if another calculator owns pidFile and
// answered a request to show its window.
func runningInstance(pidFile, socketPath string) bool {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid == os.Getpid() {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Check if process is still running
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return false
	}
	if _, err := ipc.Send(socketPath, ipc.CmdShow); err != nil {
		log.Printf("Instance %d did not answer: %v", pid, err)
		return false
	}
	return true
}

func writePidFile(pidFile string) error {
	return os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func setupLogging(path string) *os.File {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil
	}
	log.SetOutput(logFile)
	return logFile
}

func main() {
	configPath := config.DefaultPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadAndValidateConfig(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		cfg = config.Default()
	}

	if logFile := setupLogging(cfg.LogFile); logFile != nil {
		defer logFile.Close()
	}

	if runningInstance(cfg.PidFile, cfg.SocketPath) {
		log.Println("GoCalc already running, raised existing window")
		return
	}
	if err := writePidFile(cfg.PidFile); err != nil {
		log.Fatalf("Failed to write pid file: %v", err)
	}
	defer os.Remove(cfg.PidFile)

	app, err := core.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
