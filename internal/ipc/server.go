package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	maxLineLength = 4096
	readTimeout   = 5 * time.Second
)

// Handler executes a command and returns the reply text.
type Handler interface {
	Handle(cmd Command) (string, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(cmd Command) (string, error)

func (f HandlerFunc) Handle(cmd Command) (string, error) { return f(cmd) }

// Server accepts one command per connection on a Unix socket and writes
// back one reply line.
type Server struct {
	socketPath string
	handler    Handler
	listener   *net.UnixListener
	running    atomic.Bool
	wg         sync.WaitGroup
}

func NewServer(socketPath string, handler Handler) *Server {
	return &Server{
		socketPath: socketPath,
		handler:    handler,
	}
}

func (s *Server) Start() error {
	if s.running.Load() {
		return fmt.Errorf("IPC server already running")
	}

	// Remove a stale socket left by a previous run
	if _, err := os.Stat(s.socketPath); err == nil {
		os.Remove(s.socketPath)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create socket listener: %w", err)
	}

	s.listener = listener.(*net.UnixListener)
	s.running.Store(true)

	log.Printf("[IPC] listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptConnections()

	return nil
}

func (s *Server) acceptConnections() {
	defer s.wg.Done()

	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.running.Load() {
				log.Printf("[IPC] error accepting connection: %v", err)
			}
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 512), maxLineLength)

	var reply string
	switch {
	case scanner.Scan():
		reply = s.dispatch(scanner.Text())
	case errors.Is(scanner.Err(), bufio.ErrTooLong):
		log.Printf("[IPC] command longer than %d bytes rejected", maxLineLength)
		reply = "error: " + ErrLineTooLong.Error()
	default:
		if err := scanner.Err(); err != nil {
			log.Printf("[IPC] error reading from connection: %v", err)
		}
		return
	}

	if _, err := fmt.Fprintln(conn, reply); err != nil {
		log.Printf("[IPC] error writing reply: %v", err)
	}
}

func (s *Server) dispatch(line string) string {
	cmd, err := ParseCommand(line)
	if err != nil {
		return "error: " + err.Error()
	}

	log.Printf("[IPC] received command: %s", cmd)

	reply, err := s.handler.Handle(cmd)
	if err != nil {
		return "error: " + err.Error()
	}
	return strings.ReplaceAll(reply, "\n", " ")
}

func (s *Server) Stop() error {
	if !s.running.Swap(false) {
		return nil
	}

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()

	if _, err := os.Stat(s.socketPath); err == nil {
		os.Remove(s.socketPath)
	}

	log.Println("[IPC] server stopped")
	return nil
}

// Send dials socketPath, sends one command line and returns the reply.
// A reply starting with "error: " is returned as an error.
func Send(socketPath, line string) (string, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return "", fmt.Errorf("failed to connect to gocalc socket: %w", err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, strings.TrimSpace(line)); err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && reply == "" {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	reply = strings.TrimRight(reply, "\n")

	if msg, ok := strings.CutPrefix(reply, "error: "); ok {
		return "", errors.New(msg)
	}
	return reply, nil
}
