package main

import (
	"bufio"
	"chatroom/infrastructure/broker"
	"chatroom/internal"
	"chatroom/runtime/workers"
	"chatroom/services"
	"chatroom/ui"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const inboxWarnThreshold = 0.8

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

// run wires the session controller to the STOMP broker and the terminal,
// registers the user, then turns stdin lines into tab selections.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	username := flag.String("user", config.Username, "name to register with")
	flag.Parse()
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Session loop
	terminal := ui.NewTerminal(os.Stdout, config.Colours)
	stompBroker := broker.NewStompBroker(log, config.BrokerURL, config.BrokerHost, config.HeartBeat)
	controller := services.NewSessionController(log, stompBroker,
		config.InboxBufferSize, config.RestartInterval, terminal)

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- controller.Run(ctx)
	}()
	// Stopping the loop also closes the broker connection.
	defer func() {
		stop()
		<-loopDone
	}()

	if config.DebugPort > 0 {
		internal.StartDebugServer(ctx, log, config.DebugPort, "/inspect", controller.CurrentView)
	}
	if config.MetricInterval > 0 {
		supervisor := workers.NewSupervisor(log, config.RestartInterval)
		supervisor.Add(workers.NewCapacityMonitor(log, config.MetricInterval, inboxWarnThreshold,
			workers.CapacityProbe{Name: "session_inbox", Usage: controller.InboxUsage}))
		go supervisor.Run(ctx)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	// 4. Registration
	name := *username
	if name == "" {
		fmt.Print("Enter user name: ")
		select {
		case <-ctx.Done():
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitConfig, fmt.Errorf("no user name given")
			}
			name = line
		}
	}
	connectCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	err = controller.Register(connectCtx, name)
	cancel()
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to %s as %q: %w", config.BrokerURL, name, err)
	}
	log.Info("Commands: :public, :tab <name>, :quit")

	// 5. Command loop, until Ctrl+C, :quit or end of input
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping client...")
			return exitOK, nil
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			command, err := ui.ParseCommand(line)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			switch command.Kind {
			case ui.CommandQuit:
				return exitOK, nil
			case ui.CommandSelectTab:
				if err := controller.SelectTab(ctx, command.Tab); err != nil {
					return exitRuntime, fmt.Errorf("select tab: %w", err)
				}
			}
		}
	}
}
