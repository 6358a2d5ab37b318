package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/database/seeders"
	"github.com/shashiranjanraj/bazaar/internal/kernel"
	"github.com/shashiranjanraj/bazaar/internal/server"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bazaar",
	Short: "bazaar — catalog, cart and feed API server",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(_ *cobra.Command, _ []string) error {
		return server.Start()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo users and catalog products",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer database.Disconnect(cmd.Context())
		return seeders.Run(cmd.Context())
	},
}

var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Run queue workers until interrupted",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		if err := cache.Connect(); err == nil && cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// NewHTTPKernel registers the job types and event listeners.
		_ = kernel.NewHTTPKernel()
		queue.StartWorkers(ctx, 4)

		<-ctx.Done()
		return nil
	},
}

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered route",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		httpKernel := kernel.NewHTTPKernel()

		fmt.Printf("%-8s  %-50s  %s\n", "METHOD", "PATH", "NAME")
		fmt.Println(strings.Repeat("-", 80))
		for _, ri := range httpKernel.Routes() {
			fmt.Printf("%-8s  %-50s  %s\n", ri.Method, ri.Path, ri.Name)
		}
		return nil
	},
}

func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(queueWorkCmd)
	rootCmd.AddCommand(routeListCmd)
}
