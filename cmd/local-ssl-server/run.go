// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/H0llyW00dzZ/local-ssl-server/src/cli"
	"github.com/H0llyW00dzZ/local-ssl-server/src/config"
	"github.com/H0llyW00dzZ/local-ssl-server/src/logger"
	"github.com/H0llyW00dzZ/local-ssl-server/src/server"
	verpkg "github.com/H0llyW00dzZ/local-ssl-server/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

// loadDotEnv loads .env from the working directory. A missing file is not an error.
func loadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func main() {
	log := logger.NewCLILogger(config.DefaultLogSlug, false)
	log.SetOutput(os.Stderr)

	if err := loadDotEnv(); err != nil {
		log.Warnf("Ignoring .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)

	go func() {
		done <- cli.Execute(ctx, version)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Println("Interrupted, shutting down...")
		// The listener gets its shutdown budget before the process exits.
		select {
		case <-done:
		case <-time.After(server.ShutdownTimeout + time.Second):
		}
		os.Exit(130)
	}
}
