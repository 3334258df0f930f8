// Command admintoken mints a bearer token for the admin endpoints, signed with
// the server's JWT_SECRET.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/auth"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("admintoken", flag.ContinueOnError)
	var (
		username string
		ttl      time.Duration
	)
	fs.StringVar(&username, "username", "admin", "subject of the token")
	fs.DurationVar(&ttl, "ttl", time.Hour, "how long the token stays valid")
	if err := fs.Parse(args); err != nil {
		return err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username must not be empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token, err := auth.NewTokenManager(cfg.JWTSecret).GenerateJWT(username, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}
