// Сервисная утилита: выдаёт пользователю права администратора.
//
//	go run ./cmd/addadmin <user_id> [username]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"tg_guarantor/internal/config"
	"tg_guarantor/internal/infrastructure/persistence"
	"tg_guarantor/pkg/application/connectors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: addadmin <user_id> [username]")
	}

	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	var username string
	if len(args) > 1 {
		username = strings.TrimPrefix(args[1], "@")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	users := persistence.NewUserRepository(db)

	if err := users.AddAdmin(ctx, userID, username); err != nil {
		return fmt.Errorf("add admin: %w", err)
	}

	isAdmin, err := users.IsAdmin(ctx, userID)
	if err != nil {
		return fmt.Errorf("is admin check: %w", err)
	}

	fmt.Printf("user %d is admin: %t\n", userID, isAdmin)

	return nil
}
