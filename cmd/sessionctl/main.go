// Command sessionctl issues and revokes API session tokens directly
// against the Redis session store. User signup and login live in a
// separate service; this tool covers local development and operational
// token management.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/commercekit/storefront/internal/config"
	"github.com/commercekit/storefront/internal/identity"
	identityredis "github.com/commercekit/storefront/internal/identity/redis"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer func() { _ = client.Close() }()
	sessions := identityredis.NewStore(client, cfg.Redis.SessionTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "issue":
		err = issue(ctx, sessions, os.Args[2:])
	case "revoke":
		err = revoke(ctx, sessions, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func issue(ctx context.Context, sessions *identityredis.Store, args []string) error {
	fs := flag.NewFlagSet("issue", flag.ExitOnError)
	id := fs.String("id", "", "principal id (required)")
	name := fs.String("name", "", "display name")
	admin := fs.Bool("admin", false, "grant the admin role")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("issue: -id is required")
	}

	token, err := sessions.Issue(ctx, identity.Principal{ID: *id, Name: *name, IsAdmin: *admin})
	if err != nil {
		return fmt.Errorf("issue session: %w", err)
	}

	fmt.Println(token)
	return nil
}

func revoke(ctx context.Context, sessions *identityredis.Store, args []string) error {
	fs := flag.NewFlagSet("revoke", flag.ExitOnError)
	token := fs.String("token", "", "session token to revoke (required)")
	_ = fs.Parse(args)

	if *token == "" {
		return fmt.Errorf("revoke: -token is required")
	}

	if err := sessions.Revoke(ctx, *token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sessionctl issue -id <id> [-name <name>] [-admin] | revoke -token <token>")
}
