// admin 运维命令行：建表、签发运维令牌
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"account-service/internal/core/auth"
	"account-service/internal/core/config"
	"account-service/internal/core/database"
)

const usage = `usage: admin <command> [flags]

commands:
  migrate   create or update the users table
  token     print a signed operator token (--uid, --role)
`

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}
	switch args[0] {
	case "migrate":
		return migrate(args[1:], out)
	case "token":
		return token(args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newFlags(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	cfgPath := fs.StringP("config", "c", os.Getenv("CONFIG_PATH"), "config file")
	return fs, cfgPath
}

func migrate(args []string, out io.Writer) error {
	fs, cfgPath := newFlags("migrate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB, nil))
	if err != nil {
		return fmt.Errorf("open %s: %w", database.MaskDSN(cfg.DB.DSN), err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	fmt.Fprintf(out, "migrated %s (%s)\n", cfg.DB.Driver, database.MaskDSN(cfg.DB.DSN))
	return nil
}

func token(args []string, out io.Writer) error {
	fs, cfgPath := newFlags("token")
	uid := fs.String("uid", "", "operator id (required)")
	role := fs.String("role", auth.RoleOperator, "role claim")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *uid == "" {
		return fmt.Errorf("token: --uid is required")
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	j, err := auth.New(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		return err
	}
	tok, err := j.Issue(*uid, *role)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tok)
	fmt.Fprintf(os.Stderr, "expires in %s\n", j.TTL)
	return nil
}
