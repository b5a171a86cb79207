// Package adminctl implements clinicctl, the operator tool for creating
// administrator accounts and bcrypt hashes outside the running server.
package adminctl

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/clinic/internal/server/auth"
	"github.com/dmitrijs2005/clinic/internal/server/config"
	"github.com/dmitrijs2005/clinic/internal/server/models"
	"github.com/dmitrijs2005/clinic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/clinic/internal/server/services"
)

const usage = `Usage: clinicctl <command> [flags]

Commands:
  create-admin -u <username> [-d <dsn>]   create an administrator account
  hash-password                           print a bcrypt hash of a password
`

// AdminCreator is the part of services.AdminService the tool needs.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error)
}

// App is one clinicctl invocation.
type App struct {
	reader *bufio.Reader
	out    io.Writer
	config *config.Config
	// openAdmins connects to the database behind dsn.
	openAdmins func(ctx context.Context, dsn string) (AdminCreator, io.Closer, error)
}

func NewApp(in io.Reader, out io.Writer, cfg *config.Config) *App {
	return &App{
		reader:     bufio.NewReader(in),
		out:        out,
		config:     cfg,
		openAdmins: openPostgresAdmins,
	}
}

func openPostgresAdmins(ctx context.Context, dsn string) (AdminCreator, io.Closer, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("db ping: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return services.NewAdminService(db, rm, nil), db, nil
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errors.New("no command given")
	}

	switch args[0] {
	case "create-admin":
		return a.createAdmin(ctx, args[1:])
	case "hash-password":
		return a.hashPassword()
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) createAdmin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("u", "", "admin username")
	dsn := fs.String("d", a.config.DatabaseDSN, "database DSN")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		name, err := GetSimpleText(a.reader, "Admin username", a.out)
		if err != nil {
			return err
		}
		*username = name
	}

	password, err := GetNewPassword(a.out)
	if err != nil {
		return err
	}

	admins, closer, err := a.openAdmins(ctx, *dsn)
	if err != nil {
		return err
	}
	defer closer.Close()

	admin, err := admins.CreateAdmin(ctx, *username, password)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(a.out, "Admin %q created (id %s)\n", admin.Username, admin.ID)
	return nil
}

func (a *App) hashPassword() error {
	password, err := GetNewPassword(a.out)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, hash)
	return nil
}
