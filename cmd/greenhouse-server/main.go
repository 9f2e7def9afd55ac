package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/greentech-systems/greenhouse-server/config"
	"github.com/greentech-systems/greenhouse-server/internal/auth"
	"github.com/greentech-systems/greenhouse-server/internal/database"
	"github.com/greentech-systems/greenhouse-server/internal/database/migration"
	"github.com/greentech-systems/greenhouse-server/pkg/server"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"
)

const generatedPasswordLength = 12

func main() {
	app := &cli.App{
		Name:   "greenhouse-server",
		Usage:  "greenhouse environmental monitoring server",
		Action: serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "apply pending migrations and run the HTTP server",
				Action: serveCommand,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations",
				Action: migrateCommand,
			},
			{
				Name:   "init-db",
				Usage:  "drop and recreate all tables, losing existing data",
				Action: initDBCommand,
			},
			{
				Name:  "create-admin",
				Usage: "create an administrator account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "email address for the admin account",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "display name for the admin account",
						Value: "Admin Officer",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "password for the admin account, generated when omitted",
					},
				},
				Action: createAdminCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		return err
	}

	if err := migration.Up(env.DatabaseURL, env.MigrationsFolder); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	sc, err := server.InitializeServer(env)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return sc.Run(ctx)
}

func migrateCommand(c *cli.Context) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		return err
	}

	if err := migration.Up(env.DatabaseURL, env.MigrationsFolder); err != nil {
		return err
	}

	fmt.Println("Migrations applied.")

	return nil
}

func initDBCommand(c *cli.Context) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		return err
	}

	if err := migration.Reset(env.DatabaseURL, env.MigrationsFolder); err != nil {
		return err
	}

	fmt.Println("Initialized the database.")

	return nil
}

func createAdminCommand(c *cli.Context) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", env.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	store := database.NewStore(db)
	email := c.String("email")

	_, err = store.GetEmployeeByEmail(c.Context, email)
	if err == nil {
		fmt.Printf("Admin user with email '%s' already exists.\n", email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("look up employee: %w", err)
	}

	password := c.String("password")
	generated := password == ""
	if generated {
		password, err = auth.GeneratePassword(generatedPasswordLength)
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	companyID, err := uniqueCompanyID(c.Context, store)
	if err != nil {
		return fmt.Errorf("generate company id: %w", err)
	}

	employee, err := store.CreateEmployee(c.Context, database.CreateEmployeeParams{
		Name:         c.String("name"),
		Email:        email,
		PasswordHash: passwordHash,
		Available:    true,
		CompanyID:    companyID,
		IsAdmin:      true,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			fmt.Printf("Admin user with email '%s' already exists.\n", email)
			return nil
		}
		return fmt.Errorf("create admin user: %w", err)
	}

	fmt.Printf("Admin user '%s' created successfully.\n", email)
	fmt.Printf("Company ID: %s\n", employee.CompanyID)
	if generated {
		fmt.Printf("Generated password: %s\n", password)
	}
	fmt.Println("IMPORTANT: Change this password after first login!")

	return nil
}

// uniqueCompanyID draws ids until one is free. Collisions are rare with a
// six digit space, so the loop almost always runs once.
func uniqueCompanyID(ctx context.Context, store *database.Store) (string, error) {
	for {
		companyID, err := auth.GenerateCompanyID()
		if err != nil {
			return "", err
		}

		exists, err := store.CompanyIDExists(ctx, companyID)
		if err != nil {
			return "", err
		}
		if !exists {
			return companyID, nil
		}
	}
}
