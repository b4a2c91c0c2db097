package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/shopprobe/shopprobe/internal/browser"
	internalcli "github.com/shopprobe/shopprobe/internal/cli"
	"github.com/shopprobe/shopprobe/internal/config"
	"github.com/shopprobe/shopprobe/internal/database"
	"github.com/shopprobe/shopprobe/internal/repository"
	"github.com/shopprobe/shopprobe/internal/services"
)

var version = "0.1.0"

// VerifyCommand returns the verify command
func VerifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Run a verification scenario against the storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "scenario",
				Usage:    "Path to the scenario JSON file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "skip-store",
				Usage: "Do not persist the run report to Postgres",
			},
		},
		Action: func(c *cli.Context) error {
			scenario, err := config.LoadScenario(c.String("scenario"))
			if err != nil {
				return fmt.Errorf("failed to load scenario: %w", err)
			}

			browserConfig, err := config.LoadBrowserConfig()
			if err != nil {
				return fmt.Errorf("missing required browser configuration: %w", err)
			}

			// Connect to the run-report store unless persistence is skipped
			var runs services.RunRepository
			if !c.Bool("skip-store") {
				if err := database.Connect(); err != nil {
					return fmt.Errorf("failed to connect to database: %w", err)
				}
				defer database.Close()

				if err := database.RunMigrations(); err != nil {
					return fmt.Errorf("failed to run database migrations: %w", err)
				}
				runs = repository.NewRunRepository()
			}

			driver, err := browser.Launch(browserConfig)
			if err != nil {
				return err
			}
			defer driver.Close()

			page, err := driver.NewPage()
			if err != nil {
				return err
			}
			defer page.Close()

			store := browser.NewStorefront(page, browserConfig)
			service := services.NewVerifyService(store, runs)

			return internalcli.RunVerify(internalcli.VerifyDependencies{
				Service:  service,
				Scenario: scenario,
				Out:      os.Stdout,
			})
		},
	}
}

// RunsCommand returns the runs command
func RunsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "List recent stored verification runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to list",
				Value: 10,
			},
		},
		Action: func(c *cli.Context) error {
			if err := database.Connect(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			return internalcli.RunList(repository.NewRunRepository(), c.Int("limit"), os.Stdout)
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "shopprobe",
		Usage:   "Storefront sort and cart verification harness",
		Version: version,
		Commands: []*cli.Command{
			VerifyCommand(),
			RunsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
