package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"studynotes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: migrate [-timeout 1m] <%s|%s|%s|%s>\n",
		database.CommandUp, database.CommandDown, database.CommandStatus, database.CommandReset)
	flag.PrintDefaults()
}

func main() {
	timeout := flag.Duration("timeout", time.Minute, "overall migration timeout")
	flag.Usage = usage
	flag.Parse()

	command := database.CommandUp
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	if err := godotenv.Load(); err != nil {
		color.Yellow("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		color.Red("Failed to access sql.DB: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	color.Cyan("Running migrations: %s", command)
	if err := database.Migrate(ctx, sqlDB, command); err != nil {
		color.Red("Migration %s failed: %v", command, err)
		os.Exit(1)
	}
	color.Green("Migration %s completed", command)
}
