package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/same7samy00/ysk-sales/internal/cli"
)

func main() {
	// Env overrides (YSK_DB, YSK_DATA_DIR) may come from a local .env.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
