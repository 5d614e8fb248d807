// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH. The password is read
// from the first line of stdin.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/investment_ledger_app/internal/utils"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		logger.Error("Failed to read password from stdin", slog.String("error", err.Error()))
		os.Exit(1)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		logger.Error("Password must not be empty")
		os.Exit(1)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(hash)
}
