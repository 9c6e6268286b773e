package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"portfolio/app/config"
	"portfolio/app/logging"
	"portfolio/app/repositories"
)

var errNoDataPath = errors.New("storage.path is not set; the in-memory store has nothing to manage")

// openStore opens the configured store with Badger logging routed through
// logger.
func openStore(cfg *config.Config, logger *zap.Logger) (*repositories.Store, error) {
	return repositories.Open(cfg.Storage.Path, logging.NewBadgerLogger(logger))
}

// confirm asks a yes/no question and defaults to no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.TrimSpace(answer)
	return answer == "y" || answer == "Y"
}
