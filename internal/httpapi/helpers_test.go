package httpapi_test

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/cabinetroute/internal/logging"
)

func slogJSON(w io.Writer) *slog.Logger {
	log, err := logging.New("debug", "json", w)
	if err != nil {
		panic(err)
	}

	return log
}
