package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// errNotDeleted is returned when a delete was declined or rejected.
var errNotDeleted = errors.New("not deleted")

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func deleted(ok bool, a *App) error {
	if ok {
		return nil
	}
	if _, posted := a.board.Current(); !posted {
		return fmt.Errorf("%w: cancelled", errNotDeleted)
	}
	return errNotDeleted
}

// keepDraft writes the rejected form so the next attempt can start from
// it with --resume.
func keepDraft(ctx context.Context, cmd *cobra.Command, a *App, kind string, draft any) {
	path, err := a.drafts.Save(ctx, kind, draft)
	if err != nil {
		a.logger.WarnContext(ctx, "failed to keep draft", slog.String("kind", kind), slog.String("error", err.Error()))
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "draft kept in %s, retry with --resume\n", path)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
