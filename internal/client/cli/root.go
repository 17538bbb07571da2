package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/zivohub/internal/clock"
)

func (a *App) getStatus() string {
	s := ""
	if acc, ok := a.account(); ok {
		s = displayName(acc) + " "
	} else if a.isPending() {
		s = "pending "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	a.println(a.tr.T("welcome") + " (type 'help' for commands)")

	go func() {
		a.StartOnlineStatusWatcher(ctx, clock.New(), a.config.OnlineCheckInterval)
	}()

	runREPL(ctx, a, a.getStatus, a.reader)
}
