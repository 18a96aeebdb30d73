package sample

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openplm/plmseed/internal/client"
	"github.com/openplm/plmseed/internal/plm"
)

// demoPassword is shared by every generated demo account.
const demoPassword = "password"

// demoLogins are the workspace members created by the scenario, beyond the
// caller's own account.
var demoLogins = []string{
	"rob", "joe", "steve", "mickey", "bill",
	"rendal", "winie", "titi", "toto", "tata",
}

// createAccounts registers the caller's account and the demo accounts. Only
// the caller's login may already exist; a conflict on any other login means
// the scenario already ran.
func (l *Loader) createAccounts(ctx context.Context) error {
	guest := client.New(l.opts.Host)

	caller := plm.Account{
		Login:    l.opts.Login,
		Name:     l.opts.Login,
		Email:    l.opts.Login + "@example.com",
		Language: "en",
		TimeZone: "Europe/London",
		Password: l.opts.Password,
	}
	if err := guest.CreateAccount(ctx, caller); err != nil {
		if !client.IsConflict(err) {
			return fmt.Errorf("create account %s: %w", l.opts.Login, err)
		}
		slog.Info("account already exists, reusing it", "login", l.opts.Login)
	}

	for _, login := range demoLogins {
		account := plm.Account{
			Login:    login,
			Name:     login,
			Email:    login + "@example.com",
			Language: "en",
			TimeZone: "Europe/London",
			Password: demoPassword,
		}
		if err := guest.CreateAccount(ctx, account); err != nil {
			return fmt.Errorf("create account %s: %w", login, err)
		}
	}

	admin, err := client.Login(ctx, l.opts.Host, l.opts.Login, l.opts.Password)
	if err != nil {
		return err
	}
	l.admin = admin
	l.clients[l.opts.Login] = admin
	return nil
}
