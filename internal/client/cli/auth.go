package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zivohub/internal/client/models"
	"github.com/dmitrijs2005/zivohub/internal/client/services"
	"github.com/dmitrijs2005/zivohub/internal/common"
)

var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

func (a *App) promptChannel() (models.Channel, error) {
	s, err := getSimpleText(a.reader, "Use email or phone? [email]", a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return models.ChannelEmail, nil
	}
	ch, err := models.ParseChannel(s)
	if err != nil {
		a.println(err.Error())
		return "", err
	}
	return ch, nil
}

func (a *App) promptIdentity() (models.Identity, error) {
	ch, err := a.promptChannel()
	if err != nil {
		return models.Identity{}, err
	}
	prompt := "Email address"
	if ch == models.ChannelPhone {
		prompt = "Phone number"
	}
	value, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return models.Identity{}, err
	}
	return models.NewIdentity(ch, value), nil
}

// Signup asks for the signup form and registers the account. On success the
// confirmation instructions for the chosen channel are shown.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}

	id, err := a.promptIdentity()
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password: ", a.out)
	if err != nil {
		return err
	}

	confirm, err := getPassword(a.reader, "Confirm password: ", a.out)
	if err != nil {
		common.WipeByteArray(password)
		return err
	}

	err = a.flow.Signup(ctx, services.SignupRequest{
		Name:            name,
		Identity:        id,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return a.fail(ctx, "signup", err)
	}

	a.println(a.tr.T("signup_success"))
	a.printConfirmation()
	return nil
}

func (a *App) printConfirmation() {
	p, ok := a.flow.Pending()
	if !ok {
		return
	}

	suffix := "email"
	if p.Channel == models.ChannelPhone {
		suffix = "sms"
	}

	a.println(a.tr.T("check_" + suffix))
	a.println(a.tr.T("confirmation_sent"), p.Identity.Value())
	a.println(a.tr.T(suffix + "_instructions"))
	if p.Channel == models.ChannelEmail {
		a.println(a.tr.T("spam_check"))
		a.println(a.tr.T("link_expiry"))
	}
	fmt.Fprintf(a.out, "  confirm  %s\n", a.tr.T("confirmed_"+suffix))
	fmt.Fprintf(a.out, "  resend   %s\n", a.tr.T("resend_"+suffix))
	a.println(a.tr.T(suffix + "_footer"))
}

// Confirm checks whether the pending account has been confirmed and shows
// the dashboard once it has.
func (a *App) Confirm(ctx context.Context) error {
	ok, err := a.flow.CheckConfirmed(ctx)
	if err != nil {
		return a.fail(ctx, "confirmation check", err)
	}
	if !ok {
		a.println(a.tr.T("not_confirmed_yet"))
		a.println(a.tr.T("login_after_confirm"))
		return nil
	}

	a.println(a.tr.T("confirmed"))
	return a.Dashboard(ctx)
}

// Resend re-dispatches the confirmation. While the cooldown runs only the
// remaining seconds are shown.
func (a *App) Resend(ctx context.Context) error {
	err := a.flow.ResendConfirmation(ctx)
	if errors.Is(err, services.ErrResendCooldown) {
		a.println(a.tr.T("resend_countdown", "seconds", a.flow.ResendRemaining()))
		return err
	}
	if err != nil {
		return a.fail(ctx, "resend", err)
	}

	a.println(a.tr.T("resend_done"))
	a.println(a.tr.T("resend_countdown", "seconds", a.flow.ResendRemaining()))
	return nil
}

// Login asks for the identity and password and shows the dashboard on success.
func (a *App) Login(ctx context.Context) error {
	id, err := a.promptIdentity()
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password: ", a.out)
	if err != nil {
		return err
	}

	if err := a.flow.Login(ctx, services.LoginRequest{Identity: id, Password: password}); err != nil {
		return a.fail(ctx, "login", err)
	}

	a.println(a.tr.T("login_success"))
	return a.Dashboard(ctx)
}
