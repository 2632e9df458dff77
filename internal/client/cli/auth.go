package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/soulbloom/internal/common"
)

var errEmptyInput = errors.New("value must not be empty")

func (app *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(app.reader, "Enter email", app.out)
	if err != nil {
		return app.report(err)
	}
	if email == "" {
		return app.report(errEmptyInput)
	}
	username, err := GetSimpleText(app.reader, "Enter username (empty to use email)", app.out)
	if err != nil {
		return app.report(err)
	}
	name, err := GetSimpleText(app.reader, "Enter display name (optional)", app.out)
	if err != nil {
		return app.report(err)
	}

	password, err := GetPassword(app.out)
	if err != nil {
		return app.report(err)
	}
	defer common.WipeByteArray(password)

	u, err := app.client.Register(ctx, email, username, name, password)
	if err != nil {
		return app.report(err)
	}

	app.printf("Registered %s (id %s). Use 'login' to sign in.\n", u.Email, u.ID)
	return nil
}

func (app *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(app.reader, "Enter email", app.out)
	if err != nil {
		return app.report(err)
	}

	password, err := GetPassword(app.out)
	if err != nil {
		return app.report(err)
	}
	defer common.WipeByteArray(password)

	if err := app.client.Login(ctx, email, password); err != nil {
		return app.report(err)
	}

	app.email = common.NormalizeEmail(email)
	app.printf("Login successful\n")
	return nil
}

func (app *App) Logout(context.Context) error {
	app.client.Logout()
	app.email = ""
	app.printf("Logged out\n")
	return nil
}
