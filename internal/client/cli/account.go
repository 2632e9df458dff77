package cli

import (
	"context"
	"strings"
)

func (app *App) Me(ctx context.Context) error {
	u, err := app.client.Me(ctx)
	if err != nil {
		return app.report(err)
	}
	app.printUser(u)
	return nil
}

func (app *App) Rename(ctx context.Context) error {
	username, err := GetSimpleText(app.reader, "New username (empty to keep)", app.out)
	if err != nil {
		return app.report(err)
	}
	name, err := GetSimpleText(app.reader, "New display name (empty to keep)", app.out)
	if err != nil {
		return app.report(err)
	}

	u, err := app.client.UpdateMe(ctx, username, name)
	if err != nil {
		return app.report(err)
	}
	app.printUser(u)
	return nil
}

func (app *App) DeleteAccount(ctx context.Context) error {
	answer, err := GetSimpleText(app.reader, "This deletes your account with all gardens and flowers. Type 'yes' to confirm", app.out)
	if err != nil {
		return app.report(err)
	}
	if !strings.EqualFold(answer, "yes") {
		app.printf("Cancelled\n")
		return nil
	}

	u, err := app.client.DeleteMe(ctx)
	if err != nil {
		return app.report(err)
	}
	app.email = ""
	app.printf("Account %s deleted\n", u.Email)
	return nil
}

func (app *App) Users(ctx context.Context) error {
	list, err := app.client.ListUsers(ctx)
	if err != nil {
		return app.report(err)
	}
	for i := range list {
		app.printUser(&list[i])
	}
	if len(list) == 0 {
		app.printf("No users\n")
	}
	return nil
}
