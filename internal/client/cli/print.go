package cli

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/soulbloom/internal/api"
)

func (app *App) printf(format string, args ...any) {
	fmt.Fprintf(app.out, format, args...)
}

func (app *App) printUser(u *api.User) {
	app.printf("user %s  username=%s", u.ID, u.Username)
	if u.Email != "" {
		app.printf("  email=%s", u.Email)
	}
	if u.Name != "" {
		app.printf("  name=%q", u.Name)
	}
	app.printf("\n")
}

func (app *App) printGarden(g *api.Garden) {
	watered := "never"
	if g.LastWatered != nil {
		watered = g.LastWatered.Local().Format(time.DateTime)
	}
	app.printf("garden %s  created=%s  last watered=%s\n", g.ID, g.CreatedAt.Local().Format(time.DateTime), watered)
}

func (app *App) printFlower(f *api.Flower) {
	garden := "-"
	if f.GardenID != nil {
		garden = *f.GardenID
	}
	app.printf("flower %s  %s  garden=%s", f.ID, f.SelfCareType, garden)
	if f.Description != "" {
		app.printf("  %q", f.Description)
	}
	app.printf("\n")
}
