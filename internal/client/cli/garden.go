package cli

import (
	"context"

	"github.com/dmitrijs2005/soulbloom/internal/api"
)

func (app *App) CreateGarden(ctx context.Context) error {
	g, err := app.client.CreateGarden(ctx)
	if err != nil {
		return app.report(err)
	}
	app.printGarden(g)
	return nil
}

func (app *App) WaterGarden(ctx context.Context, gardenID string) error {
	g, err := app.client.WaterGarden(ctx, gardenID)
	if err != nil {
		return app.report(err)
	}
	app.printGarden(g)
	return nil
}

func (app *App) ShowGarden(ctx context.Context, gardenID string) error {
	g, err := app.client.GetGarden(ctx, gardenID)
	if err != nil {
		return app.report(err)
	}
	app.printGarden(g)
	for i := range g.Flowers {
		app.printFlower(&g.Flowers[i])
	}
	return nil
}

func (app *App) Gardens(ctx context.Context) error {
	list, err := app.client.ListGardens(ctx)
	if err != nil {
		return app.report(err)
	}
	if len(list) == 0 {
		app.printf("No gardens yet, use 'garden-create'\n")
	}
	for i := range list {
		app.printGarden(&list[i])
	}
	return nil
}

func (app *App) AddFlower(ctx context.Context, gardenID string) error {
	kind, err := GetSimpleText(app.reader, "Self-care type (e.g. walk, journal)", app.out)
	if err != nil {
		return app.report(err)
	}
	if kind == "" {
		return app.report(errEmptyInput)
	}
	desc, err := GetSimpleText(app.reader, "Description (optional)", app.out)
	if err != nil {
		return app.report(err)
	}

	f, err := app.client.AddFlower(ctx, api.AddFlowerRequest{SelfCareType: kind, Description: desc, GardenID: gardenID})
	if err != nil {
		return app.report(err)
	}
	app.printFlower(f)
	return nil
}

func (app *App) UpdateFlower(ctx context.Context, flowerID string) error {
	kind, err := GetSimpleText(app.reader, "New self-care type (empty to keep)", app.out)
	if err != nil {
		return app.report(err)
	}
	desc, err := GetSimpleText(app.reader, "New description (empty to keep)", app.out)
	if err != nil {
		return app.report(err)
	}
	gardenID, err := GetSimpleText(app.reader, "Move to garden id (empty to keep)", app.out)
	if err != nil {
		return app.report(err)
	}

	f, err := app.client.UpdateFlower(ctx, api.UpdateFlowerRequest{
		FlowerID:     flowerID,
		SelfCareType: kind,
		Description:  desc,
		GardenID:     gardenID,
	})
	if err != nil {
		return app.report(err)
	}
	app.printFlower(f)
	return nil
}

func (app *App) DeleteFlower(ctx context.Context, flowerID string) error {
	f, err := app.client.DeleteFlower(ctx, flowerID)
	if err != nil {
		return app.report(err)
	}
	app.printf("Deleted ")
	app.printFlower(f)
	return nil
}

func (app *App) Flowers(ctx context.Context) error {
	list, err := app.client.ListFlowers(ctx)
	if err != nil {
		return app.report(err)
	}
	if len(list) == 0 {
		app.printf("No flowers yet, use 'flower-add'\n")
	}
	for i := range list {
		app.printFlower(&list[i])
	}
	return nil
}
