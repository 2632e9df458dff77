package grpc

import (
	"github.com/dmitrijs2005/soulbloom/internal/api"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
)

func userToAPI(u *models.User) api.User {
	return api.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// publicUserToAPI keeps only what other users may see: the id and username.
func publicUserToAPI(u *models.User) api.User {
	return api.User{ID: u.ID, Username: u.Username}
}

func flowerToAPI(f *models.Flower) api.Flower {
	return api.Flower{
		ID:           f.ID,
		SelfCareType: f.SelfCareType,
		Description:  f.Description,
		UserID:       f.UserID,
		GardenID:     f.GardenID,
		CreatedAt:    f.CreatedAt,
	}
}

func gardenToAPI(g *models.Garden) api.Garden {
	out := api.Garden{
		ID:          g.ID,
		UserID:      g.UserID,
		LastWatered: g.LastWatered,
		CreatedAt:   g.CreatedAt,
	}
	for i := range g.Flowers {
		out.Flowers = append(out.Flowers, flowerToAPI(&g.Flowers[i]))
	}
	return out
}
