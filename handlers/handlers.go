package handlers

import (
	"github.com/Kapilpaliwal42/Saas-project/config"
	"github.com/Kapilpaliwal42/Saas-project/media"
	"github.com/Kapilpaliwal42/Saas-project/store"
)

// Handler bundles the dependencies shared by every route.
type Handler struct {
	cfg    *config.Config
	media  media.Service
	videos store.VideoStore
}

func New(cfg *config.Config, mediaService media.Service, videos store.VideoStore) *Handler {
	return &Handler{
		cfg:    cfg,
		media:  mediaService,
		videos: videos,
	}
}
