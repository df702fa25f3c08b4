package middleware

import (
	"roomboard/config"
	"roomboard/internal/logger"

	authController "roomboard/internal/controllers/auth"
)

type Middleware struct {
	Config config.Config
	auth   authController.AuthControllerInterface
	log    logger.Logger
}

func New(config config.Config, auth authController.AuthControllerInterface) Middleware {
	return Middleware{
		Config: config,
		auth:   auth,
		log:    logger.New("middleware"),
	}
}
