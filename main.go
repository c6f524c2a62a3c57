package main

import (
	"time"

	"github.com/soraien/raidhall/config"
	"github.com/soraien/raidhall/hub"
	"github.com/soraien/raidhall/routes"
	"github.com/soraien/raidhall/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase()

	// best-effort background removal of expired uploads
	utils.StartUploadCleaner(5 * time.Minute)

	h := hub.New(utils.Logger)
	r := routes.SetupRouter(db, h)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
