package main

import (
	"github.com/gin-gonic/gin"

	"github.com/yael201062/rest-api2/internal/app"
	"github.com/yael201062/rest-api2/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
