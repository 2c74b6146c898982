package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/karanxgill/AllHoursCafe/configs"
	"github.com/karanxgill/AllHoursCafe/middlewares"
	"github.com/karanxgill/AllHoursCafe/pkg/kv"
	"github.com/karanxgill/AllHoursCafe/routes"
	"github.com/karanxgill/AllHoursCafe/ws"
)

func main() {
	cfg := configs.LoadConfig()

	configs.ConnectDB(cfg)
	configs.SetupDatabase()
	if err := configs.SeedAdmin(); err != nil {
		log.Println("seed admin:", err)
	}
	if err := configs.SeedMenu(); err != nil {
		log.Println("seed menu:", err)
	}

	// session carts live in redis when available, in-process otherwise
	var store kv.Store
	if cfg.RedisAddr != "" {
		store = kv.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		log.Println("REDIS_ADDR not set, carts held in memory")
		store = kv.NewMemoryStore()
	}

	hub := ws.NewOrderHub()
	go hub.Run()

	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.SessionMiddleware())

	routes.RegisterRoutes(r, configs.DB(), store, cfg, hub)

	log.Println("listening on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
