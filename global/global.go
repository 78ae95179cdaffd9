package global

import (
	"github.com/go-redis/redis/v8"

	"newsvoice/news"
	"newsvoice/store"
)

// Shared process-wide handles, assigned once by config.InitConfig.
var (
	Store    store.Store
	RedisDB  *redis.Client
	News     *news.Orchestrator
	Trending *news.InshortsClient
)
