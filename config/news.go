package config

import (
	"newsvoice/global"
	"newsvoice/news"
)

func initNews() {
	fetcher := news.NewNewsAPIClient(AppConfig.NewsAPI.Key, AppConfig.NewsAPI.Country)
	global.News = news.NewOrchestrator(global.Store, fetcher)
	global.Trending = news.NewInshortsClient()
}
