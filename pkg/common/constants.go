package common

const (
	RedisKeyScannerParams = "screener.params"
	RedisKeyWatchlist     = "screener.watchlist"

	CacheKeyScanSnapshot = "screener.scan.snapshot"
)
