package handlers

import (
	"go.uber.org/zap"

	"github.com/rogerio-castellano/catalog-console/internal/cache"
	repo "github.com/rogerio-castellano/catalog-console/internal/repo"
)

var (
	productRepo   repo.ProductRepository
	responseCache cache.Cache = cache.Nop{}
	logger                    = zap.NewNop()
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetCache(c cache.Cache) {
	if c == nil {
		c = cache.Nop{}
	}
	responseCache = c
}

func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
