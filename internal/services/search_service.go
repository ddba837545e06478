package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nooryx-gateway/internal/apiclient"
	"nooryx-gateway/internal/cache"
	"nooryx-gateway/internal/models"

	"go.uber.org/zap"
)

// Largo mínimo de query para pegarle al upstream; por debajo se
// responde vacío sin salir del proceso
const minQueryLength = 2

// TTL corto: el typeahead tolera resultados apenas viejos pero no
// quiere martillar el upstream con cada tecla
const searchTTL = 15 * time.Second

// SearchService typeahead de SKUs y ubicaciones
type SearchService interface {
	Search(ctx context.Context, query, kind string) ([]models.SearchResult, error)
}

type searchService struct {
	api    apiclient.InventoryAPI
	cache  *cache.QueryCache
	logger *zap.Logger
}

// NewSearchService crea una nueva instancia del servicio
func NewSearchService(api apiclient.InventoryAPI, queryCache *cache.QueryCache, logger *zap.Logger) SearchService {
	return &searchService{
		api:    api,
		cache:  queryCache,
		logger: logger,
	}
}

func (s *searchService) Search(ctx context.Context, query, kind string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return []models.SearchResult{}, nil
	}

	// La clave normaliza mayúsculas para compartir caché entre prefijos
	// equivalentes
	key := fmt.Sprintf("search:%s:%s", kind, strings.ToLower(query))

	var results []models.SearchResult
	if s.cache.Get(ctx, key, &results) {
		return results, nil
	}

	results, err := s.api.Search(ctx, query, kind)
	if err != nil {
		s.logger.Error("Error en búsqueda upstream",
			zap.String("query", query),
			zap.String("kind", kind),
			zap.Error(err))
		return nil, fmt.Errorf("buscando %q: %w", query, err)
	}

	if results == nil {
		results = []models.SearchResult{}
	}

	s.cache.SetWithTTL(ctx, key, results, searchTTL)
	return results, nil
}
