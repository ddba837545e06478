package services

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"nooryx-gateway/internal/cache"
	"nooryx-gateway/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// StatusService expone el estado operacional del gateway: métricas de
// requests, caché, Redis y proceso
type StatusService interface {
	GetStatus(ctx context.Context) *models.StatusResponse
	RecordRequest(data models.RequestData)
	GetCacheStats() models.CacheMetrics
	GetSystemStats() models.SystemMetrics
	GetRedisStats(ctx context.Context) models.RedisMetrics
}

type statusService struct {
	logger      *zap.Logger
	environment string
	redisClient *redis.Client
	queryCache  *cache.QueryCache

	requestsMutex sync.RWMutex
	requests      map[string]*models.EndpointMetrics
	slowRequests  []models.SlowRequest
	errors        []models.RequestError
	totalRequests int64

	startTime time.Time
}

// NewStatusService crea una nueva instancia del servicio. redisClient
// puede ser nil cuando se corre sin Redis.
func NewStatusService(logger *zap.Logger, environment string, redisClient *redis.Client, queryCache *cache.QueryCache) StatusService {
	return &statusService{
		logger:      logger,
		environment: environment,
		redisClient: redisClient,
		queryCache:  queryCache,
		requests:    make(map[string]*models.EndpointMetrics),
		startTime:   time.Now(),
	}
}

func (s *statusService) RecordRequest(data models.RequestData) {
	s.requestsMutex.Lock()
	defer s.requestsMutex.Unlock()

	endpointKey := fmt.Sprintf("%s %s", data.Method, data.Endpoint)

	metrics, exists := s.requests[endpointKey]
	if !exists {
		metrics = &models.EndpointMetrics{}
		s.requests[endpointKey] = metrics
	}

	metrics.Count++
	durationMs := data.Duration.Milliseconds()
	metrics.TotalTime += durationMs
	metrics.AvgTime = float64(metrics.TotalTime) / float64(metrics.Count)

	s.totalRequests++

	// Registrar request lento (> 1000ms)
	if durationMs > 1000 {
		s.slowRequests = append(s.slowRequests, models.SlowRequest{
			Endpoint:  endpointKey,
			Duration:  durationMs,
			Timestamp: data.Timestamp,
		})
		// Mantener solo los últimos 100
		if len(s.slowRequests) > 100 {
			s.slowRequests = s.slowRequests[1:]
		}
	}

	if data.Error != nil || data.StatusCode >= 400 {
		s.errors = append(s.errors, models.RequestError{
			Endpoint:   endpointKey,
			StatusCode: data.StatusCode,
			Timestamp:  data.Timestamp,
		})
		if len(s.errors) > 100 {
			s.errors = s.errors[1:]
		}
	}
}

func (s *statusService) GetStatus(ctx context.Context) *models.StatusResponse {
	s.requestsMutex.RLock()
	requestMetrics := s.calculateRequestMetrics()
	s.requestsMutex.RUnlock()

	return &models.StatusResponse{
		Requests:  requestMetrics,
		Cache:     s.GetCacheStats(),
		System:    s.GetSystemStats(),
		Redis:     s.GetRedisStats(ctx),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *statusService) calculateRequestMetrics() models.RequestMetrics {
	var endpoints []struct {
		key     string
		metrics *models.EndpointMetrics
	}

	for key, metrics := range s.requests {
		endpoints = append(endpoints, struct {
			key     string
			metrics *models.EndpointMetrics
		}{key, metrics})
	}

	sort.Slice(endpoints, func(i, j int) bool {
		return endpoints[i].metrics.Count > endpoints[j].metrics.Count
	})

	var topEndpoints []models.TopEndpoint
	for i, endpoint := range endpoints {
		if i >= 10 {
			break
		}
		topEndpoints = append(topEndpoints, models.TopEndpoint{
			Endpoint:  endpoint.key,
			Count:     endpoint.metrics.Count,
			AvgTimeMs: fmt.Sprintf("%.2fms", endpoint.metrics.AvgTime),
		})
	}

	byEndpoint := make(map[string]models.EndpointMetrics)
	for key, metrics := range s.requests {
		byEndpoint[key] = *metrics
	}

	return models.RequestMetrics{
		ByEndpoint:        byEndpoint,
		SlowRequests:      s.slowRequests,
		Errors:            s.errors,
		TotalRequests:     int(s.totalRequests),
		SlowRequestsCount: len(s.slowRequests),
		ErrorsCount:       len(s.errors),
		TopEndpoints:      topEndpoints,
	}
}

func (s *statusService) GetCacheStats() models.CacheMetrics {
	stats := s.queryCache.GetStats()

	var hitRate float64
	if stats.TotalRequests > 0 {
		hitRate = float64(stats.Hits) / float64(stats.TotalRequests)
	}

	return models.CacheMetrics{
		TotalKeys:         stats.TotalKeys,
		HitRate:           hitRate,
		HitRatePercentage: fmt.Sprintf("%.2f%%", hitRate*100),
		TotalHits:         stats.Hits,
		TotalMisses:       stats.Misses,
		TotalRequests:     stats.TotalRequests,
	}
}

func (s *statusService) GetSystemStats() models.SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(s.startTime).Seconds()

	return models.SystemMetrics{
		MemoryUsageMB: fmt.Sprintf("%.2f", float64(m.Alloc)/1024/1024),
		HeapUsedMB:    fmt.Sprintf("%.2f", float64(m.HeapAlloc)/1024/1024),
		Uptime:        uptime,
		UptimeHours:   fmt.Sprintf("%.2fh", uptime/3600),
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS,
		Environment:   s.environment,
	}
}

func (s *statusService) GetRedisStats(ctx context.Context) models.RedisMetrics {
	if s.redisClient == nil {
		return models.RedisMetrics{Connected: false, Status: "disabled"}
	}

	_, err := s.redisClient.Ping(ctx).Result()
	connected := err == nil

	var keys int
	var memoryMB string

	if connected {
		if keysResult, err := s.redisClient.DBSize(ctx).Result(); err == nil {
			keys = int(keysResult)
		}

		if info, err := s.redisClient.Info(ctx, "memory").Result(); err == nil {
			for _, line := range strings.Split(info, "\n") {
				if strings.HasPrefix(line, "used_memory:") {
					raw := strings.TrimSpace(strings.TrimPrefix(line, "used_memory:"))
					if memBytes, err := strconv.ParseInt(raw, 10, 64); err == nil {
						memoryMB = fmt.Sprintf("%.2f MB", float64(memBytes)/1024/1024)
					}
					break
				}
			}
		}
	}

	status := "offline"
	if connected {
		status = "online"
	}

	return models.RedisMetrics{
		Connected: connected,
		Keys:      keys,
		MemoryMB:  memoryMB,
		Status:    status,
	}
}
