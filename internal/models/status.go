package models

import "time"

// ===== STATUS / MONITORING =====

// RequestData datos de un request procesado, registrado por el middleware
type RequestData struct {
	Method     string
	Endpoint   string
	Duration   time.Duration
	StatusCode int
	Error      error
	Timestamp  string
}

// EndpointMetrics métricas acumuladas por endpoint
type EndpointMetrics struct {
	Count     int     `json:"count"`
	TotalTime int64   `json:"total_time"`
	AvgTime   float64 `json:"avg_time"`
}

// SlowRequest request que superó el umbral de latencia
type SlowRequest struct {
	Endpoint  string `json:"endpoint"`
	Duration  int64  `json:"duration_ms"`
	Timestamp string `json:"timestamp"`
}

// RequestError request que terminó en error
type RequestError struct {
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"status_code"`
	Timestamp  string `json:"timestamp"`
}

// TopEndpoint endpoint más consultado
type TopEndpoint struct {
	Endpoint  string `json:"endpoint"`
	Count     int    `json:"count"`
	AvgTimeMs string `json:"avg_time_ms"`
}

// RequestMetrics métricas agregadas de requests
type RequestMetrics struct {
	ByEndpoint        map[string]EndpointMetrics `json:"by_endpoint"`
	SlowRequests      []SlowRequest              `json:"slow_requests"`
	Errors            []RequestError             `json:"errors"`
	TotalRequests     int                        `json:"total_requests"`
	SlowRequestsCount int                        `json:"slow_requests_count"`
	ErrorsCount       int                        `json:"errors_count"`
	TopEndpoints      []TopEndpoint              `json:"top_endpoints"`
}

// CacheMetrics métricas del caché de consultas
type CacheMetrics struct {
	TotalKeys         int     `json:"total_keys"`
	HitRate           float64 `json:"hit_rate"`
	HitRatePercentage string  `json:"hit_rate_percentage"`
	TotalHits         int64   `json:"total_hits"`
	TotalMisses       int64   `json:"total_misses"`
	TotalRequests     int64   `json:"total_requests"`
}

// SystemMetrics métricas del proceso
type SystemMetrics struct {
	MemoryUsageMB string  `json:"memory_usage_mb"`
	HeapUsedMB    string  `json:"heap_used_mb"`
	Uptime        float64 `json:"uptime_seconds"`
	UptimeHours   string  `json:"uptime_hours"`
	GoVersion     string  `json:"go_version"`
	Platform      string  `json:"platform"`
	Environment   string  `json:"environment"`
}

// RedisMetrics estado de la conexión Redis
type RedisMetrics struct {
	Connected bool   `json:"connected"`
	Keys      int    `json:"keys"`
	MemoryMB  string `json:"memory_mb"`
	Status    string `json:"status"`
}

// StatusResponse snapshot completo del estado del gateway, servido por
// el endpoint de status y empujado por el feed websocket
type StatusResponse struct {
	Requests  RequestMetrics `json:"requests"`
	Cache     CacheMetrics   `json:"cache"`
	System    SystemMetrics  `json:"system"`
	Redis     RedisMetrics   `json:"redis"`
	Timestamp string         `json:"timestamp"`
}
