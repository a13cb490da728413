package contracts

import "encoding/json"

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

type PutCacheRequest struct {
	Value         json.RawMessage `json:"value"`
	OperationType string          `json:"operation_type,omitempty"`
}

type GetCacheResponse struct {
	Key        string          `json:"key"`
	Value      json.RawMessage `json:"value,omitempty"`
	TTLSeconds int             `json:"ttl_seconds"`
	Found      bool            `json:"found"`
}

type PutCacheResponse struct {
	Key        string `json:"key"`
	StoredAt   string `json:"stored_at"`
	TTLSeconds int    `json:"ttl_seconds"`
}

type CacheKeysResponse struct {
	Keys []string `json:"keys"`
}

type MetricsResponse struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

type TrackCommandRequest struct {
	CommandName string `json:"command_name"`
	UserID      string `json:"user_id"`
	GuildID     string `json:"guild_id,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	Success     bool   `json:"success"`
	ErrorKind   string `json:"error_kind,omitempty"`
}

type StatsResponse struct {
	TotalCommands    int64            `json:"total_commands"`
	CommandBreakdown map[string]int64 `json:"command_breakdown"`
	UniqueUsers      int64            `json:"unique_users"`
	SuccessRate      float64          `json:"success_rate"`
	RecentErrors     []string         `json:"recent_errors"`
}

type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
