package services

import (
	"sort"
	"strings"
	"sync"
	"time"

	"research-brief-api/pkg/intent"

	"github.com/gin-gonic/gin"
)

// LogEntry は単一のリクエストログを表します。
type LogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
}

// 保持するログの上限
const maxLogEntries = 10000

// MonitoringService はAPIのリクエストログと判定されたIntentの分布を記録します。
type MonitoringService struct {
	logs         []LogEntry
	intentCounts map[intent.Intent]int
	mu           sync.RWMutex
	now          func() time.Time
}

// NewMonitoringService は新しいMonitoringServiceを生成します。
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs:         make([]LogEntry, 0),
		intentCounts: make(map[intent.Intent]int),
		now:          time.Now,
	}
}

// LogRequest はリクエストを記録します。
func (s *MonitoringService) LogRequest(entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogEntries {
		s.logs = append([]LogEntry(nil), s.logs[len(s.logs)-maxLogEntries:]...)
	}
}

// RecordIntent は判定されたIntentを集計に加えます。
func (s *MonitoringService) RecordIntent(mode intent.Intent) {
	if !mode.Valid() {
		mode = intent.Mixed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intentCounts[mode]++
}

// LoggingMiddleware はリクエスト情報を記録するGinミドルウェアです。
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := s.now()

		c.Next()

		// 管理・モニタリング系は集計から除外
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(LogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: s.now().Sub(start),
		})
	}
}

// HourlyCount は1時間ごとのリクエスト数です。
type HourlyCount struct {
	Time     string `json:"time"`
	Requests int    `json:"requests"`
}

// EndpointLatency はエンドポイントごとの平均応答時間（ミリ秒）です。
type EndpointLatency struct {
	Endpoint     string `json:"endpoint"`
	ResponseTime int64  `json:"responseTime"`
}

// DashboardData はダッシュボードに表示するための集計済みデータです。
type DashboardData struct {
	RequestsOverTime   []HourlyCount         `json:"requestsOverTime"`
	Endpoints          map[string]int        `json:"endpoints"`
	StatusCodes        map[string]int        `json:"statusCodes"`
	AvgResponseTimes   []EndpointLatency     `json:"avgResponseTimes"`
	RecentErrors       []LogEntry            `json:"recentErrors"`
	IntentDistribution map[intent.Intent]int `json:"intentDistribution"`
}

// GetDashboardData は指定された期間のログを集計してダッシュボード用データを返します。
func (s *MonitoringService) GetDashboardData(periodHours int) DashboardData {
	if periodHours <= 0 {
		periodHours = 24
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now().UTC()
	since := now.Add(-time.Duration(periodHours) * time.Hour)

	filtered := make([]LogEntry, 0)
	for _, entry := range s.logs {
		if entry.Timestamp.After(since) {
			filtered = append(filtered, entry)
		}
	}

	// 過去から現在へ向かう順で時間バケットを作る
	requests := make([]HourlyCount, periodHours)
	bucketIndex := make(map[time.Time]int, periodHours)
	for i := 0; i < periodHours; i++ {
		bucket := now.Add(-time.Duration(periodHours-1-i) * time.Hour).Truncate(time.Hour)
		bucketIndex[bucket] = i
		requests[i] = HourlyCount{Time: bucket.Format("15:00")}
	}

	endpoints := make(map[string]int)
	statusCodes := map[string]int{
		"2xx Success":      0,
		"4xx Client Error": 0,
		"5xx Server Error": 0,
	}
	latencySum := make(map[string]time.Duration)

	for _, entry := range filtered {
		if i, ok := bucketIndex[entry.Timestamp.UTC().Truncate(time.Hour)]; ok {
			requests[i].Requests++
		}
		endpoints[entry.Path]++
		latencySum[entry.Path] += entry.ResponseTime

		switch {
		case entry.StatusCode >= 200 && entry.StatusCode < 300:
			statusCodes["2xx Success"]++
		case entry.StatusCode >= 400 && entry.StatusCode < 500:
			statusCodes["4xx Client Error"]++
		case entry.StatusCode >= 500:
			statusCodes["5xx Server Error"]++
		}
	}

	latencies := make([]EndpointLatency, 0, len(latencySum))
	for path, total := range latencySum {
		latencies = append(latencies, EndpointLatency{
			Endpoint:     path,
			ResponseTime: total.Milliseconds() / int64(endpoints[path]),
		})
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i].Endpoint < latencies[j].Endpoint })

	// 新しい順に最大10件
	recentErrors := make([]LogEntry, 0)
	for i := len(filtered) - 1; i >= 0 && len(recentErrors) < 10; i-- {
		if filtered[i].StatusCode >= 500 {
			recentErrors = append(recentErrors, filtered[i])
		}
	}

	distribution := make(map[intent.Intent]int, len(s.intentCounts))
	for _, mode := range intent.All() {
		distribution[mode] = s.intentCounts[mode]
	}

	return DashboardData{
		RequestsOverTime:   requests,
		Endpoints:          endpoints,
		StatusCodes:        statusCodes,
		AvgResponseTimes:   latencies,
		RecentErrors:       recentErrors,
		IntentDistribution: distribution,
	}
}
