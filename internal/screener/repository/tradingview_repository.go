package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"golang-idx-screener/internal/screener/config"
	"golang-idx-screener/internal/screener/dto"
	"golang-idx-screener/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TradingViewRepository fetches the raw IDX snapshot from the TradingView
// scanner.
type TradingViewRepository interface {
	Scan(ctx context.Context) (*dto.TradingViewScanResponse, error)
}

type tradingViewRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewTradingViewRepository creates a new TradingView scanner repository.
func NewTradingViewRepository(cfg *config.Config, log *logger.Logger) TradingViewRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.TradingView.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)
	return &tradingViewRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: requestLimiter,
	}
}

// Scan issues one scan request with the fixed IDX payload. Non-2xx responses
// become an UpstreamStatusError; a 2xx body without a data array becomes
// ErrUnexpectedResponseFormat. There are no retries.
func (r *tradingViewRepository) Scan(ctx context.Context) (*dto.TradingViewScanResponse, error) {
	url := r.cfg.TradingView.BaseURL + "/indonesia/scan?label-product=screener-stock"
	jsonPayload, err := json.Marshal(dto.NewIDXScanRequest())
	if err != nil {
		return nil, err
	}
	body, err := r.sendRequest(ctx, http.MethodPost, url, string(jsonPayload))
	if err != nil {
		return nil, err
	}

	var response dto.TradingViewScanResponse
	if err := json.Unmarshal(body, &response); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode TradingView response", logger.ErrorField(err))
		return nil, dto.ErrUnexpectedResponseFormat
	}
	if response.Data == nil {
		return nil, dto.ErrUnexpectedResponseFormat
	}

	r.log.DebugContext(ctx, "TradingView scan completed", logger.IntField("total_count", response.TotalCount), logger.IntField("rows", len(*response.Data)))

	return &response, nil
}

func (r *tradingViewRepository) sendRequest(ctx context.Context, method string, url string, jsonStr string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("url", url),
		zap.Int("max_request_per_minute", r.cfg.TradingView.MaxRequestPerMinute),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	var payload *bytes.Buffer
	if jsonStr != "" {
		payload = bytes.NewBufferString(jsonStr)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to TradingView API", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from TradingView API", fields...)
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from TradingView API", fields...)
		return nil, &dto.UpstreamStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
