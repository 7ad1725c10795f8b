package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"exam_prep_backend/internal/config"
	"exam_prep_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const newsCacheKey = "news:daily"

// NewsService fetches current-affairs headlines from an external news API
// and caches the response in Redis so the upstream quota is spent at most
// once per cache window.
type NewsService struct {
	config config.NewsConfig
	Redis  *redis.Client
	client *http.Client
}

func NewNewsService(cfg config.NewsConfig, redisClient *redis.Client) *NewsService {
	return &NewsService{
		config: cfg,
		Redis:  redisClient,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// DailyDigest serves the cached headlines, fetching upstream on a miss.
func (s *NewsService) DailyDigest(ctx context.Context) ([]NewsArticle, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, newsCacheKey).Result()
		if err == nil {
			var articles []NewsArticle
			if json.Unmarshal([]byte(cached), &articles) == nil {
				return articles, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("news cache read failed", zap.Error(err))
		}
	}

	articles, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		ttl := time.Duration(s.config.CacheMinutes) * time.Minute
		if ttl <= 0 {
			ttl = time.Hour
		}
		if raw, err := json.Marshal(articles); err == nil {
			if err := s.Redis.Set(ctx, newsCacheKey, raw, ttl).Err(); err != nil {
				logger.Log.Warn("news cache write failed", zap.Error(err))
			}
		}
	}
	return articles, nil
}

func (s *NewsService) fetch(ctx context.Context) ([]NewsArticle, error) {
	url := fmt.Sprintf("%s/top-headlines?category=general&pageSize=30&apiKey=%s", s.config.BaseURL, s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("news API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var parsed newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	articles := make([]NewsArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
