package budget

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"themison-be/util"
)

type BudgetService struct {
	Repo  *BudgetRepository
	redis *redis.Client
}

func NewBudgetService(repo *BudgetRepository, redisClient *redis.Client) *BudgetService {
	return &BudgetService{Repo: repo, redis: redisClient}
}

func (s *BudgetService) CreateEntry(req CreateEntryRequest, createdBy int) (*BudgetEntry, error) {
	if req.EntryType != "" && req.EntryType != EntryTypePlanned && req.EntryType != EntryTypeActual {
		return nil, fmt.Errorf("invalid entry_type: %s", req.EntryType)
	}

	e := &BudgetEntry{
		TrialID:     req.TrialID,
		Category:    req.Category,
		EntryType:   req.EntryType,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		IncurredAt:  req.IncurredAt,
		CreatedBy:   createdBy,
	}
	if e.EntryType == "" {
		e.EntryType = EntryTypeActual
	}
	if e.Currency == "" {
		e.Currency = "USD"
	}
	if e.IncurredAt.IsZero() {
		e.IncurredAt = time.Now()
	}
	if err := s.Repo.CreateEntry(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *BudgetService) GetEntriesByTrial(trialID uuid.UUID) ([]BudgetEntry, error) {
	return s.Repo.GetEntriesByTrial(trialID)
}

func (s *BudgetService) DeleteEntry(id int) error {
	return s.Repo.DeleteEntry(id)
}

func (s *BudgetService) GetSummaryByTrial(trialID uuid.UUID) (*TrialBudgetSummary, error) {
	return s.Repo.GetSummaryByTrial(trialID)
}

// GenerateEmbedURL builds a dashboard URL for the requested trial and
// category, stores it behind a short-lived one-time token in redis and
// returns the token.
func (s *BudgetService) GenerateEmbedURL(req *GenerateEmbedRequest) (string, error) {
	var baseURL string

	switch req.Category {
	case "spend":
		baseURL = os.Getenv("DASHBOARD_EMBED_SPEND_URL")
	case "forecast":
		baseURL = os.Getenv("DASHBOARD_EMBED_FORECAST_URL")
	case "custom":
		baseURL = os.Getenv("DASHBOARD_EMBED_CUSTOM_URL")
		if req.StartDate == "" || req.EndDate == "" {
			return "", fmt.Errorf("start_date and end_date are required for custom category")
		}
	default:
		return "", fmt.Errorf("invalid category specified")
	}

	if baseURL == "" {
		return "", fmt.Errorf("dashboard embed URL for category '%s' is not set in .env", req.Category)
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL from .env: %w", err)
	}

	queryParams := parsedURL.Query()
	queryParams.Set("theme", "light")
	queryParams.Set("refresh", "5s")
	queryParams.Set("var-trial", req.TrialID.String())

	if req.Category == "custom" {
		fromMs, err := parseDateToMillis(req.StartDate)
		if err != nil {
			return "", fmt.Errorf("invalid start_date format: %w", err)
		}
		toMs, err := parseDateToMillis(req.EndDate)
		if err != nil {
			return "", fmt.Errorf("invalid end_date format: %w", err)
		}
		queryParams.Set("from", fmt.Sprintf("%d", fromMs))
		queryParams.Set("to", fmt.Sprintf("%d", toMs))
	}

	parsedURL.RawQuery = queryParams.Encode()
	finalURL := parsedURL.String()

	token := util.RandString(32)
	key := "budget_embed_token:" + token
	ctx := context.Background()

	if err := s.redis.Set(ctx, key, finalURL, 1*time.Minute).Err(); err != nil {
		return "", fmt.Errorf("failed to store embed token in redis: %w", err)
	}
	return token, nil
}

func parseDateToMillis(dateString string) (int64, error) {
	t, err := time.Parse("2006-01-02", dateString)
	if err != nil {
		return 0, err
	}
	tStartOfDay := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return tStartOfDay.Unix() * 1000, nil
}
