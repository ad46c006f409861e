package subscription

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joshu-sajeev/jobboard/common"
	"github.com/joshu-sajeev/jobboard/internal/dto"
	"github.com/joshu-sajeev/jobboard/internal/models"
)

type SubscriptionService struct {
	repo SubscriptionRepoInterface
	log  *slog.Logger
}

func NewSubscriptionService(repo SubscriptionRepoInterface, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log.With(slog.String("component", "subscriptions")),
	}
}

var _ SubscriptionServiceInterface = (*SubscriptionService)(nil)

// Subscribe records job alert preferences for an email address. Subscribing
// again replaces the preferences and requires confirmation again.
func (s *SubscriptionService) Subscribe(ctx context.Context, req *dto.SubscribeDTO) (*dto.SubscribedDTO, error) {
	sub := models.EmailSubscription{
		Email:         req.Email,
		Tags:          normalizeList(req.Tags),
		JobTypes:      normalizeList(req.JobTypes),
		LocationTypes: normalizeList(req.LocationTypes),
		Confirmed:     false,
	}

	if err := s.repo.Upsert(ctx, &sub); err != nil {
		s.log.Error("subscription upsert failed", slog.Any("error", err))
		return nil, common.FromStoreError(err, "save subscription")
	}

	s.log.Info("subscription saved", slog.Int("tags", len(sub.Tags)))
	return &dto.SubscribedDTO{Email: sub.Email, Confirmed: sub.Confirmed}, nil
}

func normalizeList(in []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
