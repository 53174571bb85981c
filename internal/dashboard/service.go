package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/minicrmhq/minicrm-backend/pkg/db/types"
	pkgerrors "github.com/minicrmhq/minicrm-backend/pkg/errors"
)

// upcomingWindowDays is how far ahead the dashboard looks for reminders.
const upcomingWindowDays = 7

// motivationalMessages rotates by weekday on the dashboard header.
var motivationalMessages = []string{
	"Cada cliente é uma oportunidade de ouro! 💰",
	"Seu sucesso é construído um follow-up por vez! 🚀",
	"Clientes fiéis são o coração do seu negócio! ❤️",
	"Hoje é um ótimo dia para fechar vendas! ⭐",
	"Pequenos gestos geram grandes resultados! 🎯",
}

type customerCounter interface {
	CountByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}

type pointsSummer interface {
	SumPointsByStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}

type reminderCounter interface {
	CountUpcoming(ctx context.Context, storeID uuid.UUID, from, to dbtypes.Date) (int64, error)
}

// Stats is the store overview shown on the dashboard.
type Stats struct {
	TotalCustomers    int64  `json:"total_customers"`
	ActiveCustomers   int64  `json:"active_customers"`
	UpcomingReminders int64  `json:"upcoming_reminders"`
	TotalPoints       int64  `json:"total_points"`
	Message           string `json:"message"`
}

// Service assembles the dashboard overview.
type Service interface {
	Stats(ctx context.Context, storeID uuid.UUID) (*Stats, error)
}

type service struct {
	customers customerCounter
	points    pointsSummer
	reminders reminderCounter
	now       func() time.Time
}

// NewService wires a dashboard service with the provided collaborators.
func NewService(customers customerCounter, points pointsSummer, reminders reminderCounter) (Service, error) {
	if customers == nil {
		return nil, fmt.Errorf("customer counter required")
	}
	if points == nil {
		return nil, fmt.Errorf("points summer required")
	}
	if reminders == nil {
		return nil, fmt.Errorf("reminder counter required")
	}
	return &service{
		customers: customers,
		points:    points,
		reminders: reminders,
		now:       time.Now,
	}, nil
}

// Stats counts customers and loyalty points and looks a week ahead for
// reminders. Active customers is an estimate at 70% of the base; purchase
// recency is not tracked yet.
func (s *service) Stats(ctx context.Context, storeID uuid.UUID) (*Stats, error) {
	total, err := s.customers.CountByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count customers")
	}

	today := dbtypes.DateOf(s.now().UTC())
	upcoming, err := s.reminders.CountUpcoming(ctx, storeID, today, today.AddDays(upcomingWindowDays))
	if err != nil {
		return nil, err
	}

	points, err := s.points.SumPointsByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum loyalty points")
	}

	return &Stats{
		TotalCustomers:    total,
		ActiveCustomers:   total * 7 / 10,
		UpcomingReminders: upcoming,
		TotalPoints:       points,
		Message:           MessageOfTheDay(s.now()),
	}, nil
}

// MessageOfTheDay picks the motivational message for the given day.
func MessageOfTheDay(t time.Time) string {
	return motivationalMessages[int(t.Weekday())%len(motivationalMessages)]
}
