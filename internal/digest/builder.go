// Package digest assembles a user's recent tracked activity into the
// plain-text context block fed to the chat assistant.
package digest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/axp8948/prodify/internal/appwrite"
	"github.com/axp8948/prodify/internal/config"
	"github.com/axp8948/prodify/internal/domain"
	"github.com/axp8948/prodify/internal/observability"
)

const (
	recentLimit = 5
	totalsLimit = 1

	placeholderNone        = "- (none)"
	placeholderUnavailable = "- (unavailable)"
)

// ErrAllCategoriesFailed is returned when not a single category read
// succeeded, which reads as a backend outage rather than partial degradation.
var ErrAllCategoriesFailed = errors.New("all category reads failed")

// DocumentLister is the slice of the Appwrite client the builder needs.
type DocumentLister interface {
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...appwrite.Query) (*appwrite.DocumentList, error)
}

// Builder produces context digests. It holds the unauthenticated base client;
// every read is issued through a copy scoped to the requesting user's token.
type Builder struct {
	client     *appwrite.Client
	databaseID string
	cols       config.Collections
	loc        *time.Location
	logger     *zap.Logger
}

// NewBuilder constructs a Builder.
func NewBuilder(client *appwrite.Client, databaseID string, cols config.Collections, loc *time.Location, logger *zap.Logger) *Builder {
	return &Builder{
		client:     client,
		databaseID: databaseID,
		cols:       cols,
		loc:        loc,
		logger:     logger,
	}
}

// Summarize builds the digest for userID, scoping every read to the given
// session token.
func (b *Builder) Summarize(ctx context.Context, token, userID string) (string, error) {
	return b.Build(ctx, b.client.WithJWT(token), userID)
}

type category struct {
	header string
	fetch  func(ctx context.Context) (string, error)
}

// Build fans the 13 category reads out concurrently and assembles the digest.
// A failed category renders a placeholder line instead of sinking the whole
// digest; only a full wipeout returns an error.
func (b *Builder) Build(ctx context.Context, store DocumentLister, userID string) (string, error) {
	start := time.Now()
	categories := b.categories(store, userID)

	bodies := make([]string, len(categories))
	var failures atomic.Int32

	g := new(errgroup.Group)
	for i, cat := range categories {
		i, cat := i, cat
		g.Go(func() error {
			body, err := cat.fetch(ctx)
			if err != nil {
				b.logger.Warn("category read failed",
					zap.String("category", cat.header),
					zap.String("user_id", userID),
					zap.Error(err))
				observability.RecordCategoryFailure(cat.header)
				failures.Add(1)
				bodies[i] = placeholderUnavailable
				return nil
			}
			bodies[i] = body
			return nil
		})
	}
	_ = g.Wait()

	if int(failures.Load()) == len(categories) {
		return "", ErrAllCategoriesFailed
	}

	var sb sectionWriter
	for i, cat := range categories {
		sb.section(cat.header, bodies[i])
	}

	observability.RecordDigestBuild(time.Since(start))
	return sb.String(), nil
}

func (b *Builder) categories(store DocumentLister, userID string) []category {
	return []category{
		{"— CLASS SESSIONS (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.ClassSession](ctx, store, b.databaseID, b.cols.ClassSessions, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return b.formatClassSessions(docs), nil
		}},
		{"— CLASS REMINDERS (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.ClassReminder](ctx, store, b.databaseID, b.cols.ClassReminders, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return b.formatClassReminders(docs), nil
		}},
		{"— CLASS NOTES (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.ClassNote](ctx, store, b.databaseID, b.cols.ClassNotes, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatClassNotes(docs), nil
		}},
		{"— GENERAL TASKS (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.GeneralTask](ctx, store, b.databaseID, b.cols.GeneralTasks, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatGeneralTasks(docs), nil
		}},
		{"— GENERAL REMINDERS (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.GeneralReminder](ctx, store, b.databaseID, b.cols.GeneralReminders, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return b.formatGeneralReminders(docs), nil
		}},
		{"— GENERAL NOTES (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.GeneralNote](ctx, store, b.databaseID, b.cols.GeneralNotes, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatGeneralNotes(docs), nil
		}},
		{"— FINANCE INCOMES (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.FinanceIncome](ctx, store, b.databaseID, b.cols.FinanceIncomes, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatIncomes(docs), nil
		}},
		{"— FINANCE EXPENSES (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.FinanceExpense](ctx, store, b.databaseID, b.cols.FinanceExpenses, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatExpenses(docs), nil
		}},
		{"— PHYSICAL STEPS (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.PhysicalSteps](ctx, store, b.databaseID, b.cols.PhysicalSteps, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatSteps(docs), nil
		}},
		{"— GYM DURATIONS (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.PhysicalGymDuration](ctx, store, b.databaseID, b.cols.PhysicalGymTimes, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatGymDurations(docs), nil
		}},
		{"— GYM CHECK-INS (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.PhysicalGymCheckin](ctx, store, b.databaseID, b.cols.PhysicalGymChecks, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return b.formatGymCheckins(docs), nil
		}},
		{"— OTHER ACTIVITIES (5 recent) —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.PhysicalOther](ctx, store, b.databaseID, b.cols.PhysicalOther, userID, recentLimit)
			if err != nil {
				return "", err
			}
			return formatOtherActivities(docs), nil
		}},
		{"— SESSIONS TOTAL —", func(ctx context.Context) (string, error) {
			docs, err := fetchDocs[domain.ClassSessionTotals](ctx, store, b.databaseID, b.cols.ClassSessionTotals, userID, totalsLimit)
			if err != nil {
				return "", err
			}
			return formatSessionTotals(docs), nil
		}},
	}
}

func fetchDocs[T any](ctx context.Context, store DocumentLister, databaseID, collectionID, userID string, limit int) ([]T, error) {
	list, err := store.ListDocuments(ctx, databaseID, collectionID,
		appwrite.Equal("userId", userID),
		appwrite.OrderDesc("$createdAt"),
		appwrite.Limit(limit),
	)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(list.Documents))
	for _, raw := range list.Documents {
		var doc T
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document in %s: %w", collectionID, err)
		}
		out = append(out, doc)
	}
	return out, nil
}
