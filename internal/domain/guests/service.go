package guests

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"wedding-registry-go/pkg/logger"
)

const (
	defaultDirectoryTTL  = 30 * time.Second
	defaultNotifyTimeout = 10 * time.Second
	notifyConcurrency    = 4
)

var tracer = otel.Tracer("wedding-registry-go/internal/domain/guests")

type Service struct {
	repo          Repository
	cache         Cache
	directoryTTL  time.Duration
	notifier      Notifier
	notifyTimeout time.Duration
	recorder      Recorder
	ledger        *Ledger
	log           logger.Logger
	now           func() time.Time
	newID         func() string

	// cacheGen counts invalidations so a directory loaded before a write
	// is never stored after it.
	cacheMu  sync.Mutex
	cacheGen uint64
}

type Option func(*Service)

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
		if ttl > 0 {
			s.directoryTTL = ttl
		}
	}
}

func WithNotifier(notifier Notifier, timeout time.Duration) Option {
	return func(s *Service) {
		if notifier != nil {
			s.notifier = notifier
		}
		if timeout > 0 {
			s.notifyTimeout = timeout
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

func WithMaxGuestCount(n int) Option {
	return func(s *Service) {
		s.ledger = NewLedger(n)
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		cache:         noopCache{},
		directoryTTL:  defaultDirectoryTTL,
		notifier:      noopNotifier{},
		notifyTimeout: defaultNotifyTimeout,
		recorder:      noopRecorder{},
		ledger:        NewLedger(1),
		log:           logger.NewNop(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SubmitResult struct {
	Written []Guest
	Skipped []Skip
}

func (s *Service) Lookup(ctx context.Context, query string) (Resolution, error) {
	ctx, span := tracer.Start(ctx, "guests.Lookup")
	defer span.End()

	if err := ValidateQuery(query); err != nil {
		return Resolution{}, err
	}

	directory, err := s.loadDirectory(ctx)
	if err != nil {
		return Resolution{}, failSpan(span, err)
	}

	res, err := Resolve(query, directory)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			s.recorder.LookupMissed()
		}
		return Resolution{}, err
	}

	span.SetAttributes(
		attribute.String("guests.match_pass", string(res.Pass)),
		attribute.Int("guests.candidates", res.Candidates),
		attribute.Int("guests.family_size", len(res.FamilyMembers)),
	)
	s.recorder.LookupResolved(res.Pass, res.Ambiguous())
	if res.Ambiguous() {
		s.log.Warn("guests.lookup: ambiguous name, picked first in directory order",
			"query_key", Normalize(query),
			"pass", string(res.Pass),
			"candidates", res.Candidates,
			"guest_id", res.Guest.ID,
		)
	}
	return res, nil
}

// SubmitRSVP records a submission and every accepted family entry in one
// transaction, then sends notifications. Notification failures are logged,
// never returned.
func (s *Service) SubmitRSVP(ctx context.Context, sub Submission) (SubmitResult, error) {
	ctx, span := tracer.Start(ctx, "guests.SubmitRSVP", trace.WithAttributes(
		attribute.String("guests.guest_id", sub.GuestID),
		attribute.Int("guests.family_entries", len(sub.Family)),
	))
	defer span.End()

	if strings.TrimSpace(sub.GuestID) == "" {
		return SubmitResult{}, ErrGuestNotFound
	}
	if !sub.Response.Valid() {
		if sub.Response == "" {
			return SubmitResult{}, ErrResponseRequired
		}
		return SubmitResult{}, ErrInvalidResponse
	}

	var outcome Outcome
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		directory, err := tx.LoadDirectory(ctx)
		if err != nil {
			return err
		}
		outcome, err = s.ledger.Submit(directory, sub, s.now())
		if err != nil {
			return err
		}
		return tx.ApplyMutations(ctx, outcome.Written)
	})
	if err != nil {
		if !errors.Is(err, ErrGuestNotFound) {
			failSpan(span, err)
		}
		return SubmitResult{}, err
	}
	s.invalidateDirectory(ctx)

	s.recorder.RSVPWritten(sub.Response, len(outcome.Written))
	for _, skip := range outcome.Skipped {
		s.recorder.RSVPSkipped(skip.Reason)
		if skip.Reason == SkipOtherFamily {
			s.log.Debug("guests.rsvp: dropped entry for another family",
				"submitter_id", sub.GuestID,
				"target_id", skip.GuestID,
			)
		}
	}
	span.SetAttributes(attribute.Int("guests.rows_written", len(outcome.Written)))

	s.notify(ctx, outcome)

	return SubmitResult{Written: outcome.Written, Skipped: outcome.Skipped}, nil
}

func (s *Service) CheckRSVP(ctx context.Context, guestID string) (*Guest, error) {
	if strings.TrimSpace(guestID) == "" {
		return nil, ErrGuestNotFound
	}
	return s.repo.GetGuest(ctx, guestID)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	directory, err := s.loadDirectory(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(directory), nil
}

func (s *Service) Directory(ctx context.Context) ([]Guest, error) {
	directory, err := s.loadDirectory(ctx)
	if err != nil {
		return nil, err
	}
	return SortForAdmin(directory), nil
}

// ImportDirectory wipes the guest list and replaces it with entries. With
// dryRun the new directory is built and summarised but not stored.
func (s *Service) ImportDirectory(ctx context.Context, entries []ImportEntry, dryRun bool) (ImportSummary, error) {
	ctx, span := tracer.Start(ctx, "guests.ImportDirectory", trace.WithAttributes(
		attribute.Int("guests.entries", len(entries)),
		attribute.Bool("guests.dry_run", dryRun),
	))
	defer span.End()

	directory, err := BuildDirectory(entries, s.newID)
	if err != nil {
		return ImportSummary{}, err
	}
	summary := Summarize(directory)
	if dryRun {
		return summary, nil
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		return tx.ReplaceDirectory(ctx, directory)
	})
	if err != nil {
		return ImportSummary{}, failSpan(span, err)
	}
	s.invalidateDirectory(ctx)

	s.log.Info("guests.import: directory replaced",
		"guests", summary.TotalGuests,
		"family_groups", summary.FamilyGroups,
	)
	return summary, nil
}

func (s *Service) GroupingReport(ctx context.Context) (GroupingReport, error) {
	directory, err := s.loadDirectory(ctx)
	if err != nil {
		return GroupingReport{}, err
	}
	return BuildReport(directory), nil
}

func (s *Service) loadDirectory(ctx context.Context) ([]Guest, error) {
	if directory, ok := s.cache.GetDirectory(ctx); ok {
		return directory, nil
	}
	s.cacheMu.Lock()
	gen := s.cacheGen
	s.cacheMu.Unlock()

	directory, err := s.repo.LoadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheGen == gen {
		s.cache.SetDirectory(ctx, directory, s.directoryTTL)
	}
	return directory, nil
}

func (s *Service) invalidateDirectory(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.cacheGen++
	s.cache.Invalidate(ctx)
}

// notify sends after commit on a context that ignores request cancellation,
// bounded by notifyTimeout. The caller waits for every send to finish.
func (s *Service) notify(ctx context.Context, outcome Outcome) {
	if len(outcome.Written) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	submitter := outcome.Written[0]
	note := Notification{
		SubmittedBy: submitter.Name,
		Email:       outcome.Emails[submitter.ID],
	}

	var g errgroup.Group
	g.SetLimit(notifyConcurrency)
	for _, row := range outcome.Written {
		note.Rows = append(note.Rows, notificationRow(row))

		email := outcome.Emails[row.ID]
		if email == "" {
			continue
		}
		msg := confirmationFor(row, email)
		g.Go(func() error {
			if err := s.notifier.SendGuestConfirmation(ctx, msg); err != nil {
				s.recorder.NotificationFailed("guest_confirmation")
				s.log.InternalError("guests.notify: guest confirmation failed", err, "guest_id", row.ID)
			}
			return nil
		})
	}
	g.Go(func() error {
		if err := s.notifier.SendCoupleNotification(ctx, note); err != nil {
			s.recorder.NotificationFailed("couple_notification")
			s.log.InternalError("guests.notify: couple notification failed", err, "submitted_by", note.SubmittedBy)
		}
		return nil
	})
	_ = g.Wait()
}

func notificationRow(g Guest) NotificationRow {
	row := NotificationRow{
		Name:       g.Name,
		GuestCount: g.RSVPGuestCount,
		Dietary:    deref(g.RSVPDietary),
		Message:    deref(g.RSVPMessage),
	}
	if g.RSVPResponse != nil {
		row.Response = *g.RSVPResponse
	}
	return row
}

func confirmationFor(g Guest, email string) Confirmation {
	row := notificationRow(g)
	return Confirmation{
		Email:      email,
		Name:       row.Name,
		Response:   row.Response,
		GuestCount: row.GuestCount,
		Dietary:    row.Dietary,
		Message:    row.Message,
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
