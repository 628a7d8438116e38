package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/231fa04g93/expense-tracker-api/models"
)

// DefaultCheckInterval is how often the background limit recheck runs.
const DefaultCheckInterval = 5 * time.Minute

// Subscriber receives the user's full current notification list after
// every change. There is no partial diff.
type Subscriber func([]models.Notification)

// LimitChecker is the slice of LimitTracker the dispatcher needs.
type LimitChecker interface {
	Status(ctx context.Context, userID string) (models.LimitStatus, error)
}

// Notifier is the in-process notification dispatcher. It keeps per-user
// ordered notification lists, fans out changes to subscribers, and turns
// transaction and limit events into user-visible messages.
//
// State is process-local and ephemeral: a restart drops all notifications,
// which is acceptable since the limit recheck reproduces any that still
// apply.
type Notifier struct {
	limits        LimitChecker
	checkInterval time.Duration

	mu      sync.Mutex
	byUser  map[string][]models.Notification
	subs    map[string]map[int]Subscriber
	tracked map[string]struct{}
	nextSub int

	now       func() time.Time
	afterFunc func(time.Duration, func())
}

type NotifierOption func(*Notifier)

func WithCheckInterval(d time.Duration) NotifierOption {
	return func(n *Notifier) { n.checkInterval = d }
}

func WithNotifierClock(now func() time.Time) NotifierOption {
	return func(n *Notifier) { n.now = now }
}

// WithAfterFunc replaces the auto-close scheduler, for tests.
func WithAfterFunc(f func(time.Duration, func())) NotifierOption {
	return func(n *Notifier) { n.afterFunc = f }
}

func NewNotifier(limits LimitChecker, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		limits:        limits,
		checkInterval: DefaultCheckInterval,
		byUser:        make(map[string][]models.Notification),
		subs:          make(map[string]map[int]Subscriber),
		tracked:       make(map[string]struct{}),
		now:           time.Now,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Publish appends a notification and synchronously invokes the user's
// subscribers with the full current list. Auto-closing notifications are
// dismissed automatically after their duration elapses.
func (n *Notifier) Publish(userID, notificationType, title, message string, opts *models.NotifyOptions) models.Notification {
	notification := models.Notification{
		ID:        uuid.New().String(),
		Type:      notificationType,
		Title:     title,
		Message:   message,
		CreatedAt: n.now().UTC(),
		AutoClose: models.DefaultAutoClose(notificationType),
		Duration:  models.DefaultDuration(notificationType),
	}
	if opts != nil {
		if opts.AutoClose != nil {
			notification.AutoClose = *opts.AutoClose
		}
		if opts.Duration != nil {
			notification.Duration = *opts.Duration
		}
		notification.Priority = opts.Priority
		notification.IsLimitNotification = opts.IsLimitNotification
	}

	n.mu.Lock()
	n.tracked[userID] = struct{}{}
	n.byUser[userID] = append(n.byUser[userID], notification)
	snapshot, subscribers := n.snapshotLocked(userID)
	n.mu.Unlock()

	n.fanout(snapshot, subscribers)
	n.scheduleAutoClose(userID, notification)
	return notification
}

// Notifications returns the user's full list in publish order. Display
// capping (most-recent N) is the presentation layer's concern; see the
// handler's limit query parameter.
func (n *Notifier) Notifications(userID string) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.byUser[userID]...)
}

// Subscribe registers a callback for the user's notification changes and
// returns an unsubscribe function.
func (n *Notifier) Subscribe(userID string, fn Subscriber) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.tracked[userID] = struct{}{}
	if n.subs[userID] == nil {
		n.subs[userID] = make(map[int]Subscriber)
	}
	id := n.nextSub
	n.nextSub++
	n.subs[userID][id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[userID], id)
	}
}

// Dismiss removes a notification by id and republishes the list. Unknown
// ids are ignored.
func (n *Notifier) Dismiss(userID, id string) {
	n.mu.Lock()
	list := n.byUser[userID]
	kept := list[:0]
	removed := false
	for _, notification := range list {
		if notification.ID == id {
			removed = true
			continue
		}
		kept = append(kept, notification)
	}
	if !removed {
		n.mu.Unlock()
		return
	}
	n.byUser[userID] = kept
	snapshot, subscribers := n.snapshotLocked(userID)
	n.mu.Unlock()

	n.fanout(snapshot, subscribers)
}

// Clear drops every notification for the user.
func (n *Notifier) Clear(userID string) {
	n.mu.Lock()
	if len(n.byUser[userID]) == 0 {
		n.mu.Unlock()
		return
	}
	n.byUser[userID] = nil
	snapshot, subscribers := n.snapshotLocked(userID)
	n.mu.Unlock()

	n.fanout(snapshot, subscribers)
}

// Forget releases all dispatcher state for a user, for account deletion.
func (n *Notifier) Forget(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.byUser, userID)
	delete(n.subs, userID)
	delete(n.tracked, userID)
}

// TransactionAdded emits the add toast and, for expenses, immediately
// rechecks the limit so a breach shows up without waiting for the
// background tick.
func (n *Notifier) TransactionAdded(ctx context.Context, txn models.Transaction) {
	duration := 2000
	if txn.IsExpense() {
		n.Publish(txn.UserID, models.NotificationInfo, "Expense Added",
			fmt.Sprintf("%s: %.2f", txn.Text, txn.AbsAmount()),
			&models.NotifyOptions{Duration: &duration})
		if err := n.CheckLimits(ctx, txn.UserID); err != nil {
			log.Printf("limit check after add failed for user %s: %v", txn.UserID, err)
		}
		return
	}
	n.Publish(txn.UserID, models.NotificationSuccess, "Income Added",
		fmt.Sprintf("%s: %.2f", txn.Text, txn.AbsAmount()),
		&models.NotifyOptions{Duration: &duration})
}

// TransactionDeleted emits the delete toast and rechecks the limit, since
// removing an expense can clear a warning.
func (n *Notifier) TransactionDeleted(ctx context.Context, txn models.Transaction) {
	duration := 2000
	n.Publish(txn.UserID, models.NotificationInfo, "Transaction Deleted",
		fmt.Sprintf("%s: %.2f removed", txn.Text, txn.AbsAmount()),
		&models.NotifyOptions{Duration: &duration})
	if err := n.CheckLimits(ctx, txn.UserID); err != nil {
		log.Printf("limit check after delete failed for user %s: %v", txn.UserID, err)
	}
}

// LimitSet announces a new or updated monthly limit.
func (n *Notifier) LimitSet(userID string, limit models.MonthlyLimit) {
	duration := 3000
	n.Publish(userID, models.NotificationSuccess, "Limit Updated",
		fmt.Sprintf("Monthly expense limit set to %.2f %s", limit.Amount, limit.Currency),
		&models.NotifyOptions{Duration: &duration})
}

// LimitRemoved announces limit removal.
func (n *Notifier) LimitRemoved(userID string) {
	duration := 3000
	n.Publish(userID, models.NotificationInfo, "Limit Removed",
		"Monthly expense limit has been removed",
		&models.NotifyOptions{Duration: &duration})
}

// CheckLimits recomputes the limit status and keeps at most one limit
// notification alive: any existing one is dropped first, then a fresh
// warning or exceeded message is published if warranted. Rechecking with
// unchanged state therefore never accumulates duplicates, which also
// makes overlapping periodic and on-demand checks harmless.
func (n *Notifier) CheckLimits(ctx context.Context, userID string) error {
	n.mu.Lock()
	n.tracked[userID] = struct{}{}
	n.mu.Unlock()

	status, err := n.limits.Status(ctx, userID)
	if err != nil {
		return fmt.Errorf("check limits: %w", err)
	}

	n.mu.Lock()
	list := n.byUser[userID]
	kept := make([]models.Notification, 0, len(list))
	for _, notification := range list {
		if !notification.IsLimitNotification {
			kept = append(kept, notification)
		}
	}

	if status.HasLimit {
		switch status.Status {
		case models.LimitStatusWarning:
			kept = append(kept, n.limitNotification(models.NotificationWarning, "Budget Alert",
				fmt.Sprintf("You have spent %.2f%% of your monthly limit (%.2f of %.2f %s)",
					status.Percentage, status.CurrentExpenses, status.LimitAmount, status.Currency)))
		case models.LimitStatusExceeded:
			kept = append(kept, n.limitNotification(models.NotificationError, "Budget Exceeded",
				fmt.Sprintf("You have exceeded your monthly limit by %.2f %s",
					status.ExceededAmount, status.Currency)))
		}
	}

	n.byUser[userID] = kept
	snapshot, subscribers := n.snapshotLocked(userID)
	n.mu.Unlock()

	n.fanout(snapshot, subscribers)
	return nil
}

// Run performs the periodic background recheck for every user the
// dispatcher has seen, until the context is cancelled. A failed check is
// logged and retried on the next tick, never fatal.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(n.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.checkAll(ctx)
		}
	}
}

func (n *Notifier) checkAll(ctx context.Context) {
	n.mu.Lock()
	users := make([]string, 0, len(n.tracked))
	for userID := range n.tracked {
		users = append(users, userID)
	}
	n.mu.Unlock()

	for _, userID := range users {
		if err := n.CheckLimits(ctx, userID); err != nil {
			log.Printf("periodic limit check failed for user %s: %v", userID, err)
		}
	}
}

func (n *Notifier) limitNotification(notificationType, title, message string) models.Notification {
	return models.Notification{
		ID:                  uuid.New().String(),
		Type:                notificationType,
		Title:               title,
		Message:             message,
		CreatedAt:           n.now().UTC(),
		AutoClose:           false,
		Duration:            0,
		Priority:            models.PriorityHigh,
		IsLimitNotification: true,
	}
}

// snapshotLocked copies the current list and subscriber set. Callers must
// hold the mutex; the fanout itself happens outside the lock so a
// subscriber may call back into the dispatcher.
func (n *Notifier) snapshotLocked(userID string) ([]models.Notification, []Subscriber) {
	snapshot := append([]models.Notification(nil), n.byUser[userID]...)
	subscribers := make([]Subscriber, 0, len(n.subs[userID]))
	for _, fn := range n.subs[userID] {
		subscribers = append(subscribers, fn)
	}
	return snapshot, subscribers
}

func (n *Notifier) fanout(list []models.Notification, subscribers []Subscriber) {
	for _, fn := range subscribers {
		fn(list)
	}
}

func (n *Notifier) scheduleAutoClose(userID string, notification models.Notification) {
	if !notification.AutoClose || notification.Duration <= 0 {
		return
	}
	id := notification.ID
	n.afterFunc(time.Duration(notification.Duration)*time.Millisecond, func() {
		n.Dismiss(userID, id)
	})
}
