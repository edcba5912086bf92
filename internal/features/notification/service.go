package notification

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/goil-app/notification-read-service/internal/features/business"
	"github.com/goil-app/notification-read-service/internal/features/readlog"
	"github.com/goil-app/notification-read-service/internal/features/user"
	"github.com/goil-app/notification-read-service/internal/pkg/logger"
	"github.com/goil-app/notification-read-service/internal/pkg/phonehash"
	pkgerrors "github.com/goil-app/notification-read-service/pkg/errors"
)

// warnDegraded logs a non-terminal backend failure tagged with its
// taxonomy Kind and the operation that absorbed it, per the
// UpstreamKind degradation rule: the caller always substitutes a
// default value and continues.
func warnDegraded(op string, err error) {
	logger.Warn("notification.fetch: [%s] %s: %v", pkgerrors.KindUpstream, op, err)
}

var primaryIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// isPrimaryStoreID reports whether id looks like the primary store's
// object identifier format, as opposed to an external chat UUID.
func isPrimaryStoreID(id string) bool {
	return primaryIDPattern.MatchString(id)
}

// ChatClient is the subset of the external chat client the service
// depends on.
type ChatClient interface {
	FindMessageByUUID(ctx context.Context, id, userID string) (*Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
}

// Signer pre-signs image paths for the response.
type Signer interface {
	SignAll(ctx context.Context, paths []string) []string
}

// Tracker fires the fire-and-forget tracking event.
type Tracker interface {
	Dispatch(notificationID, businessID string, headers TrackingHeaders)
}

// TrackingHeaders carries the subset of inbound request headers the
// tracking dispatcher forwards.
type TrackingHeaders struct {
	Authorization  string
	ClientPlatform string
	ClientOS       string
	ClientDevice   string
	ClientID       string
	SessionID      string
}

// Request bundles everything the service needs to resolve one
// notification read.
type Request struct {
	ID            string
	UserID        string
	BusinessID    string
	SessionID     string
	AccountTypeID string
	Language      string
	BusinessIDs   []string // explicit query-param set, may be empty
	Headers       TrackingHeaders
}

// Service orchestrates the dispatch, fan-out, cohort resolution,
// badge aggregation, URL signing and tracking for one request.
type Service struct {
	notifications *Repository
	chat          ChatClient
	users         *user.Repository
	businesses    *business.Repository
	readLog       *readlog.Repository
	signer        Signer
	tracker       Tracker
}

func NewService(
	notifications *Repository,
	chat ChatClient,
	users *user.Repository,
	businesses *business.Repository,
	readLog *readlog.Repository,
	signer Signer,
	tracker Tracker,
) *Service {
	return &Service{
		notifications: notifications,
		chat:          chat,
		users:         users,
		businesses:    businesses,
		readLog:       readLog,
		signer:        signer,
		tracker:       tracker,
	}
}

// Get runs the full read path and returns the assembled result, or a
// terminal Guard when the notification itself could not be found.
func (s *Service) Get(ctx context.Context, req Request) (*Result, *pkgerrors.Guard) {
	primary := isPrimaryStoreID(req.ID)

	var (
		wg             sync.WaitGroup
		notif          *Notification
		notifErr       error
		simplified     *user.SimplifiedUser
		businessRec    *business.Business
		externalUnread int
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		if primary {
			notif, notifErr = s.notifications.FindByID(ctx, req.ID, req.BusinessID, req.Language)
			return
		}
		notif, notifErr = s.chat.FindMessageByUUID(ctx, req.ID, req.UserID)
	}()

	go func() {
		defer wg.Done()
		var err error
		if len(req.BusinessIDs) > 0 {
			simplified, err = s.users.FindByIDAndBusinessIDs(ctx, req.UserID, req.BusinessIDs)
		} else {
			simplified, err = s.users.FindByID(ctx, req.UserID, req.BusinessID)
		}
		if err != nil {
			warnDegraded("user", err)
			simplified = nil
		}
	}()

	go func() {
		defer wg.Done()
		b, err := s.businesses.FindByID(ctx, req.BusinessID)
		if err != nil {
			warnDegraded("business", err)
			businessRec = &business.Business{Name: business.DefaultName}
			return
		}
		businessRec = b
	}()

	go func() {
		defer wg.Done()
		count, err := s.chat.GetUnreadCount(ctx, req.UserID)
		if err != nil {
			warnDegraded("external_unread", err)
			count = 0
		}
		externalUnread = count
	}()

	wg.Wait()

	if notifErr != nil {
		return nil, pkgerrors.NewGuard(pkgerrors.KindNotFound, 404, "Notification not found")
	}

	badge := 0
	if simplified != nil {
		badge = s.computeBadge(ctx, *simplified, req.BusinessIDs, req.BusinessID, externalUnread)
	} else {
		badge = externalUnread
	}

	imageURLs := s.signer.SignAll(ctx, notif.ImagePaths)

	if primary {
		headers := req.Headers
		headers.SessionID = req.SessionID
		go s.tracker.Dispatch(req.ID, req.BusinessID, headers)
	}

	return &Result{
		Notification: toDTO(notif, imageURLs),
		Badge:        badge,
		BusinessName: businessRec.Name,
		BusinessID:   req.BusinessID,
	}, nil
}

// computeBadge runs the cohort and read-log queries concurrently, then
// the reachability query against the primary store, and returns
// |reachable \ read| + externalUnread.
func (s *Service) computeBadge(ctx context.Context, caller user.SimplifiedUser, businessIDs []string, fallbackBusinessID string, externalUnread int) int {
	effectiveBusinessIDs := businessIDs
	if len(effectiveBusinessIDs) == 0 {
		effectiveBusinessIDs = []string{fallbackBusinessID}
	}

	phoneHash := phonehash.Hash(caller.Phone)

	var (
		wg      sync.WaitGroup
		cohort  []user.SimplifiedUser
		readIDs []string
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		c, err := s.users.FindCohortByPhone(ctx, caller.Phone, effectiveBusinessIDs)
		if err != nil {
			warnDegraded("cohort", err)
			cohort = nil
			return
		}
		cohort = c
	}()

	go func() {
		defer wg.Done()
		ids, err := s.readLog.FindNotificationIDsByPhoneHash(ctx, phoneHash, effectiveBusinessIDs)
		if err != nil {
			warnDegraded("read_log", err)
			readIDs = nil
			return
		}
		readIDs = ids
	}()

	wg.Wait()

	if len(cohort) == 0 {
		return externalUnread
	}

	params := buildReachabilityParams(cohort, effectiveBusinessIDs)
	reachable, err := s.notifications.FindReachable(ctx, params)
	if err != nil {
		warnDegraded("reachability", err)
		return externalUnread
	}

	read := make(map[string]struct{}, len(readIDs))
	for _, id := range readIDs {
		read[id] = struct{}{}
	}

	unread := 0
	for _, id := range reachable {
		if _, ok := read[id]; !ok {
			unread++
		}
	}

	return unread + externalUnread
}

// buildReachabilityParams derives the ReachabilityParams from a phone
// cohort, using the true oldest account creation date across the
// cohort (not the first-seen value).
func buildReachabilityParams(cohort []user.SimplifiedUser, businessIDs []string) ReachabilityParams {
	accountTypeSet := make(map[string]struct{})
	userIDSet := make(map[string]struct{})
	phoneSet := make(map[string]struct{})

	var oldest time.Time
	for i, u := range cohort {
		if u.AccountType != "" {
			accountTypeSet[u.AccountType] = struct{}{}
		}
		if u.ID != "" {
			userIDSet[u.ID] = struct{}{}
		}
		if u.Phone != "" {
			phoneSet[phonehash.Hash(u.Phone)] = struct{}{}
		}
		if i == 0 || u.CreationDate.Before(oldest) {
			oldest = u.CreationDate
		}
	}

	return ReachabilityParams{
		BusinessIDs:        businessIDs,
		OldestCreationDate: oldest,
		AccountTypes:       keys(accountTypeSet),
		UserIDs:            keys(userIDSet),
		HashedPhones:       keys(phoneSet),
	}
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
