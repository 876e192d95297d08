// Package loyalty reads the points account: balance, tier, ledger, and
// discount quotes. It keeps the last fetched snapshot in memory for
// display but persists nothing; the backend owns the balance.
package loyalty

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/kopi/internal/api"
)

// Store caches the latest loyalty snapshot.
type Store struct {
	mu     sync.Mutex
	client *api.Client

	info         *api.PointsInfo
	transactions *api.TransactionPage
}

// New creates a loyalty store over the API client.
func New(client *api.Client) *Store {
	return &Store{client: client}
}

// FetchInfo loads the account summary and caches it.
func (s *Store) FetchInfo(ctx context.Context) (*api.PointsInfo, error) {
	info, err := s.client.FetchPoints(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.info = info
	s.mu.Unlock()
	return info, nil
}

// FetchTransactions loads one ledger page and caches it.
func (s *Store) FetchTransactions(ctx context.Context, page, perPage int) (*api.TransactionPage, error) {
	result, err := s.client.FetchPointTransactions(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.transactions = result
	s.mu.Unlock()
	return result, nil
}

// CalculateDiscount quotes a points deduction against the given order lines.
func (s *Store) CalculateDiscount(ctx context.Context, lines []api.OrderLine, pointsToUse int) (*api.DiscountQuote, error) {
	return s.client.CalculateDiscount(ctx, lines, pointsToUse)
}

// Refresh reloads the summary and the first ledger page.
func (s *Store) Refresh(ctx context.Context) error {
	if _, err := s.FetchInfo(ctx); err != nil {
		return err
	}
	_, err := s.FetchTransactions(ctx, 1, 0)
	return err
}

// Clear drops the cached snapshot. Called on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = nil
	s.transactions = nil
}

// Info returns the cached account summary, or nil before the first fetch.
func (s *Store) Info() *api.PointsInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Transactions returns the cached ledger page, or nil before the first fetch.
func (s *Store) Transactions() *api.TransactionPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions
}

// LevelLabel maps a tier to its display name.
func LevelLabel(level api.MemberLevel) string {
	switch level {
	case api.MemberLevelBronze:
		return "Bronze Member"
	case api.MemberLevelSilver:
		return "Silver Member"
	case api.MemberLevelGold:
		return "Gold Member"
	case api.MemberLevelPlatinum:
		return "Platinum Member"
	default:
		return "Member"
	}
}

// TransactionLabel maps a ledger entry type to its display name.
func TransactionLabel(txType string) string {
	switch txType {
	case "earned":
		return "Earned"
	case "used":
		return "Redeemed"
	case "expired":
		return "Expired"
	case "refunded":
		return "Refunded"
	case "signup_bonus":
		return "Signup Bonus"
	case "birthday_bonus":
		return "Birthday Bonus"
	case "referral_bonus":
		return "Referral Bonus"
	default:
		return txType
	}
}

// NextLevelProgress returns the fraction of the way to the next tier,
// in [0, 1]. A platinum account with no next level reports 1.
func NextLevelProgress(info *api.PointsInfo) float64 {
	if info == nil || info.NextLevel == nil || info.NextLevel.RequiredPoints <= 0 {
		return 1
	}

	earned := info.NextLevel.RequiredPoints - info.NextLevel.PointsNeeded
	if earned <= 0 {
		return 0
	}
	progress := float64(earned) / float64(info.NextLevel.RequiredPoints)
	if progress > 1 {
		return 1
	}
	return progress
}
