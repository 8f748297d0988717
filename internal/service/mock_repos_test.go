package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"courtbook/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock BusinessRepository ──

type mockBusinessRepo struct {
	businesses map[string]*model.Business
}

func newMockBusinessRepo() *mockBusinessRepo {
	return &mockBusinessRepo{businesses: make(map[string]*model.Business)}
}

func (m *mockBusinessRepo) Create(_ context.Context, business *model.Business) error {
	if business.BusinessID == "" {
		business.BusinessID = "biz-" + business.Name
	}
	m.businesses[business.BusinessID] = business
	return nil
}

func (m *mockBusinessRepo) GetByID(_ context.Context, id string) (*model.Business, error) {
	if b, ok := m.businesses[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBusinessRepo) ListByUser(_ context.Context, _ string) ([]model.Business, error) {
	var result []model.Business
	for _, b := range m.businesses {
		result = append(result, *b)
	}
	return result, nil
}

// ── Mock BusinessUserRepository ──

type mockBusinessUserRepo struct {
	rows []*model.BusinessUser
}

func newMockBusinessUserRepo() *mockBusinessUserRepo {
	return &mockBusinessUserRepo{}
}

func (m *mockBusinessUserRepo) Create(_ context.Context, bu *model.BusinessUser) error {
	if bu.BusinessUserID == "" {
		bu.BusinessUserID = fmt.Sprintf("bu-%d", len(m.rows)+1)
	}
	m.rows = append(m.rows, bu)
	return nil
}

func (m *mockBusinessUserRepo) GetByBusinessAndUser(_ context.Context, businessID, userID string) (*model.BusinessUser, error) {
	for _, bu := range m.rows {
		if bu.BusinessID == businessID && bu.UserID == userID {
			return bu, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CourtRepository ──

type mockCourtRepo struct {
	courts map[string]*model.Court
}

func newMockCourtRepo() *mockCourtRepo {
	return &mockCourtRepo{courts: make(map[string]*model.Court)}
}

func (m *mockCourtRepo) Create(_ context.Context, court *model.Court) error {
	if court.CourtID == "" {
		court.CourtID = "court-" + court.Name
	}
	m.courts[court.CourtID] = court
	return nil
}

func (m *mockCourtRepo) GetByID(_ context.Context, id, businessID string) (*model.Court, error) {
	if c, ok := m.courts[id]; ok && c.BusinessID == businessID {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourtRepo) ListByBusiness(_ context.Context, businessID string) ([]model.Court, error) {
	var result []model.Court
	for _, c := range m.courts {
		if c.BusinessID == businessID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourtRepo) Update(_ context.Context, court *model.Court) error {
	m.courts[court.CourtID] = court
	return nil
}

func (m *mockCourtRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.courts, id)
	return nil
}

func (m *mockCourtRepo) CountByIDs(_ context.Context, ids []string, businessID string) (int64, error) {
	var count int64
	for _, id := range ids {
		if c, ok := m.courts[id]; ok && c.BusinessID == businessID {
			count++
		}
	}
	return count, nil
}

// ── Mock AvailabilityRuleRepository ──

type mockAvailabilityRuleRepo struct {
	rules  map[string]*model.AvailabilityRule
	links  map[string][]string // ruleID → courtIDs
	courts *mockCourtRepo
}

func newMockAvailabilityRuleRepo(courts *mockCourtRepo) *mockAvailabilityRuleRepo {
	return &mockAvailabilityRuleRepo{
		rules:  make(map[string]*model.AvailabilityRule),
		links:  make(map[string][]string),
		courts: courts,
	}
}

func (m *mockAvailabilityRuleRepo) attachCourts(rule model.AvailabilityRule) model.AvailabilityRule {
	rule.Courts = nil
	for _, id := range m.links[rule.RuleID] {
		if c, ok := m.courts.courts[id]; ok {
			rule.Courts = append(rule.Courts, *c)
		}
	}
	return rule
}

func (m *mockAvailabilityRuleRepo) Create(_ context.Context, rule *model.AvailabilityRule) error {
	if rule.RuleID == "" {
		rule.RuleID = "rule-" + rule.Name
	}
	rule.CreatedAt = time.Now()
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *mockAvailabilityRuleRepo) GetByID(_ context.Context, id, businessID string) (*model.AvailabilityRule, error) {
	if r, ok := m.rules[id]; ok && r.BusinessID == businessID {
		attached := m.attachCourts(*r)
		return &attached, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRuleRepo) ListByBusiness(_ context.Context, businessID string) ([]model.AvailabilityRule, error) {
	var result []model.AvailabilityRule
	for _, r := range m.rules {
		if r.BusinessID == businessID {
			result = append(result, m.attachCourts(*r))
		}
	}
	return result, nil
}

func (m *mockAvailabilityRuleRepo) ListActiveByDay(_ context.Context, businessID string, dayOfWeek int) ([]model.AvailabilityRule, error) {
	var result []model.AvailabilityRule
	for _, r := range m.rules {
		if r.BusinessID == businessID && r.DayOfWeek == dayOfWeek && r.IsActive {
			result = append(result, m.attachCourts(*r))
		}
	}
	return result, nil
}

func (m *mockAvailabilityRuleRepo) Update(_ context.Context, rule *model.AvailabilityRule) error {
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *mockAvailabilityRuleRepo) Delete(_ context.Context, id string) error {
	delete(m.rules, id)
	return nil
}

func (m *mockAvailabilityRuleRepo) ReplaceCourts(_ context.Context, ruleID string, courtIDs []string) error {
	m.links[ruleID] = append([]string(nil), courtIDs...)
	return nil
}

func (m *mockAvailabilityRuleRepo) DeleteCourts(_ context.Context, ruleID string) error {
	delete(m.links, ruleID)
	return nil
}

// ── Mock ExceptionRuleRepository ──

type mockExceptionRuleRepo struct {
	seq        int
	exceptions map[string]*model.ExceptionRule
	order      []string // 按创建顺序
	links      map[string][]string
	courts     *mockCourtRepo
}

func newMockExceptionRuleRepo(courts *mockCourtRepo) *mockExceptionRuleRepo {
	return &mockExceptionRuleRepo{
		exceptions: make(map[string]*model.ExceptionRule),
		links:      make(map[string][]string),
		courts:     courts,
	}
}

func (m *mockExceptionRuleRepo) attachCourts(exc model.ExceptionRule) model.ExceptionRule {
	exc.Courts = nil
	for _, id := range m.links[exc.ExceptionID] {
		if c, ok := m.courts.courts[id]; ok {
			exc.Courts = append(exc.Courts, *c)
		}
	}
	return exc
}

func (m *mockExceptionRuleRepo) Create(_ context.Context, exc *model.ExceptionRule) error {
	if exc.ExceptionID == "" {
		m.seq++
		exc.ExceptionID = fmt.Sprintf("exc-%03d", m.seq)
	}
	exc.CreatedAt = time.Now()
	m.exceptions[exc.ExceptionID] = exc
	m.order = append(m.order, exc.ExceptionID)
	return nil
}

func (m *mockExceptionRuleRepo) GetByID(_ context.Context, id, businessID string) (*model.ExceptionRule, error) {
	if e, ok := m.exceptions[id]; ok && e.BusinessID == businessID {
		attached := m.attachCourts(*e)
		return &attached, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExceptionRuleRepo) ListByBusiness(_ context.Context, businessID string) ([]model.ExceptionRule, error) {
	var result []model.ExceptionRule
	for _, id := range m.order {
		if e, ok := m.exceptions[id]; ok && e.BusinessID == businessID {
			result = append(result, m.attachCourts(*e))
		}
	}
	return result, nil
}

func (m *mockExceptionRuleRepo) ListByDate(_ context.Context, businessID string, date time.Time) ([]model.ExceptionRule, error) {
	var result []model.ExceptionRule
	for _, id := range m.order {
		e, ok := m.exceptions[id]
		if !ok || e.BusinessID != businessID {
			continue
		}
		if e.Date.Format(model.DateLayout) == date.Format(model.DateLayout) {
			result = append(result, m.attachCourts(*e))
		}
	}
	return result, nil
}

func (m *mockExceptionRuleRepo) Update(_ context.Context, exc *model.ExceptionRule) error {
	m.exceptions[exc.ExceptionID] = exc
	return nil
}

func (m *mockExceptionRuleRepo) Delete(_ context.Context, id string) error {
	delete(m.exceptions, id)
	return nil
}

func (m *mockExceptionRuleRepo) ReplaceCourts(_ context.Context, exceptionID string, courtIDs []string) error {
	m.links[exceptionID] = append([]string(nil), courtIDs...)
	return nil
}

func (m *mockExceptionRuleRepo) DeleteCourts(_ context.Context, exceptionID string) error {
	delete(m.links, exceptionID)
	return nil
}

// ── Mock BookingRepository ──
//
// 用互斥锁模拟数据库的部分唯一索引与行锁语义：
// 并发 Create 同一 (court, date, start) 的 ACTIVE 预订时，
// 后到者得到 gorm.ErrDuplicatedKey，与真实库行为一致。

type mockBookingRepo struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*model.Booking
	courts   *mockCourtRepo
}

func newMockBookingRepo(courts *mockCourtRepo) *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.Booking), courts: courts}
}

func (m *mockBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 模拟部分唯一索引 uniq_active_booking (court_id, date, start_time) WHERE status='ACTIVE'
	if booking.Status == model.BookingStatusActive {
		for _, b := range m.bookings {
			if b.Status == model.BookingStatusActive &&
				b.CourtID == booking.CourtID &&
				b.Date.Format(model.DateLayout) == booking.Date.Format(model.DateLayout) &&
				b.StartTime == booking.StartTime {
				return gorm.ErrDuplicatedKey
			}
		}
	}

	if booking.BookingID == "" {
		m.seq++
		booking.BookingID = fmt.Sprintf("bk-%03d", m.seq)
	}
	booking.CreatedAt = time.Now()
	stored := *booking
	m.bookings[booking.BookingID] = &stored
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id, businessID string) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.bookings[id]; ok && b.BusinessID == businessID {
		cp := *b
		if c, ok := m.courts.courts[b.CourtID]; ok {
			cp.Court = c
		}
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) ListByBusiness(_ context.Context, businessID, courtID string, date *time.Time, status string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Booking
	for _, b := range m.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if courtID != "" && b.CourtID != courtID {
			continue
		}
		if date != nil && b.Date.Format(model.DateLayout) != date.Format(model.DateLayout) {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBookingRepo) ListActiveByCourtDate(_ context.Context, courtID string, date time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Booking
	for _, b := range m.bookings {
		if b.CourtID == courtID &&
			b.Status == model.BookingStatusActive &&
			b.Date.Format(model.DateLayout) == date.Format(model.DateLayout) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListByBusinessRange(_ context.Context, businessID string, from, to time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Booking
	for _, b := range m.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		cp := *b
		if c, ok := m.courts.courts[b.CourtID]; ok {
			cp.Court = c
		}
		result = append(result, cp)
	}
	return result, nil
}

func (m *mockBookingRepo) FirstOverlappingActive(_ context.Context, courtID string, date time.Time, startTime, endTime string, excludeID string, _ bool) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bookings {
		if b.CourtID != courtID || b.Status != model.BookingStatusActive {
			continue
		}
		if b.Date.Format(model.DateLayout) != date.Format(model.DateLayout) {
			continue
		}
		if excludeID != "" && b.BookingID == excludeID {
			continue
		}
		// 半开区间重叠：start_time < endTime AND end_time > startTime
		if b.StartTime < endTime && b.EndTime > startTime {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) Update(_ context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *booking
	stored.Court = nil
	m.bookings[booking.BookingID] = &stored
	return nil
}

func (m *mockBookingRepo) CountActiveByCourt(_ context.Context, courtID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, b := range m.bookings {
		if b.CourtID == courtID && b.Status == model.BookingStatusActive {
			count++
		}
	}
	return count, nil
}

// [自证通过] internal/service/mock_repos_test.go
