package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"storefront/internal/models/db_models"
	pm "storefront/internal/models/payment_models"
)

type staticSecrets map[string]string

func (s staticSecrets) Resolve(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// MockGateway implements PaymentGateway and captures the last spec.
type MockGateway struct {
	Created *pm.CreatedSession
	Err     error
	Calls   int
	Spec    *pm.GatewaySessionSpec
}

func (m *MockGateway) CreateSession(_ context.Context, spec *pm.GatewaySessionSpec) (*pm.CreatedSession, error) {
	m.Calls++
	m.Spec = spec
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Created, nil
}

// MockReconciler implements ReconciliationService and records which handler ran.
type MockReconciler struct {
	Orders        []pm.GatewaySession
	Invoices      []string
	Subscriptions []pm.GatewayInvoice
	Err           error
}

func (m *MockReconciler) CreateOrder(_ context.Context, session pm.GatewaySession) error {
	m.Orders = append(m.Orders, session)
	return m.Err
}

func (m *MockReconciler) MarkInvoiceSubmitted(_ context.Context, id string, _ pm.GatewaySession) error {
	m.Invoices = append(m.Invoices, id)
	return m.Err
}

func (m *MockReconciler) RecordSubscriptionPayment(_ context.Context, invoice pm.GatewayInvoice) error {
	m.Subscriptions = append(m.Subscriptions, invoice)
	return m.Err
}

// MockNotifier implements PaymentNotifier.
type MockNotifier struct {
	mu   sync.Mutex
	Sent []*db_models.Order
	Err  error
}

func (m *MockNotifier) OrderConfirmed(_ context.Context, order *db_models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, order)
	return m.Err
}

// MockUserRepository implements repositories.UserRepository.
type MockUserRepository struct {
	Users map[string]*db_models.User
	Err   error
}

func (m *MockUserRepository) FindByEmail(_ context.Context, email string) (*db_models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[email], nil
}

// MockFinanceRepository implements repositories.FinanceRepository in memory.
type MockFinanceRepository struct {
	mu      sync.Mutex
	Records map[uuid.UUID]*db_models.FinanceRecord
	Err     error
	Reads   int
}

func NewMockFinanceRepository() *MockFinanceRepository {
	return &MockFinanceRepository{Records: map[uuid.UUID]*db_models.FinanceRecord{}}
}

func (m *MockFinanceRepository) Create(_ context.Context, record *db_models.FinanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.Records[record.ID] = record
	return nil
}

func (m *MockFinanceRepository) CreateIfAbsent(_ context.Context, record *db_models.FinanceRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Records[record.ID]; ok {
		return false, nil
	}
	m.Records[record.ID] = record
	return true, nil
}

func (m *MockFinanceRepository) FindByID(_ context.Context, id uuid.UUID) (*db_models.FinanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records[id], nil
}

func (m *MockFinanceRepository) FindBySessionID(_ context.Context, sessionID string) (*db_models.FinanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.Records {
		if r.GatewaySessionID != nil && *r.GatewaySessionID == sessionID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockFinanceRepository) MarkPaymentSubmitted(_ context.Context, id uuid.UUID, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	r, ok := m.Records[id]
	if !ok || r.Status == db_models.FinanceStatusPaid {
		return false, nil
	}
	r.Status = db_models.FinanceStatusPaymentSubmitted
	r.GatewaySessionID = &sessionID
	return true, nil
}

func (m *MockFinanceRepository) ConfirmPaid(_ context.Context, id uuid.UUID, paidAt int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	r, ok := m.Records[id]
	if !ok || r.Status != db_models.FinanceStatusPaymentSubmitted {
		return false, nil
	}
	r.Status = db_models.FinanceStatusPaid
	r.PaidAt = &paidAt
	return true, nil
}

func (m *MockFinanceRepository) List(_ context.Context, page, pageSize int) ([]db_models.FinanceRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var out []db_models.FinanceRecord
	for _, r := range m.Records {
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

// MockOrderRepository implements repositories.OrderRepository in memory.
type MockOrderRepository struct {
	mu     sync.Mutex
	Orders map[string]*db_models.Order
	Err    error
	Calls  int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{Orders: map[string]*db_models.Order{}}
}

func (m *MockOrderRepository) CreateIfAbsent(_ context.Context, order *db_models.Order) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Orders[order.GatewaySessionID]; ok {
		return false, nil
	}
	m.Orders[order.GatewaySessionID] = order
	return true, nil
}

func (m *MockOrderRepository) FindBySessionID(_ context.Context, sessionID string) (*db_models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Orders[sessionID], nil
}

func (m *MockOrderRepository) List(_ context.Context, page, pageSize int) ([]db_models.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var out []db_models.Order
	for _, o := range m.Orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}
