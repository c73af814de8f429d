package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/testutil"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

type memReceipts struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	putErr  error
}

func newMemReceipts() *memReceipts {
	return &memReceipts{objects: map[string][]byte{}}
}

func (m *memReceipts) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return nil
}

func (m *memReceipts) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return errors.New("no such key")
	}
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *memReceipts) URL(key string) string { return "https://cdn.test/" + key }

type sentMail struct {
	To, Subject, Body string
}

type memMailer struct {
	sent []sentMail
	err  error
}

func (m *memMailer) Send(_ context.Context, to, subject, body string) error {
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return m.err
}

// testEnv wires the services over a fresh database with a fixed clock.
type testEnv struct {
	users      *repositories.UserRepository
	appliances *repositories.ApplianceRepository
	records    *repositories.ServiceRecordRepository
	alerts     *repositories.AlertRepository

	receipts *memReceipts
	mailer   *memMailer
	notifier *recordingNotifier

	warranty *WarrantyService
	appl     *ApplianceService
	svcRecs  *ServiceRecordService
	auth     *AuthService
	profile  *UserService
	admin    *AdminService
	jwt      *utils.JWTManager
	today    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	log := zap.NewNop()
	today := date(2024, time.December, 20)
	clock := func() time.Time { return today.Add(10 * time.Hour) }

	e := &testEnv{
		users:      repositories.NewUserRepository(db),
		appliances: repositories.NewApplianceRepository(db),
		records:    repositories.NewServiceRecordRepository(db),
		alerts:     repositories.NewAlertRepository(db),
		receipts:   newMemReceipts(),
		mailer:     &memMailer{},
		notifier:   &recordingNotifier{},
		jwt:        utils.NewJWTManager(strings.Repeat("k", 32), time.Hour),
		today:      today,
	}
	e.warranty = NewWarrantyService(e.appliances, e.notifier, log)
	e.warranty.now = clock
	e.appl = NewApplianceService(e.appliances, e.receipts, e.warranty, log)
	e.svcRecs = NewServiceRecordService(e.records, e.appliances)
	e.svcRecs.now = clock
	e.auth = NewAuthService(e.users, e.jwt, e.mailer, "https://app.test/", log)
	e.auth.hashCost = bcrypt.MinCost
	e.auth.now = clock
	e.profile = NewUserService(e.users)
	e.admin = NewAdminService(e.users, e.appl, e.appliances, e.records, e.receipts, log)
	return e
}

func (e *testEnv) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), email, "password123", "Test User")
	require.NoError(t, err)
	return u
}

func receipt(name, body string) *ReceiptUpload {
	return &ReceiptUpload{Filename: name, Size: int64(len(body)), Body: bytes.NewBufferString(body)}
}
