package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/example/curator/internal/core/extraction"
	"github.com/example/curator/internal/ports/secondary"
)

// Ensure the mocks implement their interfaces
var (
	_ secondary.RecordRepository       = (*mockRecordRepo)(nil)
	_ secondary.ExtractionRepository   = (*mockExtractionRepo)(nil)
	_ secondary.ConflictRepository     = (*mockConflictRepo)(nil)
	_ secondary.PurgeRepository        = (*mockPurgeRepo)(nil)
	_ secondary.NotificationRepository = (*mockNotificationRepo)(nil)
	_ secondary.SessionRepository      = (*mockSessionRepo)(nil)
	_ secondary.ContextClient          = (*mockContextClient)(nil)
)

// mockRecordRepo implements secondary.RecordRepository in memory.
type mockRecordRepo struct {
	tables map[string][]*secondary.RecordEntry

	insertErr error
	updateErr error
	listErr   error
	deleteErr error
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{tables: make(map[string][]*secondary.RecordEntry)}
}

func (m *mockRecordRepo) Insert(ctx context.Context, table string, rec *secondary.RecordEntry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	copied := *rec
	m.tables[table] = append(m.tables[table], &copied)
	return nil
}

func (m *mockRecordRepo) GetByID(ctx context.Context, table, id string) (*secondary.RecordEntry, error) {
	for _, rec := range m.tables[table] {
		if rec.ID == id {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("record %s not found in %s", id, table)
}

func (m *mockRecordRepo) UpdateContent(ctx context.Context, table, id, content string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for _, rec := range m.tables[table] {
		if rec.ID == id {
			rec.Content = content
			return nil
		}
	}
	return fmt.Errorf("record %s not found in %s", id, table)
}

func (m *mockRecordRepo) List(ctx context.Context, table string, filters secondary.RecordFilters) ([]*secondary.RecordEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*secondary.RecordEntry
	for _, rec := range m.tables[table] {
		if filters.ProjectID != "" && rec.ProjectID != filters.ProjectID {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockRecordRepo) ListOrderedByCreation(ctx context.Context, table string) ([]*secondary.RecordEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*secondary.RecordEntry, 0, len(m.tables[table]))
	for _, rec := range m.tables[table] {
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockRecordRepo) FindDuplicate(ctx context.Context, table, projectID, clientID, platformID, titlePrefix string) (*secondary.RecordEntry, error) {
	if titlePrefix == "" {
		return nil, nil
	}
	for _, rec := range m.tables[table] {
		if rec.ProjectID != projectID || rec.ClientID != clientID || rec.PlatformID != platformID {
			continue
		}
		if strings.HasPrefix(extraction.NormalizeTitle(rec.Title), strings.ToLower(titlePrefix)) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockRecordRepo) DeleteByIDs(ctx context.Context, table string, ids []string) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	var kept []*secondary.RecordEntry
	deleted := 0
	for _, rec := range m.tables[table] {
		if doomed[rec.ID] {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	m.tables[table] = kept
	return deleted, nil
}

func (m *mockRecordRepo) CountByIDs(ctx context.Context, table string, ids []string) (int, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	count := 0
	for _, rec := range m.tables[table] {
		if wanted[rec.ID] {
			count++
		}
	}
	return count, nil
}

// mockExtractionRepo implements secondary.ExtractionRepository in memory.
type mockExtractionRepo struct {
	records map[string]*secondary.ExtractionRecord
	order   []string
}

func newMockExtractionRepo() *mockExtractionRepo {
	return &mockExtractionRepo{records: make(map[string]*secondary.ExtractionRecord)}
}

func (m *mockExtractionRepo) Create(ctx context.Context, rec *secondary.ExtractionRecord) error {
	if rec.Status == "" {
		rec.Status = secondary.ExtractionPending
	}
	copied := *rec
	m.records[rec.ID] = &copied
	m.order = append(m.order, rec.ID)
	return nil
}

func (m *mockExtractionRepo) GetByID(ctx context.Context, id string) (*secondary.ExtractionRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("extraction %s not found", id)
	}
	copied := *rec
	return &copied, nil
}

func (m *mockExtractionRepo) ListPending(ctx context.Context, limit int) ([]*secondary.ExtractionRecord, error) {
	var out []*secondary.ExtractionRecord
	for _, id := range m.order {
		rec := m.records[id]
		if rec.Status != secondary.ExtractionPending {
			continue
		}
		copied := *rec
		out = append(out, &copied)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockExtractionRepo) MarkProcessed(ctx context.Context, id string) error {
	return m.setStatus(id, secondary.ExtractionProcessed, "")
}

func (m *mockExtractionRepo) MarkSkipped(ctx context.Context, id, reason string) error {
	return m.setStatus(id, secondary.ExtractionSkipped, reason)
}

func (m *mockExtractionRepo) MarkFailed(ctx context.Context, id, errMsg string) error {
	if err := m.setStatus(id, secondary.ExtractionFailed, errMsg); err != nil {
		return err
	}
	m.records[id].Attempts++
	return nil
}

func (m *mockExtractionRepo) Requeue(ctx context.Context, id string) error {
	rec, ok := m.records[id]
	if !ok || rec.Status != secondary.ExtractionFailed {
		return fmt.Errorf("extraction %s is not in failed status", id)
	}
	rec.Status = secondary.ExtractionPending
	rec.ProcessedAt = ""
	return nil
}

func (m *mockExtractionRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, rec := range m.records {
		counts[rec.Status]++
	}
	return counts, nil
}

func (m *mockExtractionRepo) setStatus(id, status, meta string) error {
	rec, ok := m.records[id]
	if !ok {
		return fmt.Errorf("extraction %s not found", id)
	}
	rec.Status = status
	if meta != "" {
		rec.Metadata = meta
	}
	rec.ProcessedAt = time.Now().UTC().Format(time.RFC3339)
	return nil
}

// mockConflictRepo implements secondary.ConflictRepository in memory.
type mockConflictRepo struct {
	records map[string]*secondary.ConflictRecord
	nextID  int
}

func newMockConflictRepo() *mockConflictRepo {
	return &mockConflictRepo{records: make(map[string]*secondary.ConflictRecord)}
}

func (m *mockConflictRepo) Create(ctx context.Context, rec *secondary.ConflictRecord) error {
	copied := *rec
	m.records[rec.ID] = &copied
	return nil
}

func (m *mockConflictRepo) GetByID(ctx context.Context, id string) (*secondary.ConflictRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("conflict %s not found", id)
	}
	copied := *rec
	return &copied, nil
}

func (m *mockConflictRepo) List(ctx context.Context, filters secondary.ConflictFilters) ([]*secondary.ConflictRecord, error) {
	var out []*secondary.ConflictRecord
	for _, rec := range m.records {
		if filters.Status != "" && rec.Status != filters.Status {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockConflictRepo) MarkResolved(ctx context.Context, id, status, resolvedBy, notes, resolvedAt string) error {
	rec, ok := m.records[id]
	if !ok {
		return fmt.Errorf("conflict %s not found", id)
	}
	rec.Status = status
	rec.ResolvedBy = resolvedBy
	rec.ResolutionNotes = notes
	rec.ResolvedAt = resolvedAt
	return nil
}

func (m *mockConflictRepo) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("CONF-%03d", m.nextID), nil
}

// mockPurgeRepo implements secondary.PurgeRepository in memory.
type mockPurgeRepo struct {
	records map[string]*secondary.PurgeRecord
	nextID  int
}

func newMockPurgeRepo() *mockPurgeRepo {
	return &mockPurgeRepo{records: make(map[string]*secondary.PurgeRecord)}
}

func (m *mockPurgeRepo) Create(ctx context.Context, rec *secondary.PurgeRecord) error {
	copied := *rec
	m.records[rec.ID] = &copied
	return nil
}

func (m *mockPurgeRepo) GetByID(ctx context.Context, id string) (*secondary.PurgeRecord, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("purge request %s not found", id)
	}
	copied := *rec
	return &copied, nil
}

func (m *mockPurgeRepo) List(ctx context.Context, filters secondary.PurgeFilters) ([]*secondary.PurgeRecord, error) {
	var out []*secondary.PurgeRecord
	for _, rec := range m.records {
		if filters.Status != "" && rec.Status != filters.Status {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPurgeRepo) MarkReviewed(ctx context.Context, id, status, reviewedBy, reviewedAt string) error {
	rec, ok := m.records[id]
	if !ok {
		return fmt.Errorf("purge request %s not found", id)
	}
	rec.Status = status
	rec.ReviewedBy = reviewedBy
	rec.ReviewedAt = reviewedAt
	return nil
}

func (m *mockPurgeRepo) MarkExecuted(ctx context.Context, id, executedAt string) error {
	rec, ok := m.records[id]
	if !ok {
		return fmt.Errorf("purge request %s not found", id)
	}
	rec.ExecutedAt = executedAt
	return nil
}

func (m *mockPurgeRepo) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("PURGE-%03d", m.nextID), nil
}

// mockNotificationRepo implements secondary.NotificationRepository in memory.
type mockNotificationRepo struct {
	records []*secondary.NotificationRecord
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(ctx context.Context, rec *secondary.NotificationRecord) error {
	copied := *rec
	m.records = append(m.records, &copied)
	return nil
}

func (m *mockNotificationRepo) List(ctx context.Context, filters secondary.NotificationFilters) ([]*secondary.NotificationRecord, error) {
	var out []*secondary.NotificationRecord
	for _, rec := range m.records {
		if filters.Status != "" && rec.Status != filters.Status {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockNotificationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, rec := range m.records {
		if rec.ID == id {
			rec.Status = status
			return nil
		}
	}
	return fmt.Errorf("notification %s not found", id)
}

// mockSessionRepo implements secondary.SessionRepository in memory.
type mockSessionRepo struct {
	emptyDeleted   int
	messageDeleted int
	deleteErr      error

	// blockUntil, when set, makes the first delete call wait. Used to
	// hold a sweep cycle open.
	blockUntil chan struct{}
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{}
}

func (m *mockSessionRepo) DeleteEmptySessionsBefore(ctx context.Context, cutoff string) (int, error) {
	if m.blockUntil != nil {
		<-m.blockUntil
	}
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.emptyDeleted, nil
}

func (m *mockSessionRepo) DeleteMessagesOfCompletedBefore(ctx context.Context, cutoff string) (int, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	return m.messageDeleted, nil
}

// mockContextClient implements secondary.ContextClient for testing.
type mockContextClient struct {
	context *secondary.ProjectContext
}

func (m *mockContextClient) FetchProjectContext(ctx context.Context, projectID string) (*secondary.ProjectContext, error) {
	return m.context, nil
}
