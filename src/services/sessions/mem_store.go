package sessions

import (
	"context"
	"sort"
	"strings"
	"sync"

	"Backend-GeoAttend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory Store used in tests and local development without
// a MongoDB instance. Claim semantics match MongoStore: the mutex plays the
// role of the unique index.
type MemStore struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]models.Session
	claims   map[string]models.AttendanceRecord // key: sessionID.Hex() + "/" + studentID
}

func NewMemStore() *MemStore {
	return &MemStore{
		sessions: make(map[primitive.ObjectID]models.Session),
		claims:   make(map[string]models.AttendanceRecord),
	}
}

func claimKey(sessionID primitive.ObjectID, studentID string) string {
	return sessionID.Hex() + "/" + studentID
}

func (m *MemStore) Insert(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *MemStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (m *MemStore) FindByCode(_ context.Context, code string) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Session
	for _, s := range m.sessions {
		if s.Code == code {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (m *MemStore) List(_ context.Context, params models.PaginationParams) ([]models.Session, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []models.Session
	for _, s := range m.sessions {
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(s.CourseCode), strings.ToLower(params.Search)) &&
			!strings.Contains(strings.ToLower(s.CourseName), strings.ToLower(params.Search)) {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if params.Order == "desc" {
			return all[i].StartTime.After(all[j].StartTime)
		}
		return all[i].StartTime.Before(all[j].StartTime)
	})

	total := int64(len(all))
	skip := int(params.GetSkip())
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + params.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (m *MemStore) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Active = active
	m.sessions[id] = session
	return nil
}

func (m *MemStore) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	for key, rec := range m.claims {
		if rec.SessionID == id {
			delete(m.claims, key)
		}
	}
	return nil
}

func (m *MemStore) ClaimAttendance(_ context.Context, record *models.AttendanceRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := claimKey(record.SessionID, record.StudentID)
	if _, taken := m.claims[key]; taken {
		return false, nil
	}
	m.claims[key] = *record

	session, ok := m.sessions[record.SessionID]
	if ok {
		session.AttendeeCount++
		m.sessions[record.SessionID] = session
	}
	return true, nil
}

func (m *MemStore) ListAttendance(_ context.Context, sessionID primitive.ObjectID) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.AttendanceRecord
	for _, rec := range m.claims {
		if rec.SessionID == sessionID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}
