package sessions

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"Backend-GeoAttend/src/models"
	"Backend-GeoAttend/src/sessioncode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrCodeSpaceExhausted แจ้งว่า re-roll code ครบจำนวนครั้งแล้วยังชนกับ session ที่ยัง live อยู่
	// Practically unreachable given the 32^8 code space, but a defined failure
	// rather than a silent one.
	ErrCodeSpaceExhausted = errors.New("session code space exhausted")

	// ErrInvalidOrExpiredCode คือผลลัพธ์เดียวที่ caller เห็น ไม่ว่า code จะไม่มีอยู่จริงหรือหมดอายุแล้ว
	ErrInvalidOrExpiredCode = errors.New("invalid or expired session code")

	// ErrSessionNotFound session ไม่มีอยู่ (lookup by id)
	ErrSessionNotFound = errors.New("session not found")
)

const maxCodeAttempts = 10

// Store is the persistence boundary for sessions and their attendance
// records. Production uses MongoStore; tests use MemStore.
type Store interface {
	Insert(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	// FindByCode returns every session carrying the code, newest first.
	// Liveness is the service's call, not the store's.
	FindByCode(ctx context.Context, code string) ([]models.Session, error)
	List(ctx context.Context, params models.PaginationParams) ([]models.Session, int64, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	// Delete removes the session and cascades to its attendance records.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ClaimAttendance atomically marks (sessionId, studentId) consumed and
	// increments the attendee counter. Returns false with no increment when
	// the pair was already claimed.
	ClaimAttendance(ctx context.Context, record *models.AttendanceRecord) (bool, error)
	ListAttendance(ctx context.Context, sessionID primitive.ObjectID) ([]models.AttendanceRecord, error)
}

// CloseScheduler schedules the auto-close job that flips active=false once a
// session passes its end time. Nil when asynq/Redis is not configured.
type CloseScheduler func(sessionID string, endTime time.Time) error

// Service owns session creation, expiry computation and attendee bookkeeping.
// Dependencies are injected so the store can be swapped for a real datastore
// or an in-memory one under test.
type Service struct {
	store     Store
	now       func() time.Time
	generate  func(length int) string
	scheduler CloseScheduler
}

// Option ปรับแต่ง Service ตอนสร้าง
type Option func(*Service)

// WithClock overrides the wall clock (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCodeGenerator overrides code generation (tests force collisions).
func WithCodeGenerator(gen func(length int) string) Option {
	return func(s *Service) { s.generate = gen }
}

// WithCloseScheduler wires the asynq auto-close job.
func WithCloseScheduler(sched CloseScheduler) Option {
	return func(s *Service) { s.scheduler = sched }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		now:      time.Now,
		generate: sessioncode.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsExpired is the single source of truth for session liveness: a session is
// expired once now passes its end time, regardless of the stored active flag.
func IsExpired(session *models.Session, now time.Time) bool {
	return now.After(session.EndTime)
}

// IsUsable ANDs the manual active flag with computed expiry. A session closed
// early by its lecturer is unusable before its end time; a session past its
// end time is unusable no matter what the flag says.
func IsUsable(session *models.Session, now time.Time) bool {
	return session.Active && !IsExpired(session, now)
}

// CreateSession opens a new time-boxed session for a course. The code is
// re-rolled when it collides with any still-live session, bounded at
// maxCodeAttempts.
func (s *Service) CreateSession(ctx context.Context, req models.CreateSessionRequest, createdBy string) (*models.Session, error) {
	if req.DurationUnit != models.DurationMinutes && req.DurationUnit != models.DurationHours {
		return nil, fmt.Errorf("unknown duration unit %q", req.DurationUnit)
	}
	if req.DurationValue <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", req.DurationValue)
	}

	now := s.now()
	code, err := s.uniqueCode(ctx, now)
	if err != nil {
		return nil, err
	}

	venueID := primitive.NilObjectID
	if req.VenueID != "" {
		venueID, err = primitive.ObjectIDFromHex(req.VenueID)
		if err != nil {
			return nil, fmt.Errorf("invalid venue id: %w", err)
		}
	}

	session := &models.Session{
		ID:            primitive.NewObjectID(),
		CourseCode:    req.CourseCode,
		CourseName:    req.CourseName,
		VenueID:       venueID,
		StartTime:     now,
		EndTime:       now.Add(req.Duration()),
		Code:          code,
		AttendeeCount: 0,
		Active:        true,
		CreatedBy:     createdBy,
	}

	if err := s.store.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	if s.scheduler != nil {
		if err := s.scheduler(session.ID.Hex(), session.EndTime); err != nil {
			// scheduling is best-effort: expiry is computed from EndTime anyway
			log.Println("⚠️ Failed to schedule session close job:", err)
		}
	}

	return session, nil
}

// uniqueCode re-rolls until the code collides with no live session.
func (s *Service) uniqueCode(ctx context.Context, now time.Time) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.generate(sessioncode.CodeLength)
		existing, err := s.store.FindByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("code collision check: %w", err)
		}
		live := false
		for i := range existing {
			if IsUsable(&existing[i], now) {
				live = true
				break
			}
		}
		if !live {
			return code, nil
		}
		log.Println("⚠️ Session code collision, regenerating:", code)
	}
	return "", ErrCodeSpaceExhausted
}

// FindSessionByCode resolves a presented code to its live session. Codes are
// normalized to uppercase on both generation and lookup. A code matching only
// expired or closed sessions surfaces exactly like an unknown code.
func (s *Service) FindSessionByCode(ctx context.Context, code string, now time.Time) (*models.Session, error) {
	normalized := sessioncode.Normalize(code)
	if !sessioncode.IsValid(normalized) {
		return nil, ErrInvalidOrExpiredCode
	}

	candidates, err := s.store.FindByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("find session by code: %w", err)
	}
	for i := range candidates {
		if IsUsable(&candidates[i], now) {
			return &candidates[i], nil
		}
	}
	if len(candidates) > 0 {
		// distinguishable internally from "no such code", identical to the caller
		log.Println("ℹ️ Code matched only expired/closed sessions:", normalized)
	}
	return nil, ErrInvalidOrExpiredCode
}

// RecordAttendance claims (sessionId, studentId) and bumps the attendee
// counter by exactly one. A repeat claim is reported, not counted: the second
// return value is false and the counter is untouched.
func (s *Service) RecordAttendance(ctx context.Context, session *models.Session, studentID string, location *models.LatLng, withinGeofence *bool) (bool, error) {
	record := &models.AttendanceRecord{
		ID:             primitive.NewObjectID(),
		SessionID:      session.ID,
		StudentID:      studentID,
		CourseCode:     session.CourseCode,
		Timestamp:      s.now(),
		Location:       location,
		WithinGeofence: withinGeofence,
	}
	claimed, err := s.store.ClaimAttendance(ctx, record)
	if err != nil {
		return false, fmt.Errorf("claim attendance: %w", err)
	}
	return claimed, nil
}

// GetSessionByID ดึง session ตาม id
func (s *Service) GetSessionByID(ctx context.Context, id string) (*models.Session, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := s.store.FindByID(ctx, objID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetSessions ดึง session ทั้งหมดพร้อม pagination
func (s *Service) GetSessions(ctx context.Context, params models.PaginationParams) ([]models.Session, int64, error) {
	return s.store.List(ctx, params)
}

// DeactivateSession closes a session early. Expiry still wins either way.
func (s *Service) DeactivateSession(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrSessionNotFound
	}
	return s.store.SetActive(ctx, objID, false)
}

// DeleteSession tears a session down, cascading to its attendance records.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrSessionNotFound
	}
	return s.store.Delete(ctx, objID)
}

// GetAttendance รายชื่อการเช็คชื่อของ session
func (s *Service) GetAttendance(ctx context.Context, sessionID string) ([]models.AttendanceRecord, error) {
	objID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return s.store.ListAttendance(ctx, objID)
}

// Now exposes the service clock so callers share one notion of current time.
func (s *Service) Now() time.Time {
	return s.now()
}
