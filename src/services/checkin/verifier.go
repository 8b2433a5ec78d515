package checkin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"Backend-GeoAttend/src/geofence"
	"Backend-GeoAttend/src/models"
	"Backend-GeoAttend/src/services/registrations"
	"Backend-GeoAttend/src/services/sessions"
	"Backend-GeoAttend/src/sessioncode"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// State ขั้นตอนของการเช็คชื่อหนึ่งครั้ง
type State string

const (
	StateIdle      State = "idle"
	StateLocating  State = "locating"
	StateVerifying State = "verifying"
	StateSuccess   State = "success"
	StateError     State = "error"
)

var (
	// ErrIncompleteCode: the code is not yet 8 valid characters. The attempt
	// never leaves Idle; submission should have been disabled client-side.
	ErrIncompleteCode = errors.New("session code incomplete or malformed")

	// ErrNotRegisteredForCourse นิสิตไม่ได้ลงทะเบียนรายวิชาของ session นี้
	ErrNotRegisteredForCourse = errors.New("student not registered for this course")

	// ErrLocationUnavailable (strict policy only) ไม่สามารถอ่านตำแหน่งได้
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrOutsideVenue (strict policy only) ตำแหน่งอยู่นอกขอบเขตของ venue
	ErrOutsideVenue = errors.New("location outside venue geofence")

	// ErrVerificationUnavailable: infrastructure fault, retryable, distinct
	// from the domain rejections above so tests can assert on the taxonomy.
	ErrVerificationUnavailable = errors.New("verification temporarily unavailable")
)

// Locator acquires a location sample for an attempt. The default production
// locator trusts the sample the client already attached to the request; tests
// substitute failing or slow locators.
type Locator interface {
	Locate(ctx context.Context, req models.CheckInRequest) (*models.LatLng, error)
}

// ClientLocator uses the coordinates supplied in the check-in payload.
type ClientLocator struct{}

func (ClientLocator) Locate(_ context.Context, req models.CheckInRequest) (*models.LatLng, error) {
	if req.Location == nil {
		return nil, ErrLocationUnavailable
	}
	return req.Location, nil
}

// VenueFinder resolves the session's venue for the geofence stamp.
type VenueFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Venue, error)
}

// Config ตัวเลือกนโยบายของการเช็คชื่อ
type Config struct {
	// RequireLocation upgrades location failure and out-of-fence samples from
	// soft (logged, check-in proceeds) to fatal. The permissive default
	// mirrors the original behavior; the flag makes the policy explicit.
	RequireLocation bool
	// LocationTimeout bounds the Locating step. Zero means 5 seconds.
	LocationTimeout time.Duration
}

const defaultLocationTimeout = 5 * time.Second

// Result is the outcome of one check-in attempt.
type Result struct {
	State            State            `json:"state"`
	Session          *models.Session  `json:"session,omitempty"`
	AlreadyCheckedIn bool             `json:"alreadyCheckedIn"`
	Location         *models.LatLng   `json:"location,omitempty"`
	WithinGeofence   *bool            `json:"withinGeofence,omitempty"`
}

// Verifier drives the check-in protocol: acquire location, verify the code
// against live sessions, check registration, record attendance. All
// collaborators are injected.
type Verifier struct {
	sessions      *sessions.Service
	registrations registrations.Lookup
	locator       Locator
	venues        VenueFinder
	cfg           Config
}

func NewVerifier(sessionSvc *sessions.Service, reg registrations.Lookup, locator Locator, venues VenueFinder, cfg Config) *Verifier {
	if locator == nil {
		locator = ClientLocator{}
	}
	if cfg.LocationTimeout <= 0 {
		cfg.LocationTimeout = defaultLocationTimeout
	}
	return &Verifier{
		sessions:      sessionSvc,
		registrations: reg,
		locator:       locator,
		venues:        venues,
		cfg:           cfg,
	}
}

// CheckIn walks one attempt through Idle → Locating → Verifying and ends in
// Success or Error. Locating always precedes Verifying. No error path leaves
// the attendee counter mutated.
func (v *Verifier) CheckIn(ctx context.Context, req models.CheckInRequest) (*Result, error) {
	code := sessioncode.Normalize(req.Code)
	if !sessioncode.IsValid(code) {
		// not a failed attempt: the code was never complete
		return &Result{State: StateIdle}, ErrIncompleteCode
	}

	// --- Locating ---
	sample, err := v.locate(ctx, req)
	if err != nil {
		if v.cfg.RequireLocation {
			return &Result{State: StateError}, ErrLocationUnavailable
		}
		// soft policy: degrade to no sample and keep going
		log.Println("ℹ️ Location unavailable, proceeding without sample:", err)
		sample = nil
	}

	// --- Verifying ---
	now := v.sessions.Now()
	session, err := v.sessions.FindSessionByCode(ctx, code, now)
	if err != nil {
		if errors.Is(err, sessions.ErrInvalidOrExpiredCode) {
			return &Result{State: StateError}, err
		}
		return &Result{State: StateError}, fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}

	registered, err := v.registrations.IsRegistered(ctx, req.StudentID, session.CourseCode)
	if err != nil {
		return &Result{State: StateError}, fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}
	if !registered {
		return &Result{State: StateError, Session: session}, ErrNotRegisteredForCourse
	}

	within := v.geofenceStamp(ctx, session, sample)
	if v.cfg.RequireLocation && within != nil && !*within {
		return &Result{State: StateError, Session: session, Location: sample, WithinGeofence: within}, ErrOutsideVenue
	}

	claimed, err := v.sessions.RecordAttendance(ctx, session, req.StudentID, sample, within)
	if err != nil {
		return &Result{State: StateError, Session: session}, fmt.Errorf("%w: %v", ErrVerificationUnavailable, err)
	}
	if claimed {
		session.AttendeeCount++
	}

	// a repeat submission is an idempotent success, not an error: flaky
	// networks double-submit and must not be penalized
	return &Result{
		State:            StateSuccess,
		Session:          session,
		AlreadyCheckedIn: !claimed,
		Location:         sample,
		WithinGeofence:   within,
	}, nil
}

func (v *Verifier) locate(ctx context.Context, req models.CheckInRequest) (*models.LatLng, error) {
	ctx, cancel := context.WithTimeout(ctx, v.cfg.LocationTimeout)
	defer cancel()

	type located struct {
		sample *models.LatLng
		err    error
	}
	ch := make(chan located, 1)
	go func() {
		sample, err := v.locator.Locate(ctx, req)
		ch <- located{sample, err}
	}()

	select {
	case res := <-ch:
		return res.sample, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// geofenceStamp resolves the session venue and tests containment. Any fault
// here is contained: a venue without usable geometry simply yields no stamp.
func (v *Verifier) geofenceStamp(ctx context.Context, session *models.Session, sample *models.LatLng) *bool {
	if sample == nil || v.venues == nil || session.VenueID.IsZero() {
		return nil
	}
	venue, err := v.venues.FindByID(ctx, session.VenueID)
	if err != nil || venue == nil {
		log.Println("ℹ️ Venue lookup failed, skipping geofence stamp:", err)
		return nil
	}
	within, err := geofence.VenueContains(*venue, *sample)
	if err != nil {
		log.Println("ℹ️ Venue has invalid geometry, skipping geofence stamp:", venue.ID.Hex())
		return nil
	}
	return &within
}
