package sessions

import (
	"context"
	"testing"
	"time"

	"Backend-GeoAttend/src/models"
	"Backend-GeoAttend/src/sessioncode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

// fixedClock คืนเวลาเดิมเสมอ ปรับได้จากในเทสต์
type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time        { return c.now }
func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(clock *fixedClock, opts ...Option) (*Service, *MemStore) {
	store := NewMemStore()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewService(store, opts...), store
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("SixtyMinutesIsExactlyOneHour", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock)

		session, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode:    "CS402",
			CourseName:    "Distributed Systems",
			DurationValue: 60,
			DurationUnit:  models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		assert.Equal(t, baseTime, session.StartTime)
		// 60 นาที = 3,600,000ms พอดี
		assert.Equal(t, time.Duration(3600000)*time.Millisecond, session.EndTime.Sub(session.StartTime))
		assert.True(t, session.Active)
		assert.Equal(t, 0, session.AttendeeCount)
		assert.True(t, sessioncode.IsValid(session.Code))
	})

	t.Run("HoursUnit", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock)

		session, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode:    "CS402",
			CourseName:    "Distributed Systems",
			DurationValue: 2,
			DurationUnit:  models.DurationHours,
		}, "lecturer-1")
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, session.EndTime.Sub(session.StartTime))
	})

	t.Run("RejectsBadDuration", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock)

		_, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 0, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		assert.Error(t, err)

		_, err = svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 30, DurationUnit: "days",
		}, "lecturer-1")
		assert.Error(t, err)
	})

	t.Run("RerollsOnLiveCollision", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		codes := []string{"AWD82X9L", "AWD82X9L", "BBBBBBBB"}
		i := 0
		svc, _ := newTestService(clock, WithCodeGenerator(func(length int) string {
			code := codes[i]
			i++
			return code
		}))

		first, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)
		assert.Equal(t, "AWD82X9L", first.Code)

		// code แรกชนกับ session ที่ยัง live อยู่ ต้อง re-roll
		second, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS403", CourseName: "y", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)
		assert.Equal(t, "BBBBBBBB", second.Code)
	})

	t.Run("ExpiredSessionFreesItsCode", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock, WithCodeGenerator(func(int) string { return "AWD82X9L" }))

		_, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		// พ้น endTime แล้ว code เดิมกลับมาใช้ได้
		clock.Advance(61 * time.Minute)
		reused, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS403", CourseName: "y", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)
		assert.Equal(t, "AWD82X9L", reused.Code)
	})

	t.Run("CodeSpaceExhausted", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock, WithCodeGenerator(func(int) string { return "AWD82X9L" }))

		_, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		_, err = svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS403", CourseName: "y", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	})

	t.Run("SchedulerReceivesEndTime", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		var gotID string
		var gotEnd time.Time
		svc, _ := newTestService(clock, WithCloseScheduler(func(sessionID string, endTime time.Time) error {
			gotID = sessionID
			gotEnd = endTime
			return nil
		}))

		session, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)
		assert.Equal(t, session.ID.Hex(), gotID)
		assert.Equal(t, session.EndTime, gotEnd)
	})
}

func TestExpiry(t *testing.T) {
	session := &models.Session{
		StartTime: baseTime,
		EndTime:   baseTime.Add(60 * time.Minute),
		Active:    true,
	}

	t.Run("NotExpiredBeforeEndTime", func(t *testing.T) {
		assert.False(t, IsExpired(session, baseTime))
		assert.False(t, IsExpired(session, baseTime.Add(59*time.Minute)))
		// ที่ endTime พอดียังไม่หมดอายุ (now ต้อง *ผ่าน* endTime)
		assert.False(t, IsExpired(session, session.EndTime))
	})

	t.Run("ExpiredAfterEndTime", func(t *testing.T) {
		assert.True(t, IsExpired(session, baseTime.Add(61*time.Minute)))
		assert.True(t, IsExpired(session, session.EndTime.Add(time.Nanosecond)))
	})

	t.Run("ExpiryIsMonotonic", func(t *testing.T) {
		// เมื่อหมดอายุแล้ว เวลาเดินต่อไปก็ยังหมดอายุเสมอ
		expiredAt := session.EndTime.Add(time.Second)
		for _, later := range []time.Duration{0, time.Minute, time.Hour, 24 * time.Hour} {
			assert.True(t, IsExpired(session, expiredAt.Add(later)))
		}
	})

	t.Run("UsableNeedsActiveAndLive", func(t *testing.T) {
		assert.True(t, IsUsable(session, baseTime))

		closed := *session
		closed.Active = false
		assert.False(t, IsUsable(&closed, baseTime))

		assert.False(t, IsUsable(session, baseTime.Add(61*time.Minute)))
	})
}

func TestFindSessionByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesBeforeLookup", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock, WithCodeGenerator(func(int) string { return "AWD82X9L" }))

		created, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		found, err := svc.FindSessionByCode(ctx, "  awd-82x9l ", clock.Now())
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("MalformedCode", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock)

		_, err := svc.FindSessionByCode(ctx, "ABC", clock.Now())
		assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	})

	t.Run("ExpiredCodeLooksLikeUnknownCode", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock, WithCodeGenerator(func(int) string { return "AWD82X9L" }))

		_, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		clock.Advance(61 * time.Minute)
		_, errExpired := svc.FindSessionByCode(ctx, "AWD82X9L", clock.Now())
		_, errUnknown := svc.FindSessionByCode(ctx, "ZZZZZZZZ", clock.Now())

		// ผลลัพธ์ต้องแยกไม่ออกจากกัน
		assert.ErrorIs(t, errExpired, ErrInvalidOrExpiredCode)
		assert.Equal(t, errUnknown, errExpired)
	})

	t.Run("DeactivatedSessionNotFound", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, _ := newTestService(clock, WithCodeGenerator(func(int) string { return "AWD82X9L" }))

		created, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		require.NoError(t, svc.DeactivateSession(ctx, created.ID.Hex()))
		_, err = svc.FindSessionByCode(ctx, "AWD82X9L", clock.Now())
		assert.ErrorIs(t, err, ErrInvalidOrExpiredCode)
	})
}

func TestRecordAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstClaimCounts", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, store := newTestService(clock)

		session, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		claimed, err := svc.RecordAttendance(ctx, session, "65010123", nil, nil)
		require.NoError(t, err)
		assert.True(t, claimed)

		stored, err := store.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.AttendeeCount)
	})

	t.Run("RepeatClaimIsReportedNotCounted", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, store := newTestService(clock)

		session, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		claimed, err := svc.RecordAttendance(ctx, session, "65010123", nil, nil)
		require.NoError(t, err)
		assert.True(t, claimed)

		again, err := svc.RecordAttendance(ctx, session, "65010123", nil, nil)
		require.NoError(t, err)
		assert.False(t, again)

		stored, err := store.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.AttendeeCount)

		records, err := svc.GetAttendance(ctx, session.ID.Hex())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("DistinctStudentsEachCount", func(t *testing.T) {
		clock := &fixedClock{now: baseTime}
		svc, store := newTestService(clock)

		session, err := svc.CreateSession(ctx, models.CreateSessionRequest{
			CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
		}, "lecturer-1")
		require.NoError(t, err)

		for _, id := range []string{"65010123", "65010124", "65010125"} {
			claimed, err := svc.RecordAttendance(ctx, session, id, nil, nil)
			require.NoError(t, err)
			assert.True(t, claimed)
		}

		stored, err := store.FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stored.AttendeeCount)
	})
}

func TestDeleteSessionCascades(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: baseTime}
	svc, _ := newTestService(clock)

	session, err := svc.CreateSession(ctx, models.CreateSessionRequest{
		CourseCode: "CS402", CourseName: "x", DurationValue: 60, DurationUnit: models.DurationMinutes,
	}, "lecturer-1")
	require.NoError(t, err)

	_, err = svc.RecordAttendance(ctx, session, "65010123", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, session.ID.Hex()))

	_, err = svc.GetSessionByID(ctx, session.ID.Hex())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	records, err := svc.GetAttendance(ctx, session.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, records)
}
