package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"strings"
	"testing"

	"sba-portal/internal/domain/meeting"
	"sba-portal/internal/domain/notify"
	"sba-portal/internal/testutil/meetingmock"
	"sba-portal/internal/testutil/notifymock"
	ucMeeting "sba-portal/internal/usecase/meeting"
)

func TestScheduleMeeting(t *testing.T) {
	var created *meeting.Meeting
	events := &notifymock.Publisher{}
	repo := &meetingmock.Repo{CreateFn: func(_ context.Context, m *meeting.Meeting) error { created = m; return nil }}
	h := NewMeetingHandler(ucMeeting.NewUsecase(repo, events, nullLog()), nullLog())

	body := map[string]string{
		"meeting_date": "2025-09-10",
		"meeting_time": "14:30",
		"meeting_type": "callback",
		"purpose":      "Discuss SBA 7(a) options",
		"contact_info": "+1 555 0100",
	}
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/me/meetings", mustJSON(body), &borrower)
	if err := h.Schedule(c); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Status != meeting.StatusScheduled || created.UserID != borrower.UserID {
		t.Fatalf("created = %+v", created)
	}
	if ev := events.Events(); len(ev) != 1 || ev[0].Type != notify.MeetingCreated {
		t.Fatalf("events = %+v", ev)
	}
}

func TestScheduleMeeting_Validation(t *testing.T) {
	h := NewMeetingHandler(ucMeeting.NewUsecase(&meetingmock.Repo{}, nil, nullLog()), nullLog())
	body := map[string]string{
		"meeting_date": "10/09/2025",
		"meeting_time": "2pm",
		"meeting_type": "video",
	}
	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPost, "/me/meetings", mustJSON(body), &borrower)
	_ = h.Schedule(c)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	details := decodeError(t, rec).Details
	for _, f := range []string{"meeting_date", "meeting_time", "meeting_type", "purpose"} {
		found := false
		for _, d := range details {
			if d.Field == f {
				found = true
			}
		}
		if !found {
			t.Fatalf("no detail for %s: %+v", f, details)
		}
	}
}

func TestUpdateMeetingStatus(t *testing.T) {
	meetingID := strings.Repeat("e", 32)
	tests := []struct {
		name     string
		from     meeting.Status
		to       string
		wantCode int
	}{
		{name: "complete", from: meeting.StatusScheduled, to: "completed", wantCode: stdhttp.StatusOK},
		{name: "cancel", from: meeting.StatusScheduled, to: "cancelled", wantCode: stdhttp.StatusOK},
		{name: "same status", from: meeting.StatusCompleted, to: "completed", wantCode: stdhttp.StatusOK},
		{name: "reopen", from: meeting.StatusCancelled, to: "scheduled", wantCode: stdhttp.StatusConflict},
		{name: "unknown", from: meeting.StatusScheduled, to: "postponed", wantCode: stdhttp.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &meetingmock.Repo{
				GetByMeetingIDFn: func(context.Context, string) (*meeting.Meeting, error) {
					return &meeting.Meeting{MeetingID: meetingID, UserID: borrower.UserID, Status: tt.from}, nil
				},
				SaveFn: func(context.Context, *meeting.Meeting) error { return nil },
			}
			h := NewMeetingHandler(ucMeeting.NewUsecase(repo, &notifymock.Publisher{}, nullLog()), nullLog())
			c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodPatch, "/admin/meetings/"+meetingID,
				mustJSON(map[string]string{"status": tt.to}), &admin, "id", meetingID)

			if err := h.UpdateStatus(c); err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestListMeetings(t *testing.T) {
	repo := &meetingmock.Repo{
		ListByUserFn: func(_ context.Context, userID string) ([]meeting.Meeting, error) {
			return []meeting.Meeting{{MeetingID: "m1", UserID: userID}}, nil
		},
		ListAllFn: func(context.Context) ([]meeting.Meeting, error) {
			return []meeting.Meeting{{MeetingID: "m1"}, {MeetingID: "m2"}}, nil
		},
	}
	h := NewMeetingHandler(ucMeeting.NewUsecase(repo, nil, nullLog()), nullLog())

	var out struct {
		Meetings []meeting.Meeting `json:"meetings"`
	}

	c, rec := newCtx(newEchoWithValidator(), stdhttp.MethodGet, "/me/meetings", nil, &borrower)
	_ = h.ListMine(c)
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || len(out.Meetings) != 1 {
		t.Fatalf("mine: %v %s", err, rec.Body.String())
	}

	c, rec = newCtx(newEchoWithValidator(), stdhttp.MethodGet, "/admin/meetings", nil, &admin)
	_ = h.ListAll(c)
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || len(out.Meetings) != 2 {
		t.Fatalf("all: %v %s", err, rec.Body.String())
	}

	c, rec = newCtx(newEchoWithValidator(), stdhttp.MethodGet, "/admin/meetings", nil, &borrower)
	_ = h.ListAll(c)
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("borrower listing all: status = %d", rec.Code)
	}
}
