package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/koseha/ryg-web-sub000/internal/domain/valueobject"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newPendingRequest() *JoinRequest {
	return NewJoinRequest(uuid.New(), uuid.New(), "hi", "gold", []string{"mid"}, testNow)
}

func TestJoinRequest_NewJoinRequest_IsPending(t *testing.T) {
	req := newPendingRequest()

	if !req.IsPending() {
		t.Errorf("expected pending, got %q", req.Status)
	}
	if req.ResolvedAt != nil || req.ResolvedBy != nil {
		t.Error("new request must not carry resolution fields")
	}
	if !req.SubmittedAt.Equal(testNow) {
		t.Errorf("expected SubmittedAt %v, got %v", testNow, req.SubmittedAt)
	}
}

func TestJoinRequest_Resolve_Approve_SetsResolutionFields(t *testing.T) {
	req := newPendingRequest()
	admin := uuid.New()
	at := testNow.Add(time.Hour)

	if err := req.Resolve(valueobject.JoinDecisionApprove, admin, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Status != valueobject.JoinRequestStatusApproved {
		t.Errorf("expected approved, got %q", req.Status)
	}
	if req.ResolvedBy == nil || *req.ResolvedBy != admin {
		t.Errorf("expected ResolvedBy %v, got %v", admin, req.ResolvedBy)
	}
	if req.ResolvedAt == nil || !req.ResolvedAt.Equal(at) {
		t.Errorf("expected ResolvedAt %v, got %v", at, req.ResolvedAt)
	}
}

func TestJoinRequest_Resolve_Twice_ReturnsErrJoinRequestNotPending(t *testing.T) {
	req := newPendingRequest()
	_ = req.Resolve(valueobject.JoinDecisionReject, uuid.New(), testNow)

	err := req.Resolve(valueobject.JoinDecisionApprove, uuid.New(), testNow)

	if err != ErrJoinRequestNotPending {
		t.Errorf("expected ErrJoinRequestNotPending, got: %v", err)
	}
	if req.Status != valueobject.JoinRequestStatusRejected {
		t.Errorf("status must stay rejected, got %q", req.Status)
	}
}

func TestJoinRequest_IsSubmittedBy(t *testing.T) {
	req := newPendingRequest()

	if !req.IsSubmittedBy(req.UserID) {
		t.Error("expected submitter to match")
	}
	if req.IsSubmittedBy(uuid.New()) {
		t.Error("expected other user not to match")
	}
}
