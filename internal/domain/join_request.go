package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Terminal reports whether a request status permits no further transition.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

// JoinRequest is a member-initiated, admin-adjudicated request to enter a
// group. At most one pending request exists per (member, group) pair.
type JoinRequest struct {
	ID          int64         `json:"id"`
	MemberID    int64         `json:"member_id"`
	GroupID     int64         `json:"group_id"`
	Status      RequestStatus `json:"status"`
	RequestedOn time.Time     `json:"requested_on"`
}

// LeaveRequest mirrors JoinRequest for exiting a group. The member must hold
// a membership in the group when the request is submitted.
type LeaveRequest struct {
	ID          int64         `json:"id"`
	MemberID    int64         `json:"member_id"`
	GroupID     int64         `json:"group_id"`
	Status      RequestStatus `json:"status"`
	RequestedOn time.Time     `json:"requested_on"`
}
