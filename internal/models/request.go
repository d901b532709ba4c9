package models

import (
	"time"
)

// RequestStatus is the lifecycle state of an admin request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// AdminRequest is a user's ask to be elevated to the admin role.
// Name and email are denormalized from the account at request time.
// A request transitions exactly once, pending to approved or rejected.
type AdminRequest struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	UserName     string        `json:"userName"`
	UserEmail    string        `json:"userEmail"`
	RequestDate  time.Time     `json:"requestDate"`
	Status       RequestStatus `json:"status"`
	ApprovedDate *time.Time    `json:"approvedDate,omitempty"`
	RejectedDate *time.Time    `json:"rejectedDate,omitempty"`
}
