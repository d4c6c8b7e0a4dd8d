package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/finexa/finexa-server/internal/domain"
)

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// TransactionQuery narrows a transaction listing.
type TransactionQuery struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID
	Type      *domain.TransactionType
}
