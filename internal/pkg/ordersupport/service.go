// Package ordersupport implements the buyer actions on an order line item:
// cancellation, return request and issue report.
package ordersupport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/mail"
	"github.com/treido/treido-go/internal/pkg/metrics"
	"github.com/treido/treido-go/internal/pkg/validation"
)

const (
	minReturnReason      = 3
	minIssueDescription  = 10
	maxFreeTextRuneCount = 2000
)

// Issue types a buyer can report.
const (
	IssueNotReceived    = "not_received"
	IssueWrongItem      = "wrong_item"
	IssueDamaged        = "damaged"
	IssueNotAsDescribed = "not_as_described"
	IssueMissingParts   = "missing_parts"
	IssueOther          = "other"
)

// itemRequest is the input shared by every action.
type itemRequest struct {
	OrderItemID string `validate:"required,uuid"`
}

type issueRequest struct {
	IssueType string `validate:"oneof=not_received wrong_item damaged not_as_described missing_parts other"`
}

// Service runs order support actions against a Repository.
type Service struct {
	repo   Repository
	mailer mail.Mailer
}

// NewService creates an order support service. A nil mailer disables
// seller emails.
func NewService(repo Repository, mailer mail.Mailer) *Service {
	if mailer == nil {
		mailer = mail.Nop{}
	}
	return &Service{repo: repo, mailer: mailer}
}

// NewServiceFromDB creates an order support service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, mailer mail.Mailer) *Service {
	return NewService(NewRepository(db), mailer)
}

// buyerItem is the guard shared by every action: the item must exist and
// the caller must be the buyer on its order.
func (s *Service) buyerItem(ctx context.Context, callerID, orderItemID string) (*models.OrderItem, error) {
	if err := validation.Struct(itemRequest{OrderItemID: orderItemID}); err != nil {
		return nil, envelope.Wrap(envelope.CodeInvalidInput, "order.invalid_item", err)
	}
	if callerID == "" {
		return nil, envelope.New(envelope.CodeNotAuthenticated, "")
	}

	item, err := s.repo.GetOrderItem(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, envelope.Wrap(envelope.CodeNotFound, "order.item_not_found", err)
		}
		return nil, fmt.Errorf("load order item %s: %w", orderItemID, err)
	}
	if item.Order == nil {
		return nil, envelope.Wrapf(envelope.CodeNotFound, "order.item_not_found", "order item %s has no order", orderItemID)
	}
	if item.Order.BuyerID != callerID {
		return nil, envelope.New(envelope.CodeNotAuthorized, "order.not_buyer")
	}
	return item, nil
}

func record(action string, err error) {
	metrics.OrderSupportActionsTotal.WithLabelValues(action, metrics.Result(string(envelope.CodeOf(err)))).Inc()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
