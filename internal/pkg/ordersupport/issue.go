package ordersupport

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/i18n"
	"github.com/treido/treido-go/internal/pkg/validation"
)

// ReportOrderIssue posts a problem report to the order conversation and
// returns the conversation id. Any item status is accepted.
func (s *Service) ReportOrderIssue(ctx context.Context, callerID, orderItemID, issueType, description string) (string, error) {
	convID, err := s.reportIssue(ctx, callerID, orderItemID, issueType, description)
	record("issue", err)
	return convID, err
}

func (s *Service) reportIssue(ctx context.Context, callerID, orderItemID, issueType, description string) (string, error) {
	if err := validation.Struct(issueRequest{IssueType: issueType}); err != nil {
		return "", envelope.Wrap(envelope.CodeInvalidInput, "order.invalid_issue_type", err)
	}
	item, err := s.buyerItem(ctx, callerID, orderItemID)
	if err != nil {
		return "", err
	}
	description = strings.TrimSpace(description)
	if n := runeLen(description); n < minIssueDescription || n > maxFreeTextRuneCount {
		return "", envelope.New(envelope.CodeValidationFailed, "order.issue_description_short")
	}

	conv, err := s.orderConversation(ctx, item, callerID)
	if err != nil {
		return "", envelope.Wrap(envelope.CodeCreateFailed, "order.issue_failed", err)
	}

	label := i18n.TC(ctx, "issue."+issueType)
	title := item.ProductTitle()
	err = s.repo.CreateMessage(ctx, &models.Message{
		ConversationID: conv.ID,
		SenderID:       callerID,
		Content:        i18n.TC(ctx, "message.issue_report", label, title, description),
		MessageType:    models.MessageTypeIssueReport,
	})
	if err != nil {
		return "", envelope.Wrap(envelope.CodeCreateFailed, "order.issue_failed", err)
	}

	s.notifySeller(ctx, item, &models.Notification{
		Type:           models.NotificationTypeOrderIssue,
		Title:          i18n.TC(ctx, "notify.order_issue.title", label),
		Body:           i18n.TC(ctx, "notify.order_issue.body", title),
		ConversationID: &conv.ID,
	})

	log.Info().Str("order_item_id", item.ID).Str("buyer_id", callerID).Str("issue_type", issueType).Msg("order issue reported")
	return conv.ID, nil
}
