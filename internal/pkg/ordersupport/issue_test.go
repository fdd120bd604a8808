package ordersupport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
)

func TestReportOrderIssue(t *testing.T) {
	repo := fixture(models.OrderItemStatusShipped)
	mailer := &fakeMailer{}

	convID, err := NewService(repo, mailer).ReportOrderIssue(context.Background(), buyerID, itemID, IssueDamaged, "  The legs arrived cracked. ")
	require.NoError(t, err)
	assert.NotEmpty(t, convID)

	require.Len(t, repo.conversations, 1)
	conv := repo.conversations[0]
	assert.Equal(t, convID, conv.ID)
	assert.Equal(t, buyerID, conv.BuyerID)
	assert.Equal(t, sellerID, conv.SellerID)
	require.NotNil(t, conv.OrderID)
	assert.Equal(t, orderID, *conv.OrderID)

	require.Len(t, repo.messages, 1)
	msg := repo.messages[0]
	assert.Equal(t, models.MessageTypeIssueReport, msg.MessageType)
	assert.Equal(t, buyerID, msg.SenderID)
	assert.Equal(t, "Issue reported: Item Damaged\nItem: \"Oak desk\"\n\nThe legs arrived cracked.", msg.Content)

	require.Len(t, repo.notifications, 1)
	n := repo.notifications[0]
	assert.Equal(t, models.NotificationTypeOrderIssue, n.Type)
	assert.Equal(t, "Issue reported: Item Damaged", n.Title)
	require.NotNil(t, n.ConversationID)
	assert.Equal(t, convID, *n.ConversationID)

	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].body, "Open your seller dashboard")

	assert.Equal(t, models.OrderItemStatusShipped, repo.items[itemID].Status)
}

func TestReportOrderIssueAcceptsAnyStatus(t *testing.T) {
	for _, status := range []string{
		models.OrderItemStatusPending,
		models.OrderItemStatusDelivered,
		models.OrderItemStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			repo := fixture(status)
			_, err := NewService(repo, nil).ReportOrderIssue(context.Background(), buyerID, itemID, IssueNotReceived, "Nothing arrived yet.")
			require.NoError(t, err)
		})
	}
}

func TestReportOrderIssueReusesConversation(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	svc := NewService(repo, nil)

	first, err := svc.ReportOrderIssue(context.Background(), buyerID, itemID, IssueMissingParts, "Two screws are missing.")
	require.NoError(t, err)
	second, err := svc.ReportOrderIssue(context.Background(), buyerID, itemID, IssueOther, "Also the colour is off.")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.conversations, 1)
	assert.Len(t, repo.messages, 2)
}

func TestReportOrderIssueValidation(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	svc := NewService(repo, nil)

	_, err := svc.ReportOrderIssue(context.Background(), buyerID, itemID, "broken", "The legs arrived cracked.")
	assert.ErrorIs(t, err, envelope.New(envelope.CodeInvalidInput, "order.invalid_issue_type"))

	_, err = svc.ReportOrderIssue(context.Background(), buyerID, itemID, IssueDamaged, "  cracked  ")
	assert.ErrorIs(t, err, envelope.New(envelope.CodeValidationFailed, "order.issue_description_short"))

	assert.Zero(t, repo.writes)
}

func TestReportOrderIssueChecksTypeBeforeGuard(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	svc := NewService(repo, nil)

	for _, issueType := range []string{"", "Damaged", "broken"} {
		_, err := svc.ReportOrderIssue(context.Background(), "", "item-1", issueType, "The legs arrived cracked.")
		assert.ErrorIs(t, err, envelope.New(envelope.CodeInvalidInput, "order.invalid_issue_type"), issueType)
	}

	_, err := svc.ReportOrderIssue(context.Background(), "", "", IssueOther, "The legs arrived cracked.")
	assert.ErrorIs(t, err, envelope.New(envelope.CodeInvalidInput, "order.invalid_item"))
	assert.Zero(t, repo.writes)
}

func TestReportOrderIssuePersistenceFailures(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	repo.createConvErr = errDB
	_, err := NewService(repo, nil).ReportOrderIssue(context.Background(), buyerID, itemID, IssueDamaged, "The legs arrived cracked.")
	assert.ErrorIs(t, err, envelope.New(envelope.CodeCreateFailed, "order.issue_failed"))

	repo = fixture(models.OrderItemStatusDelivered)
	repo.createMsgErr = errDB
	_, err = NewService(repo, nil).ReportOrderIssue(context.Background(), buyerID, itemID, IssueDamaged, "The legs arrived cracked.")
	assert.Equal(t, envelope.CodeCreateFailed, envelope.CodeOf(err))
	assert.Empty(t, repo.notifications)
}

func TestReportOrderIssueSurvivesNotificationFailure(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	repo.notifyErr = errDB

	convID, err := NewService(repo, nil).ReportOrderIssue(context.Background(), buyerID, itemID, IssueWrongItem, "I got a chair instead.")
	require.NoError(t, err)
	assert.NotEmpty(t, convID)
}
