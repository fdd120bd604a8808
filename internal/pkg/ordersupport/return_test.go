package ordersupport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treido/treido-go/app/models"
	"github.com/treido/treido-go/internal/pkg/envelope"
	"github.com/treido/treido-go/internal/pkg/i18n"
)

func TestRequestReturnLifecycle(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	svc := NewService(repo, &fakeMailer{})

	convID, err := svc.RequestReturn(context.Background(), buyerID, itemID, "  Wrong size ")
	require.NoError(t, err)
	require.NotNil(t, convID)

	require.Len(t, repo.returns, 1)
	rr := repo.returns[0]
	assert.Equal(t, "Wrong size", rr.Reason)
	assert.Equal(t, sellerID, rr.SellerID)
	assert.Equal(t, orderID, rr.OrderID)
	assert.Equal(t, models.ReturnStatusPending, rr.Status)
	require.NotNil(t, rr.ConversationID)
	assert.Equal(t, *convID, *rr.ConversationID)

	require.Len(t, repo.messages, 1)
	assert.Equal(t, models.MessageTypeReturnRequest, repo.messages[0].MessageType)
	assert.Equal(t, "Return requested for \"Oak desk\".\nReason: Wrong size", repo.messages[0].Content)

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, models.NotificationTypeReturnRequest, repo.notifications[0].Type)
	assert.Equal(t, convID, repo.notifications[0].ConversationID)

	_, err = svc.RequestReturn(context.Background(), buyerID, itemID, "Again please")
	assert.ErrorIs(t, err, envelope.New(envelope.CodeAlreadyExists, "order.return_exists"))
	assert.Len(t, repo.returns, 1)
}

func TestRequestReturnRequiresDelivered(t *testing.T) {
	for _, status := range []string{
		models.OrderItemStatusPending,
		models.OrderItemStatusProcessing,
		models.OrderItemStatusShipped,
		models.OrderItemStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			repo := fixture(status)
			_, err := NewService(repo, nil).RequestReturn(context.Background(), buyerID, itemID, "Wrong size")
			assert.Equal(t, envelope.CodeInvalidStatus, envelope.CodeOf(err))
			assert.Empty(t, repo.returns)
		})
	}
}

func TestRequestReturnReasonLength(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	svc := NewService(repo, nil)

	_, err := svc.RequestReturn(context.Background(), buyerID, itemID, "  ab  ")
	assert.ErrorIs(t, err, envelope.New(envelope.CodeValidationFailed, "order.return_reason_short"))

	convID, err := svc.RequestReturn(context.Background(), buyerID, itemID, "бъг")
	require.NoError(t, err)
	assert.NotNil(t, convID)
}

func TestRequestReturnCreateFailure(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	repo.createReturnErr = errDB

	_, err := NewService(repo, nil).RequestReturn(context.Background(), buyerID, itemID, "Wrong size")
	assert.Equal(t, envelope.CodeCreateFailed, envelope.CodeOf(err))
	assert.Empty(t, repo.conversations)
}

func TestRequestReturnKeepsReturnWhenConversationFails(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	repo.createConvErr = errDB

	convID, err := NewService(repo, nil).RequestReturn(context.Background(), buyerID, itemID, "Wrong size")
	require.NoError(t, err)
	assert.Nil(t, convID)
	require.Len(t, repo.returns, 1)
	assert.Nil(t, repo.returns[0].ConversationID)
	require.Len(t, repo.notifications, 1)
	assert.Nil(t, repo.notifications[0].ConversationID)
}

func TestRequestReturnReusesOrderConversation(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	oid := orderID
	existing := &models.Conversation{ID: "e0e1e2e3-e4e5-4e6e-8e7e-8e9eaebecede", BuyerID: buyerID, SellerID: sellerID, OrderID: &oid}
	repo.conversations = append(repo.conversations, existing)

	convID, err := NewService(repo, nil).RequestReturn(context.Background(), buyerID, itemID, "Wrong size")
	require.NoError(t, err)
	require.NotNil(t, convID)
	assert.Equal(t, existing.ID, *convID)
	assert.Len(t, repo.conversations, 1)
}

func TestRequestReturnLocalizesMessage(t *testing.T) {
	repo := fixture(models.OrderItemStatusDelivered)
	ctx := i18n.WithLocale(context.Background(), i18n.BG)

	_, err := NewService(repo, nil).RequestReturn(ctx, buyerID, itemID, "Грешен размер")
	require.NoError(t, err)
	require.Len(t, repo.messages, 1)
	assert.Contains(t, repo.messages[0].Content, "Грешен размер")
	assert.NotContains(t, repo.messages[0].Content, "Return requested")
}
