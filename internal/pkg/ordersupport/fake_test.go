package ordersupport

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/treido/treido-go/app/models"
)

type fakeRepo struct {
	items         map[string]*models.OrderItem
	returns       []*models.ReturnRequest
	conversations []*models.Conversation
	messages      []*models.Message
	notifications []*models.Notification
	profiles      map[string]*models.Profile

	writes int

	getItemErr      error
	updateStatusErr error
	findReturnErr   error
	createReturnErr error
	createConvErr   error
	createMsgErr    error
	notifyErr       error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:    map[string]*models.OrderItem{},
		profiles: map[string]*models.Profile{},
	}
}

func (f *fakeRepo) GetOrderItem(_ context.Context, id string) (*models.OrderItem, error) {
	if f.getItemErr != nil {
		return nil, f.getItemErr
	}
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) UpdateItemStatus(_ context.Context, id, status string) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	f.writes++
	f.items[id].Status = status
	return nil
}

func (f *fakeRepo) FindPendingReturn(_ context.Context, orderItemID, buyerID string) (*models.ReturnRequest, error) {
	if f.findReturnErr != nil {
		return nil, f.findReturnErr
	}
	for _, r := range f.returns {
		if r.OrderItemID == orderItemID && r.BuyerID == buyerID && r.Status == models.ReturnStatusPending {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateReturn(_ context.Context, r *models.ReturnRequest) error {
	if f.createReturnErr != nil {
		return f.createReturnErr
	}
	f.writes++
	r.ID = uuid.NewString()
	f.returns = append(f.returns, r)
	return nil
}

func (f *fakeRepo) SetReturnConversation(_ context.Context, returnID, conversationID string) error {
	for _, r := range f.returns {
		if r.ID == returnID {
			r.ConversationID = &conversationID
		}
	}
	f.writes++
	return nil
}

func (f *fakeRepo) FindOrderConversation(_ context.Context, buyerID, sellerID, orderID string) (*models.Conversation, error) {
	for _, c := range f.conversations {
		if c.BuyerID == buyerID && c.SellerID == sellerID && c.OrderID != nil && *c.OrderID == orderID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) CreateConversation(_ context.Context, c *models.Conversation) error {
	if f.createConvErr != nil {
		return f.createConvErr
	}
	f.writes++
	c.ID = uuid.NewString()
	f.conversations = append(f.conversations, c)
	return nil
}

func (f *fakeRepo) CreateMessage(_ context.Context, m *models.Message) error {
	if f.createMsgErr != nil {
		return f.createMsgErr
	}
	f.writes++
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	if f.notifyErr != nil {
		return f.notifyErr
	}
	f.writes++
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeRepo) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

var errDB = errors.New("db down")
