package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/treido/treido-go/internal/pkg/envelope"
)

// OrderSupportService is the part of ordersupport.Service the HTTP API uses.
type OrderSupportService interface {
	RequestOrderCancellation(ctx context.Context, callerID, orderItemID, reason string) error
	RequestReturn(ctx context.Context, callerID, orderItemID, reason string) (*string, error)
	ReportOrderIssue(ctx context.Context, callerID, orderItemID, issueType, description string) (string, error)
}

type OrderSupportController struct {
	svc OrderSupportService
}

func NewOrderSupportController(svc OrderSupportService) *OrderSupportController {
	return &OrderSupportController{svc: svc}
}

type reasonBody struct {
	Reason string `json:"reason"`
}

type issueBody struct {
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
}

// HandleCancel serves POST /api/v1/order-items/:id/cancel.
func (oc *OrderSupportController) HandleCancel(c *fiber.Ctx) error {
	var body reasonBody
	if err := parseBody(c, &body); err != nil {
		return fail(c, err, nil)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	itemID := c.Params("id")
	if err := oc.svc.RequestOrderCancellation(ctx, callerID(c), itemID, body.Reason); err != nil {
		logUnexpected(err, "request order cancellation", callerID(c), itemID)
		return fail(c, err, nil)
	}
	return envelope.OK(c, nil)
}

// HandleReturn serves POST /api/v1/order-items/:id/return.
func (oc *OrderSupportController) HandleReturn(c *fiber.Ctx) error {
	var body reasonBody
	if err := parseBody(c, &body); err != nil {
		return fail(c, err, nil)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	itemID := c.Params("id")
	convID, err := oc.svc.RequestReturn(ctx, callerID(c), itemID, body.Reason)
	if err != nil {
		logUnexpected(err, "request return", callerID(c), itemID)
		return fail(c, err, nil)
	}
	fields := fiber.Map{}
	if convID != nil {
		fields["conversationId"] = *convID
	}
	return envelope.OK(c, fields)
}

// HandleIssue serves POST /api/v1/order-items/:id/issues.
func (oc *OrderSupportController) HandleIssue(c *fiber.Ctx) error {
	var body issueBody
	if err := parseBody(c, &body); err != nil {
		return fail(c, err, nil)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	itemID := c.Params("id")
	convID, err := oc.svc.ReportOrderIssue(ctx, callerID(c), itemID, body.IssueType, body.Description)
	if err != nil {
		logUnexpected(err, "report order issue", callerID(c), itemID)
		return fail(c, err, nil)
	}
	return envelope.OK(c, fiber.Map{"conversationId": convID})
}
