package boosts

import "context"

// GetBoostStatus reports the listing's boost state and the seller's synced
// credits. The product row may come from the cache; the ledger never does.
// On error the zero Status is returned together with the error.
func (s *Service) GetBoostStatus(ctx context.Context, callerID, productID string) (Status, error) {
	product, err := s.cachedOwnedProduct(ctx, callerID, productID)
	if err != nil {
		return Status{}, err
	}
	ledger, err := s.SyncLedger(ctx, callerID)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		BoostsRemaining: ledger.Remaining,
		BoostsAllocated: ledger.Allocated,
	}
	if product.HasActiveBoost(s.now()) {
		st.IsBoosted = true
		st.BoostExpiresAt = product.BoostExpiresAt
	}
	return st, nil
}
