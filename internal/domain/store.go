package domain

import "context"

// OpportunityStore persists detected opportunities for later review. It is a
// reporter-side collaborator; the engine itself never touches storage.
type OpportunityStore interface {
	// Insert stores a batch of opportunities from one scan.
	Insert(ctx context.Context, opps []Opportunity) error
	// ListRecent returns the most recent opportunities, newest first. A
	// limit of 0 means no limit.
	ListRecent(ctx context.Context, limit int) ([]Opportunity, error)
}
