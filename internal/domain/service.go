package domain

import "context"

// TransactionManager runs fn inside one database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ExplanationGenerator writes a short explanation of why the correct alternative is right.
type ExplanationGenerator interface {
	GenerateExplanation(ctx context.Context, question *Question) (string, error)
}
