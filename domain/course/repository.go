package course

import "context"

// Repository persistence boundary for the course aggregate.
//
// Reads return the full aggregate. Engagement writes are expressed as
// targeted append operations against the nested path rather than
// whole-document saves: the store executes each as one atomic update, so
// two concurrent appends against distinct sub-paths of the same course
// both survive. Save is reserved for scalar edits (name, price, status,
// thumbnail) where last-write-wins on individual fields is acceptable.
type Repository interface {
	FindByID(ctx context.Context, id string) (*Course, error)
	FindAll(ctx context.Context) ([]*Course, error)
	FindByStatus(ctx context.Context, status Status) ([]*Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]*Course, error)

	Create(ctx context.Context, c *Course) error
	Save(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id string) error

	// AppendQuestion atomically push a question into
	// content[contentIdx].questions
	AppendQuestion(ctx context.Context, courseID string, contentIdx int, q Question) error

	// AppendAnswer atomically push an answer into
	// content[contentIdx].questions[questionIdx].replies
	AppendAnswer(ctx context.Context, courseID string, contentIdx, questionIdx int, a Answer) error

	// AppendReview atomically push a review and set the recomputed
	// rating average in the same statement
	AppendReview(ctx context.Context, courseID string, r Review, ratingAverage float64) error

	// AppendReviewReply atomically push a reply into
	// reviews[reviewIdx].replies
	AppendReviewReply(ctx context.Context, courseID string, reviewIdx int, reply ReviewReply) error
}
