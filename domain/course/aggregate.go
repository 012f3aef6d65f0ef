/*
Package course - course subdomain, the core of the engagement engine.

The Course is an aggregate root: one document holding the lesson content
with its nested Q&A threads, the reviews with their reply threads, and the
derived rating average. All mutations go through the aggregate so the
invariants (referenced sub-entity must exist, rating average equals the
mean of review ratings) hold in one place.

Sub-entities embed an immutable snapshot of their author (AuthorRef) taken
at creation time. This deliberately favors read performance and audit
fidelity over reflecting later profile edits.
*/
package course

import (
	"time"

	"learnhub/domain/user"

	"github.com/google/uuid"
)

// AuthorRef immutable author snapshot embedded at creation time.
// Not a live reference: later profile edits do not propagate here.
type AuthorRef struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func snapshotAuthor(actor user.Identity) AuthorRef {
	return AuthorRef{UserID: actor.ID, Name: actor.Name, Email: actor.Email}
}

// Thumbnail opaque reference into binary object storage
type Thumbnail struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Answer append-only reply to a question. It carries no id of its own.
// CreatedAt and UpdatedAt are both set to the mutation instant on
// creation; a known quirk of the data, kept as-is.
type Answer struct {
	Author    AuthorRef `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Question one Q&A thread under a content item
type Question struct {
	ID      string    `json:"id"`
	Author  AuthorRef `json:"author"`
	Text    string    `json:"text"`
	Replies []Answer  `json:"replies"`
}

// ContentItem one lesson/video unit. Title, video url, links and
// suggestion are opaque payload; the engine only routes mutations into
// the questions thread.
type ContentItem struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	VideoURL   string     `json:"video_url"`
	Links      []Link     `json:"links"`
	Suggestion string     `json:"suggestion"`
	Questions  []Question `json:"questions"`
}

// Link named URL attached to a content item
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ReviewReply reply under a review thread
type ReviewReply struct {
	Author    AuthorRef `json:"author"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review one rating+comment with its reply thread
type Review struct {
	ID      string        `json:"id"`
	Author  AuthorRef     `json:"author"`
	Rating  int           `json:"rating"`
	Comment string        `json:"comment"`
	Replies []ReviewReply `json:"replies"`
}

// Course aggregate root
type Course struct {
	id             string
	name           string
	description    string
	price          float64
	thumbnail      Thumbnail
	demoURL        string
	status         Status
	purchasedCount int
	ownerID        string
	content        []ContentItem
	reviews        []Review
	ratingAverage  float64
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCourse create a course. Initial status depends on the creator's
// role: admins publish directly into Approved, everyone else starts
// Pending review.
func NewCourse(creator user.Identity, name, description string, price float64, thumbnail Thumbnail, demoURL string, content []ContentItem) (*Course, error) {
	if name == "" {
		return nil, NewInvalidCourseError("name", "course name must not be empty")
	}
	for i := range content {
		if content[i].ID == "" {
			content[i].ID = uuid.New().String()
		}
		if content[i].Questions == nil {
			content[i].Questions = []Question{}
		}
	}
	now := time.Now()
	return &Course{
		id:             uuid.New().String(),
		name:           name,
		description:    description,
		price:          price,
		thumbnail:      thumbnail,
		demoURL:        demoURL,
		status:         InitialStatus(creator.Role),
		purchasedCount: 0,
		ownerID:        creator.ID,
		content:        content,
		reviews:        []Review{},
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// DTO flat representation for rehydration from persistence
type DTO struct {
	ID             string
	Name           string
	Description    string
	Price          float64
	Thumbnail      Thumbnail
	DemoURL        string
	Status         Status
	PurchasedCount int
	OwnerID        string
	Content        []ContentItem
	Reviews        []Review
	RatingAverage  float64
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FromDTO rehydrate a Course from its persisted form
func FromDTO(dto DTO) *Course {
	return &Course{
		id:             dto.ID,
		name:           dto.Name,
		description:    dto.Description,
		price:          dto.Price,
		thumbnail:      dto.Thumbnail,
		demoURL:        dto.DemoURL,
		status:         dto.Status,
		purchasedCount: dto.PurchasedCount,
		ownerID:        dto.OwnerID,
		content:        dto.Content,
		reviews:        dto.Reviews,
		ratingAverage:  dto.RatingAverage,
		version:        dto.Version,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
	}
}

// ToDTO flatten for persistence
func (c *Course) ToDTO() DTO {
	return DTO{
		ID:             c.id,
		Name:           c.name,
		Description:    c.description,
		Price:          c.price,
		Thumbnail:      c.thumbnail,
		DemoURL:        c.demoURL,
		Status:         c.status,
		PurchasedCount: c.purchasedCount,
		OwnerID:        c.ownerID,
		Content:        c.content,
		Reviews:        c.reviews,
		RatingAverage:  c.ratingAverage,
		Version:        c.version,
		CreatedAt:      c.createdAt,
		UpdatedAt:      c.updatedAt,
	}
}

func (c *Course) ID() string             { return c.id }
func (c *Course) Name() string           { return c.name }
func (c *Course) Description() string    { return c.description }
func (c *Course) Price() float64         { return c.price }
func (c *Course) Thumbnail() Thumbnail   { return c.thumbnail }
func (c *Course) DemoURL() string        { return c.demoURL }
func (c *Course) Status() Status         { return c.status }
func (c *Course) PurchasedCount() int    { return c.purchasedCount }
func (c *Course) OwnerID() string        { return c.ownerID }
func (c *Course) Content() []ContentItem { return c.content }
func (c *Course) Reviews() []Review      { return c.reviews }
func (c *Course) RatingAverage() float64 { return c.ratingAverage }
func (c *Course) CreatedAt() time.Time   { return c.createdAt }
func (c *Course) UpdatedAt() time.Time   { return c.updatedAt }

// Version the optimistic-lock counter of the loaded snapshot; bumped by
// the store on every accepted scalar save. Targeted engagement appends
// are commutative and intentionally leave it alone.
func (c *Course) Version() int { return c.version }

// ============================================================================
// Sub-entity lookups
// Each lookup failure is a distinct "not found" error, never a generic
// failure: callers (and clients) can tell a bad content id from a bad
// question id.
// ============================================================================

// FindContent locate a content item by id, returning its index
func (c *Course) FindContent(contentID string) (*ContentItem, int, error) {
	for i := range c.content {
		if c.content[i].ID == contentID {
			return &c.content[i], i, nil
		}
	}
	return nil, -1, NewContentNotFoundError(contentID)
}

// FindQuestion locate a question within a content item
func (c *Course) FindQuestion(contentID, questionID string) (*Question, int, int, error) {
	item, contentIdx, err := c.FindContent(contentID)
	if err != nil {
		return nil, -1, -1, err
	}
	for j := range item.Questions {
		if item.Questions[j].ID == questionID {
			return &item.Questions[j], contentIdx, j, nil
		}
	}
	return nil, -1, -1, NewQuestionNotFoundError(questionID)
}

// FindReview locate a review by id, returning its index
func (c *Course) FindReview(reviewID string) (*Review, int, error) {
	for i := range c.reviews {
		if c.reviews[i].ID == reviewID {
			return &c.reviews[i], i, nil
		}
	}
	return nil, -1, NewReviewNotFoundError(reviewID)
}

// ============================================================================
// Engagement mutations
// The aggregate validates and applies each mutation in memory; the
// repository mirrors the same mutation as an atomic targeted update so
// concurrent writers against distinct sub-paths never overwrite each
// other.
// ============================================================================

// AskQuestion append a new question to the named content item
func (c *Course) AskQuestion(actor user.Identity, contentID, text string) (Question, int, error) {
	item, idx, err := c.FindContent(contentID)
	if err != nil {
		return Question{}, -1, err
	}
	q := Question{
		ID:      uuid.New().String(),
		Author:  snapshotAuthor(actor),
		Text:    text,
		Replies: []Answer{},
	}
	item.Questions = append(item.Questions, q)
	c.updatedAt = time.Now()
	return q, idx, nil
}

// AnswerQuestion append a new answer to the named question. Both
// timestamps are set to the same instant on purpose.
func (c *Course) AnswerQuestion(actor user.Identity, contentID, questionID, text string) (Answer, int, int, error) {
	q, contentIdx, questionIdx, err := c.FindQuestion(contentID, questionID)
	if err != nil {
		return Answer{}, -1, -1, err
	}
	now := time.Now()
	a := Answer{
		Author:    snapshotAuthor(actor),
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	q.Replies = append(q.Replies, a)
	c.updatedAt = now
	return a, contentIdx, questionIdx, nil
}

// AddReview append a review and recompute the derived rating average.
// Enrollment eligibility is the caller's concern (it needs the requester's
// enrollment list); the aggregate enforces the rating range.
func (c *Course) AddReview(actor user.Identity, rating int, comment string) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, NewInvalidCourseError("rating", "rating must be between 1 and 5")
	}
	r := Review{
		ID:      uuid.New().String(),
		Author:  snapshotAuthor(actor),
		Rating:  rating,
		Comment: comment,
		Replies: []ReviewReply{},
	}
	c.reviews = append(c.reviews, r)
	c.recalculateRating()
	c.updatedAt = time.Now()
	return r, nil
}

// ReplyToReview append a reply under the named review
func (c *Course) ReplyToReview(actor user.Identity, reviewID, comment string) (ReviewReply, int, error) {
	rev, idx, err := c.FindReview(reviewID)
	if err != nil {
		return ReviewReply{}, -1, err
	}
	now := time.Now()
	reply := ReviewReply{
		Author:    snapshotAuthor(actor),
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rev.Replies = append(rev.Replies, reply)
	c.updatedAt = now
	return reply, idx, nil
}

// recalculateRating rating average = arithmetic mean of all review
// ratings, 0 when there are none
func (c *Course) recalculateRating() {
	if len(c.reviews) == 0 {
		c.ratingAverage = 0
		return
	}
	sum := 0
	for _, r := range c.reviews {
		sum += r.Rating
	}
	c.ratingAverage = float64(sum) / float64(len(c.reviews))
}

// ============================================================================
// Lifecycle
// ============================================================================

// EditPatch partial course edit; nil fields are left unchanged. Status is
// handled separately by the approval state machine.
type EditPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Thumbnail   *Thumbnail
	DemoURL     *string
}

// ApplyEdit apply a partial edit to the scalar fields
func (c *Course) ApplyEdit(patch EditPatch) {
	if patch.Name != nil {
		c.name = *patch.Name
	}
	if patch.Description != nil {
		c.description = *patch.Description
	}
	if patch.Price != nil {
		c.price = *patch.Price
	}
	if patch.Thumbnail != nil {
		c.thumbnail = *patch.Thumbnail
	}
	if patch.DemoURL != nil {
		c.demoURL = *patch.DemoURL
	}
	c.updatedAt = time.Now()
}

// RecordPurchase increment the purchase counter (never decremented)
func (c *Course) RecordPurchase() {
	c.purchasedCount++
	c.updatedAt = time.Now()
}

// EnsureDeletable a purchased course can never be deleted
func (c *Course) EnsureDeletable() error {
	if c.purchasedCount > 0 {
		return NewCoursePurchasedError(c.id, c.purchasedCount)
	}
	return nil
}
