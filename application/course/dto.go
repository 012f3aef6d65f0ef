package course

import "time"

// ============================================================================
// Request DTOs
// ============================================================================

// ThumbnailRequest thumbnail reference input
type ThumbnailRequest struct {
	PublicID string `json:"public_id" binding:"required"`
	URL      string `json:"url" binding:"required"`
}

// LinkRequest named link input
type LinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ContentItemRequest one lesson unit input
type ContentItemRequest struct {
	Title      string        `json:"title" binding:"required"`
	VideoURL   string        `json:"video_url"`
	Links      []LinkRequest `json:"links"`
	Suggestion string        `json:"suggestion"`
}

// CreateCourseRequest Create course request DTO
type CreateCourseRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Price       float64              `json:"price" binding:"min=0"`
	Thumbnail   ThumbnailRequest     `json:"thumbnail" binding:"required"`
	DemoURL     string               `json:"demo_url"`
	Content     []ContentItemRequest `json:"content"`
}

// EditCourseRequest Edit course request DTO; nil fields stay unchanged.
// Status runs through the approval state machine, not a plain field write.
type EditCourseRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Price       *float64          `json:"price"`
	Thumbnail   *ThumbnailRequest `json:"thumbnail"`
	DemoURL     *string           `json:"demo_url"`
	Status      *string           `json:"status"`
}

// AddQuestionRequest Ask question request DTO
type AddQuestionRequest struct {
	CourseID  string `json:"course_id" binding:"required"`
	ContentID string `json:"content_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

// AddAnswerRequest Answer question request DTO
type AddAnswerRequest struct {
	CourseID   string `json:"course_id" binding:"required"`
	ContentID  string `json:"content_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// AddReviewRequest Add review request DTO
type AddReviewRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// AddReviewReplyRequest Reply to review request DTO
type AddReviewReplyRequest struct {
	CourseID string `json:"course_id" binding:"required"`
	ReviewID string `json:"review_id" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
}

// ============================================================================
// Response DTOs
// The public shape strips everything a non-enrolled visitor must not see:
// video urls, suggestions, attached links and the Q&A threads. The detail
// shape carries the full content and is only built after the enrollment
// gate passed.
// ============================================================================

// AuthorResponse embedded author snapshot
type AuthorResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// AnswerResponse one answer in a Q&A thread
type AnswerResponse struct {
	Author    AuthorResponse `json:"author"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// QuestionResponse one Q&A thread
type QuestionResponse struct {
	ID      string           `json:"id"`
	Author  AuthorResponse   `json:"author"`
	Text    string           `json:"text"`
	Replies []AnswerResponse `json:"replies"`
}

// LinkResponse named link
type LinkResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ContentItemResponse full lesson unit, enrolled eyes only
type ContentItemResponse struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	VideoURL   string             `json:"video_url"`
	Links      []LinkResponse     `json:"links"`
	Suggestion string             `json:"suggestion"`
	Questions  []QuestionResponse `json:"questions"`
}

// PublicContentItemResponse stripped lesson unit for the public catalog
type PublicContentItemResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ReviewReplyResponse one reply under a review
type ReviewReplyResponse struct {
	Author    AuthorResponse `json:"author"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ReviewResponse one review with its reply thread
type ReviewResponse struct {
	ID      string                `json:"id"`
	Author  AuthorResponse        `json:"author"`
	Rating  int                   `json:"rating"`
	Comment string                `json:"comment"`
	Replies []ReviewReplyResponse `json:"replies"`
}

// ThumbnailResponse thumbnail reference
type ThumbnailResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// CourseResponse public course shape
type CourseResponse struct {
	ID             string                      `json:"id"`
	Name           string                      `json:"name"`
	Description    string                      `json:"description"`
	Price          float64                     `json:"price"`
	Thumbnail      ThumbnailResponse           `json:"thumbnail"`
	DemoURL        string                      `json:"demo_url"`
	Status         string                      `json:"status"`
	PurchasedCount int                         `json:"purchased_count"`
	RatingAverage  float64                     `json:"rating_average"`
	Content        []PublicContentItemResponse `json:"content"`
	Reviews        []ReviewResponse            `json:"reviews"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// CourseDetailResponse full course shape for enrolled users and staff
type CourseDetailResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          float64               `json:"price"`
	Thumbnail      ThumbnailResponse     `json:"thumbnail"`
	DemoURL        string                `json:"demo_url"`
	Status         string                `json:"status"`
	PurchasedCount int                   `json:"purchased_count"`
	OwnerID        string                `json:"owner_id"`
	RatingAverage  float64               `json:"rating_average"`
	Content        []ContentItemResponse `json:"content"`
	Reviews        []ReviewResponse      `json:"reviews"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
