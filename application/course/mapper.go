package course

import (
	"learnhub/domain/course"
)

func toDomainContent(items []ContentItemRequest) []course.ContentItem {
	content := make([]course.ContentItem, len(items))
	for i, item := range items {
		links := make([]course.Link, len(item.Links))
		for j, l := range item.Links {
			links[j] = course.Link{Title: l.Title, URL: l.URL}
		}
		content[i] = course.ContentItem{
			Title:      item.Title,
			VideoURL:   item.VideoURL,
			Links:      links,
			Suggestion: item.Suggestion,
		}
	}
	return content
}

func toDomainThumbnail(t ThumbnailRequest) course.Thumbnail {
	return course.Thumbnail{PublicID: t.PublicID, URL: t.URL}
}

func toAuthorResponse(a course.AuthorRef) AuthorResponse {
	return AuthorResponse{UserID: a.UserID, Name: a.Name}
}

func toReviewResponses(reviews []course.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		replies := make([]ReviewReplyResponse, len(r.Replies))
		for j, rep := range r.Replies {
			replies[j] = ReviewReplyResponse{
				Author:    toAuthorResponse(rep.Author),
				Comment:   rep.Comment,
				CreatedAt: rep.CreatedAt,
				UpdatedAt: rep.UpdatedAt,
			}
		}
		out[i] = ReviewResponse{
			ID:      r.ID,
			Author:  toAuthorResponse(r.Author),
			Rating:  r.Rating,
			Comment: r.Comment,
			Replies: replies,
		}
	}
	return out
}

func toQuestionResponses(questions []course.Question) []QuestionResponse {
	out := make([]QuestionResponse, len(questions))
	for i, q := range questions {
		replies := make([]AnswerResponse, len(q.Replies))
		for j, a := range q.Replies {
			replies[j] = AnswerResponse{
				Author:    toAuthorResponse(a.Author),
				Text:      a.Text,
				CreatedAt: a.CreatedAt,
				UpdatedAt: a.UpdatedAt,
			}
		}
		out[i] = QuestionResponse{
			ID:      q.ID,
			Author:  toAuthorResponse(q.Author),
			Text:    q.Text,
			Replies: replies,
		}
	}
	return out
}

// toCourseResponse the public catalog view: lesson payload and the Q&A
// threads are stripped, only titles remain
func toCourseResponse(c *course.Course) *CourseResponse {
	content := make([]PublicContentItemResponse, len(c.Content()))
	for i, item := range c.Content() {
		content[i] = PublicContentItemResponse{ID: item.ID, Title: item.Title}
	}

	return &CourseResponse{
		ID:             c.ID(),
		Name:           c.Name(),
		Description:    c.Description(),
		Price:          c.Price(),
		Thumbnail:      ThumbnailResponse{PublicID: c.Thumbnail().PublicID, URL: c.Thumbnail().URL},
		DemoURL:        c.DemoURL(),
		Status:         string(c.Status()),
		PurchasedCount: c.PurchasedCount(),
		RatingAverage:  c.RatingAverage(),
		Content:        content,
		Reviews:        toReviewResponses(c.Reviews()),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

// toCourseDetailResponse the full view, after the enrollment gate
func toCourseDetailResponse(c *course.Course) *CourseDetailResponse {
	content := make([]ContentItemResponse, len(c.Content()))
	for i, item := range c.Content() {
		links := make([]LinkResponse, len(item.Links))
		for j, l := range item.Links {
			links[j] = LinkResponse{Title: l.Title, URL: l.URL}
		}
		content[i] = ContentItemResponse{
			ID:         item.ID,
			Title:      item.Title,
			VideoURL:   item.VideoURL,
			Links:      links,
			Suggestion: item.Suggestion,
			Questions:  toQuestionResponses(item.Questions),
		}
	}

	return &CourseDetailResponse{
		ID:             c.ID(),
		Name:           c.Name(),
		Description:    c.Description(),
		Price:          c.Price(),
		Thumbnail:      ThumbnailResponse{PublicID: c.Thumbnail().PublicID, URL: c.Thumbnail().URL},
		DemoURL:        c.DemoURL(),
		Status:         string(c.Status()),
		PurchasedCount: c.PurchasedCount(),
		OwnerID:        c.OwnerID(),
		RatingAverage:  c.RatingAverage(),
		Content:        content,
		Reviews:        toReviewResponses(c.Reviews()),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

func toCourseResponses(courses []*course.Course) []*CourseResponse {
	out := make([]*CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = toCourseResponse(c)
	}
	return out
}
