package models

// ReviewWebhookPayload is the subset of a GitHub pull_request_review
// delivery that the sync path cares about. Binding tags reject payloads
// missing the repository name or PR URL before any remote call is made;
// review.state is allowed to be empty (an unknown state still maps to a
// card action).
type ReviewWebhookPayload struct {
	Repository struct {
		Name string `json:"name" binding:"required"`
	} `json:"repository" binding:"required"`
	PullRequest struct {
		HTMLURL string `json:"html_url" binding:"required"`
	} `json:"pull_request" binding:"required"`
	Review struct {
		State string `json:"state"`
	} `json:"review"`
}

// Event flattens the payload into the record the syncer consumes.
func (p ReviewWebhookPayload) Event() ReviewEvent {
	return ReviewEvent{
		RepositoryName: p.Repository.Name,
		PullRequestURL: p.PullRequest.HTMLURL,
		ReviewState:    p.Review.State,
	}
}

// ReviewEvent is one validated pull-request review notification. It is
// immutable and scoped to a single webhook delivery.
type ReviewEvent struct {
	RepositoryName string
	PullRequestURL string
	ReviewState    string
}
