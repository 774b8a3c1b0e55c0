package pose

import (
	"encoding/json"
	"time"
)

// Pose is a character reference record owned by one drama.
type Pose struct {
	ID          uint    `json:"id"`
	DramaID     uint    `json:"drama_id"`
	Name        string  `json:"name"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	// ReferenceImages is passed through as the server sent it.
	ReferenceImages json.RawMessage `json:"reference_images,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreatePoseRequest struct {
	DramaID     uint   `json:"drama_id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// UpdatePoseRequest is a partial update: nil fields are left out of the body
// and keep their server-side value.
type UpdatePoseRequest struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (r UpdatePoseRequest) IsEmpty() bool {
	return r.Name == nil && r.Type == nil && r.Description == nil && r.ImageURL == nil
}

// TaskHandle identifies an asynchronous server-side job.
type TaskHandle struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message,omitempty"`
}

type associateRequest struct {
	PoseIDs []uint `json:"pose_ids"`
}

// String returns a pointer to s, for filling UpdatePoseRequest.
func String(s string) *string { return &s }
