// Package pose is a typed client for the pose endpoints of the drama API.
//
// Every method is a single request. Errors from the transport, including
// *transport.StatusError for rejected requests, are returned unchanged.
package pose

import (
	"context"
	"net/http"
	"strconv"

	"poseclient/pkg/transport"
)

type API interface {
	List(ctx context.Context, dramaID uint) ([]Pose, error)
	Create(ctx context.Context, req CreatePoseRequest) (*Pose, error)
	Update(ctx context.Context, id uint, req UpdatePoseRequest) error
	Delete(ctx context.Context, id uint) error
	GenerateImage(ctx context.Context, id uint) (*TaskHandle, error)
	AssociateWithStoryboard(ctx context.Context, storyboardID uint, poseIDs []uint) error
	ExtractFromScript(ctx context.Context, episodeID uint) (*TaskHandle, error)
}

var _ API = (*Client)(nil)

type Client struct {
	tc transport.Client
}

func NewClient(tc transport.Client) *Client {
	return &Client{tc: tc}
}

func (c *Client) List(ctx context.Context, dramaID uint) ([]Pose, error) {
	var poses []Pose
	if err := transport.Call(ctx, c.tc, http.MethodGet, "/dramas/"+id(dramaID)+"/poses", nil, &poses); err != nil {
		return nil, err
	}
	return poses, nil
}

func (c *Client) Create(ctx context.Context, req CreatePoseRequest) (*Pose, error) {
	var p Pose
	if err := transport.Call(ctx, c.tc, http.MethodPost, "/poses", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Update(ctx context.Context, poseID uint, req UpdatePoseRequest) error {
	return transport.Call(ctx, c.tc, http.MethodPut, "/poses/"+id(poseID), req, nil)
}

func (c *Client) Delete(ctx context.Context, poseID uint) error {
	return transport.Call(ctx, c.tc, http.MethodDelete, "/poses/"+id(poseID), nil, nil)
}

// GenerateImage queues image generation for the pose and returns the job handle.
func (c *Client) GenerateImage(ctx context.Context, poseID uint) (*TaskHandle, error) {
	return c.startTask(ctx, "/poses/"+id(poseID)+"/generate")
}

// AssociateWithStoryboard links poseIDs to the storyboard. The server
// replaces the storyboard's current set with poseIDs.
func (c *Client) AssociateWithStoryboard(ctx context.Context, storyboardID uint, poseIDs []uint) error {
	if poseIDs == nil {
		poseIDs = []uint{}
	}
	body := associateRequest{PoseIDs: poseIDs}
	return transport.Call(ctx, c.tc, http.MethodPost, "/storyboards/"+id(storyboardID)+"/poses", body, nil)
}

// ExtractFromScript queues extraction of poses from the episode's script.
func (c *Client) ExtractFromScript(ctx context.Context, episodeID uint) (*TaskHandle, error) {
	return c.startTask(ctx, "/episodes/"+id(episodeID)+"/poses/extract")
}

func (c *Client) startTask(ctx context.Context, path string) (*TaskHandle, error) {
	var h TaskHandle
	if err := transport.Call(ctx, c.tc, http.MethodPost, path, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func id(n uint) string { return strconv.FormatUint(uint64(n), 10) }
