package cmd

import (
	"context"
	"fmt"

	"poseclient/pkg/pose"
	"poseclient/pkg/task"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list <drama-id>",
		Short: "List the poses of a drama",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dramaID, err := parseID(args[0])
			if err != nil {
				return err
			}
			poses, err := e.app.Poses.List(cmd.Context(), dramaID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), poses)
		},
	}
}

func newCreateCmd(e *env) *cobra.Command {
	var req pose.CreatePoseRequest
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a pose",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := e.app.Poses.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	c.Flags().UintVar(&req.DramaID, "drama-id", 0, "owning drama")
	c.Flags().StringVar(&req.Name, "name", "", "pose name")
	c.Flags().StringVar(&req.Type, "type", "", "pose type")
	c.Flags().StringVar(&req.Description, "description", "", "description, also used as the image prompt")
	c.Flags().StringVar(&req.ImageURL, "image-url", "", "reference image URL")
	_ = c.MarkFlagRequired("drama-id")
	_ = c.MarkFlagRequired("name")
	return c
}

func newUpdateCmd(e *env) *cobra.Command {
	var name, typ, desc, imageURL string
	c := &cobra.Command{
		Use:   "update <pose-id>",
		Short: "Update the given fields of a pose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			// only flags given on the command line end up in the request
			var req pose.UpdatePoseRequest
			fl := cmd.Flags()
			if fl.Changed("name") {
				req.Name = pose.String(name)
			}
			if fl.Changed("type") {
				req.Type = pose.String(typ)
			}
			if fl.Changed("description") {
				req.Description = pose.String(desc)
			}
			if fl.Changed("image-url") {
				req.ImageURL = pose.String(imageURL)
			}
			if req.IsEmpty() {
				return fmt.Errorf("nothing to update: pass at least one of --name, --type, --description, --image-url")
			}
			return e.app.Poses.Update(cmd.Context(), id, req)
		},
	}
	c.Flags().StringVar(&name, "name", "", "new name")
	c.Flags().StringVar(&typ, "type", "", "new type")
	c.Flags().StringVar(&desc, "description", "", "new description")
	c.Flags().StringVar(&imageURL, "image-url", "", "new image URL")
	return c
}

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pose-id>",
		Short: "Delete a pose",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return e.app.Poses.Delete(cmd.Context(), id)
		},
	}
}

type generateResult struct {
	PoseID uint             `json:"pose_id"`
	Handle *pose.TaskHandle `json:"handle"`
	Task   *task.Task       `json:"task,omitempty"`
}

func newGenerateCmd(e *env) *cobra.Command {
	var wait bool
	var parallel int
	c := &cobra.Command{
		Use:   "generate <pose-id>...",
		Short: "Queue image generation for one or more poses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			if parallel < 1 {
				parallel = 1
			}
			results := make([]generateResult, len(ids))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(parallel)
			for i, id := range ids {
				g.Go(func() error {
					h, err := e.app.Poses.GenerateImage(ctx, id)
					if err != nil {
						return fmt.Errorf("pose %d: %w", id, err)
					}
					results[i] = generateResult{PoseID: id, Handle: h}
					if wait {
						t, err := e.waitTask(ctx, h.TaskID)
						if err != nil {
							return fmt.Errorf("pose %d: %w", id, err)
						}
						results[i].Task = t
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
	c.Flags().BoolVar(&wait, "wait", false, "wait for the generation tasks to finish")
	c.Flags().IntVar(&parallel, "parallel", 4, "requests in flight at once")
	return c
}

func newAssociateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "associate <storyboard-id> <pose-id>...",
		Short: "Link poses to a storyboard",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return e.app.Poses.AssociateWithStoryboard(cmd.Context(), ids[0], ids[1:])
		},
	}
}

func newExtractCmd(e *env) *cobra.Command {
	var wait bool
	c := &cobra.Command{
		Use:   "extract <episode-id>",
		Short: "Queue extraction of poses from an episode script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			episodeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			h, err := e.app.Poses.ExtractFromScript(cmd.Context(), episodeID)
			if err != nil {
				return err
			}
			if !wait {
				return printJSON(cmd.OutOrStdout(), h)
			}
			t, err := e.waitTask(cmd.Context(), h.TaskID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), t)
		},
	}
	c.Flags().BoolVar(&wait, "wait", false, "wait for the extraction task to finish")
	return c
}

func (e *env) waitTask(ctx context.Context, taskID string) (*task.Task, error) {
	return e.app.Tasks.Wait(ctx, taskID, task.WaitOptions{
		Interval: e.app.Config.TaskPollInterval,
		Timeout:  e.app.Config.TaskPollTimeout,
		OnPoll: func(t *task.Task) {
			e.app.Log.WithFields(logrus.Fields{
				"task_id":  t.ID,
				"status":   t.Status,
				"progress": t.Progress,
			}).Info(t.Message)
		},
	})
}
